package model

import "time"

// Document is a customer-submitted verification artifact (licence, passport, ...).
type Document struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	DocumentType string     `json:"document_type"`
	DocumentName string     `json:"document_name"`
	DocumentURL  string     `json:"document_url"`
	ExpiryDate   *string    `json:"expiry_date"`
	IsVerified   bool       `json:"is_verified"`
	VerifiedBy   *string    `json:"verified_by"`
	VerifiedAt   *time.Time `json:"verified_at"`
	Notes        *string    `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreateDocumentRequest struct {
	DocumentType string  `json:"document_type" form:"document_type" binding:"required"`
	DocumentName string  `json:"document_name" form:"document_name" binding:"required"`
	DocumentURL  string  `json:"document_url" form:"document_url"`
	ExpiryDate   *string `json:"expiry_date" form:"expiry_date"`
}

type VerifyDocumentRequest struct {
	ID         string  `json:"id" binding:"required"`
	IsVerified *bool   `json:"is_verified" binding:"required"`
	Notes      *string `json:"notes"`
}

type DocumentFilters struct {
	UserID       *string
	DocumentType *string
	Verified     *bool
}
