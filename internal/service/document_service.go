package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024 // 5MB

var allowedDocumentExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".pdf": true}

// DocumentService handles customer verification documents
type DocumentService interface {
	Create(ctx context.Context, userID string, req model.CreateDocumentRequest) (*model.Document, error)
	Upload(ctx context.Context, userID string, req model.CreateDocumentRequest, file *multipart.FileHeader) (*model.Document, error)
	List(ctx context.Context, callerID string, filters model.DocumentFilters, p utils.Pagination) (utils.PageResult[model.Document], error)
	GetFilePath(ctx context.Context, id, callerID string) (string, string, error) // returns path and filename
	Verify(ctx context.Context, callerID string, req model.VerifyDocumentRequest) (*model.Document, error)
}

type documentService struct {
	repo          repository.DocumentRepository
	guard         AccessGuard
	notifications NotificationService
	uploadsDir    string
	log           logger.ILogger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(repo repository.DocumentRepository, guard AccessGuard, notifications NotificationService, uploadsDir string, log logger.ILogger) DocumentService {
	return &documentService{repo: repo, guard: guard, notifications: notifications, uploadsDir: uploadsDir, log: log}
}

func validateDocumentRequest(req model.CreateDocumentRequest) error {
	if strings.TrimSpace(req.DocumentType) == "" {
		return missingField("document_type")
	}
	if strings.TrimSpace(req.DocumentName) == "" {
		return missingField("document_name")
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		if _, err := utils.ParseDate(*req.ExpiryDate); err != nil {
			return invalidField("expiry_date", "Invalid expiry_date, expected YYYY-MM-DD")
		}
	}
	return nil
}

func newDocument(userID string, req model.CreateDocumentRequest, url string) *model.Document {
	expiry := req.ExpiryDate
	if expiry != nil && *expiry == "" {
		expiry = nil
	}
	return &model.Document{
		ID:           uuid.NewString(),
		UserID:       userID,
		DocumentType: req.DocumentType,
		DocumentName: req.DocumentName,
		DocumentURL:  url,
		ExpiryDate:   expiry,
		CreatedAt:    time.Now(),
	}
}

// Create records a document hosted elsewhere
func (s *documentService) Create(ctx context.Context, userID string, req model.CreateDocumentRequest) (*model.Document, error) {
	if err := validateDocumentRequest(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.DocumentURL) == "" {
		return nil, missingField("document_url")
	}
	doc := newDocument(userID, req, req.DocumentURL)
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document in repo: %w", err)
	}
	return doc, nil
}

// Upload stores the file under <uploads>/documents/<user>/ and records it
func (s *documentService) Upload(ctx context.Context, userID string, req model.CreateDocumentRequest, fileHeader *multipart.FileHeader) (*model.Document, error) {
	if err := validateDocumentRequest(req); err != nil {
		return nil, err
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileSizeExceeded
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedDocumentExts[ext] {
		return nil, ErrInvalidFileFormat
	}

	userDir := filepath.Join(s.uploadsDir, "documents", filepath.Base(userID))
	if err := os.MkdirAll(userDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	doc := newDocument(userID, req, "")
	filePath := filepath.Join(userDir, doc.ID+ext)
	doc.DocumentURL = filepath.ToSlash(filePath)

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file on server: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to create document in repo: %w", err)
	}
	return doc, nil
}

// List shows admins every document (optionally filtered by user); others only their own
func (s *documentService) List(ctx context.Context, callerID string, filters model.DocumentFilters, p utils.Pagination) (utils.PageResult[model.Document], error) {
	isAdmin, err := s.guard.IsAdmin(ctx, callerID)
	if err != nil {
		return utils.PageResult[model.Document]{}, err
	}
	if !isAdmin {
		filters.UserID = &callerID
	}
	docs, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return utils.PageResult[model.Document]{}, fmt.Errorf("failed to list documents: %w", err)
	}
	return utils.NewPageResult(docs, total, p), nil
}

// GetFilePath resolves an uploaded document's file for its owner or an admin
func (s *documentService) GetFilePath(ctx context.Context, id, callerID string) (string, string, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("failed to find document for file retrieval: %w", err)
	}
	if doc == nil {
		return "", "", ErrNotFound
	}
	if doc.UserID != callerID {
		isAdmin, err := s.guard.IsAdmin(ctx, callerID)
		if err != nil {
			return "", "", err
		}
		if !isAdmin {
			return "", "", ErrNotFound
		}
	}

	// externally hosted documents have no local file
	fullPath := filepath.Clean(filepath.FromSlash(doc.DocumentURL))
	root := filepath.Clean(filepath.Join(s.uploadsDir, "documents")) + string(filepath.Separator)
	if !strings.HasPrefix(fullPath, root) {
		return "", "", ErrNotFound
	}
	return fullPath, filepath.Base(fullPath), nil
}

// Verify records an admin decision and tells the owner
func (s *documentService) Verify(ctx context.Context, callerID string, req model.VerifyDocumentRequest) (*model.Document, error) {
	if _, err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ID) == "" {
		return nil, missingField("id")
	}
	if req.IsVerified == nil {
		return nil, missingField("is_verified")
	}

	doc, err := s.repo.Verify(ctx, req.ID, callerID, *req.IsVerified, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to verify document: %w", err)
	}

	outcome := "verified"
	if !doc.IsVerified {
		outcome = "rejected"
	}
	msg := fmt.Sprintf("Your document %q has been %s.", doc.DocumentName, outcome)
	if doc.Notes != nil && *doc.Notes != "" {
		msg += " Notes: " + *doc.Notes
	}
	s.notifications.NotifyUser(ctx, doc.UserID, model.NotificationDraft{
		Type:    model.NotificationDocumentVerified,
		Title:   "Document Review",
		Message: msg,
	})
	s.log.Info("document reviewed", logger.String("document_id", doc.ID), logger.Bool("verified", doc.IsVerified))
	return doc, nil
}
