package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	CarID           string        `json:"car_id"`
	InquiryID       *string       `json:"inquiry_id"`
	PickupDate      string        `json:"pickup_date"`
	ReturnDate      string        `json:"return_date"`
	PickupLocation  string        `json:"pickup_location"`
	DropoffLocation *string       `json:"dropoff_location"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Car             *CarSummary   `json:"car,omitempty"`
}

type CreateBookingRequest struct {
	CarID           string  `json:"car_id"`
	InquiryID       *string `json:"inquiry_id"`
	PickupDate      string  `json:"pickup_date"`
	ReturnDate      string  `json:"return_date"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
}

type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingFilters struct {
	UserID *string
	CarID  *string
	Status *BookingStatus
}
