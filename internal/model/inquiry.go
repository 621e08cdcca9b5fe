package model

import "time"

// InquiryStatus is the lifecycle state of an inquiry.
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "pending"
	InquiryStatusResponded InquiryStatus = "responded"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// Valid reports whether s is one of the three known states.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry is a customer's request to rent a car for a date range.
type Inquiry struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	CarID           string        `json:"car_id"`
	PickupDate      string        `json:"pickup_date"` // YYYY-MM-DD
	ReturnDate      string        `json:"return_date"` // YYYY-MM-DD
	PickupLocation  string        `json:"pickup_location"`
	DropoffLocation *string       `json:"dropoff_location"`
	Message         *string       `json:"message"`
	Status          InquiryStatus `json:"status"`
	AdminResponse   *string       `json:"admin_response"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	Car             *CarSummary   `json:"car,omitempty"`
}

// NewInquiry builds an inquiry in its initial pending state.
func NewInquiry(id, userID, carID, pickupDate, returnDate, pickupLocation string, dropoff, message *string) *Inquiry {
	now := time.Now()
	return &Inquiry{
		ID:              id,
		UserID:          userID,
		CarID:           carID,
		PickupDate:      pickupDate,
		ReturnDate:      returnDate,
		PickupLocation:  pickupLocation,
		DropoffLocation: dropoff,
		Message:         message,
		Status:          InquiryStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CreateInquiryRequest is the customer payload. Status is never accepted from the client.
type CreateInquiryRequest struct {
	CarID           string  `json:"car_id"`
	PickupDate      string  `json:"pickup_date"`
	ReturnDate      string  `json:"return_date"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
	Message         *string `json:"message"`
}

// UpdateInquiryRequest is the admin payload; absent fields are left untouched.
type UpdateInquiryRequest struct {
	Status        *string `json:"status"`
	AdminResponse *string `json:"admin_response"`
}

// InquiryUpdate is the validated partial update handed to the repository.
type InquiryUpdate struct {
	Status        *InquiryStatus
	AdminResponse *string
}

type InquiryFilters struct {
	UserID *string
	Status *InquiryStatus
}
