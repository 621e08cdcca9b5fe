package model

import "time"

type NotificationType string

const (
	NotificationNewInquiry       NotificationType = "new_inquiry"
	NotificationInquiryUpdate    NotificationType = "inquiry_update"
	NotificationNewBooking       NotificationType = "new_booking"
	NotificationBookingUpdate    NotificationType = "booking_update"
	NotificationDocumentVerified NotificationType = "document_verified"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	InquiryID *string          `json:"inquiry_id,omitempty"`
	BookingID *string          `json:"booking_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationDraft is the recipient-independent part of a notification.
type NotificationDraft struct {
	Type      NotificationType
	Title     string
	Message   string
	InquiryID *string
	BookingID *string
}
