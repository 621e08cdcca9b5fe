package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

// BookingService manages confirmed rentals
type BookingService interface {
	Create(ctx context.Context, userID string, req model.CreateBookingRequest) (*model.Booking, error)
	Get(ctx context.Context, id, callerID string) (*model.Booking, error)
	List(ctx context.Context, callerID, status string, p utils.Pagination) (utils.PageResult[model.Booking], error)
	UpdateStatus(ctx context.Context, id, callerID, status string) (*model.Booking, error)
}

type bookingService struct {
	repo          repository.BookingRepository
	cars          repository.CarRepository
	inquiries     repository.InquiryRepository
	guard         AccessGuard
	notifications NotificationService
}

// NewBookingService creates a new BookingService
func NewBookingService(repo repository.BookingRepository, cars repository.CarRepository, inquiries repository.InquiryRepository, guard AccessGuard, notifications NotificationService) BookingService {
	return &bookingService{repo: repo, cars: cars, inquiries: inquiries, guard: guard, notifications: notifications}
}

// Create books an available car; total_price is days x price_per_day with a one day minimum
func (s *bookingService) Create(ctx context.Context, userID string, req model.CreateBookingRequest) (*model.Booking, error) {
	req.CarID = strings.TrimSpace(req.CarID)
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	if err := validateRentalWindow(req.CarID, req.PickupDate, req.ReturnDate, req.PickupLocation); err != nil {
		return nil, err
	}
	if err := s.ownInquiry(ctx, userID, req.InquiryID); err != nil {
		return nil, err
	}
	car, err := availableCar(ctx, s.cars, req.CarID)
	if err != nil {
		return nil, err
	}

	pickup, _ := utils.ParseDate(req.PickupDate)
	ret, _ := utils.ParseDate(req.ReturnDate)
	days := utils.DaysBetween(pickup, ret)

	now := time.Now()
	booking := &model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		CarID:           car.ID,
		InquiryID:       req.InquiryID,
		PickupDate:      req.PickupDate,
		ReturnDate:      req.ReturnDate,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		TotalPrice:      math.Round(float64(days)*car.PricePerDay*100) / 100,
		Status:          model.BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		Car:             car.Summary(),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking in repo: %w", err)
	}

	s.notifications.NotifyAdmins(ctx, model.NotificationDraft{
		Type:      model.NotificationNewBooking,
		Title:     "New Booking",
		Message:   fmt.Sprintf("New booking for %s %s from %s to %s (%d days, %.2f).", car.Brand, car.Model, booking.PickupDate, booking.ReturnDate, days, booking.TotalPrice),
		InquiryID: booking.InquiryID,
		BookingID: &booking.ID,
	})
	return booking, nil
}

// ownInquiry checks that a linked inquiry exists and belongs to the booking customer
func (s *bookingService) ownInquiry(ctx context.Context, userID string, inquiryID *string) error {
	if inquiryID == nil {
		return nil
	}
	inquiry, err := s.inquiries.FindByID(ctx, *inquiryID)
	if err != nil {
		return fmt.Errorf("failed to find inquiry by ID: %w", err)
	}
	if inquiry == nil || inquiry.UserID != userID {
		return ErrNotFound
	}
	return nil
}

func (s *bookingService) Get(ctx context.Context, id, callerID string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	if booking == nil {
		return nil, ErrNotFound
	}
	if booking.UserID == callerID {
		return booking, nil
	}
	isAdmin, err := s.guard.IsAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrNotFound
	}
	return booking, nil
}

func invalidBookingStatus() error {
	return invalidField("status", "Invalid status. Must be one of: pending, confirmed, active, completed, cancelled")
}

func (s *bookingService) List(ctx context.Context, callerID, status string, p utils.Pagination) (utils.PageResult[model.Booking], error) {
	var filters model.BookingFilters
	if status != "" {
		st := model.BookingStatus(status)
		if !st.Valid() {
			return utils.PageResult[model.Booking]{}, invalidBookingStatus()
		}
		filters.Status = &st
	}
	isAdmin, err := s.guard.IsAdmin(ctx, callerID)
	if err != nil {
		return utils.PageResult[model.Booking]{}, err
	}
	if !isAdmin {
		filters.UserID = &callerID
	}

	items, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return utils.PageResult[model.Booking]{}, fmt.Errorf("failed to list bookings: %w", err)
	}
	return utils.NewPageResult(items, total, p), nil
}

// UpdateStatus is admin-only and notifies the booking owner on every call
func (s *bookingService) UpdateStatus(ctx context.Context, id, callerID, status string) (*model.Booking, error) {
	if _, err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	st := model.BookingStatus(status)
	if !st.Valid() {
		return nil, invalidBookingStatus()
	}

	booking, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	carName := "your car"
	if booking.Car != nil {
		carName = booking.Car.Brand + " " + booking.Car.Model
	}
	s.notifications.NotifyUser(ctx, booking.UserID, model.NotificationDraft{
		Type:      model.NotificationBookingUpdate,
		Title:     "Booking Update",
		Message:   fmt.Sprintf("Your booking for %s has been %s.", carName, booking.Status),
		InquiryID: booking.InquiryID,
		BookingID: &booking.ID,
	})
	return booking, nil
}
