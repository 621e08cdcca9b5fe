package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"

	"github.com/google/uuid"
)

// InquiryService runs the customer inquiry workflow: create, read, and admin status updates.
type InquiryService interface {
	Create(ctx context.Context, userID string, req model.CreateInquiryRequest) (*model.Inquiry, error)
	Get(ctx context.Context, id, callerID string) (*model.Inquiry, error)
	List(ctx context.Context, callerID, status string, p utils.Pagination) (utils.PageResult[model.Inquiry], error)
	UpdateStatus(ctx context.Context, id, callerID string, req model.UpdateInquiryRequest) (*model.Inquiry, error)
}

type inquiryService struct {
	repo          repository.InquiryRepository
	cars          repository.CarRepository
	guard         AccessGuard
	notifications NotificationService
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(repo repository.InquiryRepository, cars repository.CarRepository, guard AccessGuard, notifications NotificationService) InquiryService {
	return &inquiryService{repo: repo, cars: cars, guard: guard, notifications: notifications}
}

func validateRentalWindow(carID, pickupDate, returnDate, pickupLocation string) error {
	switch {
	case carID == "":
		return missingField("car_id")
	case pickupDate == "":
		return missingField("pickup_date")
	case returnDate == "":
		return missingField("return_date")
	case pickupLocation == "":
		return missingField("pickup_location")
	}
	pickup, err := utils.ParseDate(pickupDate)
	if err != nil {
		return invalidField("pickup_date", "Invalid pickup_date, expected YYYY-MM-DD")
	}
	ret, err := utils.ParseDate(returnDate)
	if err != nil {
		return invalidField("return_date", "Invalid return_date, expected YYYY-MM-DD")
	}
	if ret.Before(pickup) {
		return invalidField("return_date", "return_date must not be before pickup_date")
	}
	return nil
}

// availableCar loads a car and checks its availability flag
func availableCar(ctx context.Context, cars repository.CarRepository, carID string) (*model.Car, error) {
	car, err := cars.FindByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to load car: %w", err)
	}
	if car == nil {
		return nil, ErrNotFound
	}
	if !car.Available {
		return nil, ErrUnavailable
	}
	return car, nil
}

// Create persists a pending inquiry and notifies every admin
func (s *inquiryService) Create(ctx context.Context, userID string, req model.CreateInquiryRequest) (*model.Inquiry, error) {
	req.CarID = strings.TrimSpace(req.CarID)
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	if err := validateRentalWindow(req.CarID, req.PickupDate, req.ReturnDate, req.PickupLocation); err != nil {
		return nil, err
	}

	car, err := availableCar(ctx, s.cars, req.CarID)
	if err != nil {
		return nil, err
	}

	inquiry := model.NewInquiry(uuid.NewString(), userID, req.CarID, req.PickupDate, req.ReturnDate,
		req.PickupLocation, req.DropoffLocation, req.Message)
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to create inquiry in repo: %w", err)
	}
	inquiry.Car = car.Summary()

	s.notifications.NotifyAdmins(ctx, model.NotificationDraft{
		Type:      model.NotificationNewInquiry,
		Title:     "New Inquiry",
		Message:   fmt.Sprintf("New inquiry for %s %s (%s) from %s to %s.", car.Brand, car.Model, car.ID, inquiry.PickupDate, inquiry.ReturnDate),
		InquiryID: &inquiry.ID,
	})
	return inquiry, nil
}

// Get returns the inquiry to its owner or an admin; anyone else sees ErrNotFound
func (s *inquiryService) Get(ctx context.Context, id, callerID string) (*model.Inquiry, error) {
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find inquiry by ID: %w", err)
	}
	if inquiry == nil {
		return nil, ErrNotFound
	}
	if inquiry.UserID == callerID {
		return inquiry, nil
	}
	isAdmin, err := s.guard.IsAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, ErrNotFound
	}
	return inquiry, nil
}

// List pages over every inquiry for admins and over the caller's own otherwise
func (s *inquiryService) List(ctx context.Context, callerID, status string, p utils.Pagination) (utils.PageResult[model.Inquiry], error) {
	var filters model.InquiryFilters
	if status != "" {
		st := model.InquiryStatus(status)
		if !st.Valid() {
			return utils.PageResult[model.Inquiry]{}, invalidStatus()
		}
		filters.Status = &st
	}

	isAdmin, err := s.guard.IsAdmin(ctx, callerID)
	if err != nil {
		return utils.PageResult[model.Inquiry]{}, err
	}
	if !isAdmin {
		filters.UserID = &callerID
	}

	items, total, err := s.repo.List(ctx, filters, p)
	if err != nil {
		return utils.PageResult[model.Inquiry]{}, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return utils.NewPageResult(items, total, p), nil
}

func invalidStatus() error {
	return invalidField("status", "Invalid status. Must be one of: pending, responded, closed")
}

// UpdateStatus applies an admin's partial update. Every call with a non-pending status notifies the owner.
func (s *inquiryService) UpdateStatus(ctx context.Context, id, callerID string, req model.UpdateInquiryRequest) (*model.Inquiry, error) {
	if _, err := s.guard.RequireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	var upd model.InquiryUpdate
	if req.Status != nil {
		st := model.InquiryStatus(*req.Status)
		if !st.Valid() {
			return nil, invalidStatus()
		}
		upd.Status = &st
	}
	upd.AdminResponse = req.AdminResponse

	inquiry, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	if upd.Status != nil && *upd.Status != model.InquiryStatusPending {
		s.notifications.NotifyUser(ctx, inquiry.UserID, model.NotificationDraft{
			Type:      model.NotificationInquiryUpdate,
			Title:     "Inquiry Update",
			Message:   inquiryUpdateMessage(inquiry),
			InquiryID: &inquiry.ID,
		})
	}
	return inquiry, nil
}

func inquiryUpdateMessage(i *model.Inquiry) string {
	carName := "your selected car"
	if i.Car != nil {
		carName = i.Car.Brand + " " + i.Car.Model
	}
	msg := fmt.Sprintf("Your inquiry for %s has been %s.", carName, i.Status)
	if i.AdminResponse != nil && *i.AdminResponse != "" {
		msg += " Admin response: " + *i.AdminResponse
	}
	return msg
}
