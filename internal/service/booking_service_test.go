package service

import (
	"context"
	"testing"

	"car_rental/internal/logger"
	"car_rental/internal/model"
	"car_rental/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingFixture(inquiries ...*model.Inquiry) (BookingService, *fakeBookings, *fakeNotifications) {
	profiles := newFakeProfiles(
		&model.Profile{ID: "customerA", Role: model.RoleClient},
		&model.Profile{ID: "customerB", Role: model.RoleClient},
		&model.Profile{ID: "admin1", Role: model.RoleAdmin},
	)
	cars := newFakeCars(
		&model.Car{ID: "C123", Brand: "Honda", Model: "Civic", Name: "Civic", PricePerDay: 45.5, Available: true},
		&model.Car{ID: "C999", Brand: "Tesla", Model: "S", Name: "S", PricePerDay: 150, Available: false},
	)
	bookings := &fakeBookings{cars: cars}
	notifications := &fakeNotifications{}
	notifier := NewNotificationService(notifications, profiles, logger.NewNop())
	inquiryRepo := &fakeInquiries{rows: inquiries, cars: cars}
	return NewBookingService(bookings, cars, inquiryRepo, NewAccessGuard(profiles), notifier), bookings, notifications
}

func TestBookingService_CreatePricesByDay(t *testing.T) {
	svc, bookings, notifications := newBookingFixture()
	ctx := context.Background()

	b, err := svc.Create(ctx, "customerA", model.CreateBookingRequest{
		CarID: "C123", PickupDate: "2025-06-01", ReturnDate: "2025-06-05", PickupLocation: "Main Branch",
	})
	require.NoError(t, err)
	assert.Equal(t, 182.0, b.TotalPrice)
	assert.Equal(t, model.BookingStatusPending, b.Status)
	require.Len(t, bookings.rows, 1)
	require.Len(t, notifications.forUser("admin1"), 1)
	assert.Equal(t, model.NotificationNewBooking, notifications.forUser("admin1")[0].Type)

	sameDay, err := svc.Create(ctx, "customerA", model.CreateBookingRequest{
		CarID: "C123", PickupDate: "2025-06-01", ReturnDate: "2025-06-01", PickupLocation: "Main Branch",
	})
	require.NoError(t, err)
	assert.Equal(t, 45.5, sameDay.TotalPrice)

	_, err = svc.Create(ctx, "customerA", model.CreateBookingRequest{
		CarID: "C999", PickupDate: "2025-06-01", ReturnDate: "2025-06-02", PickupLocation: "Main Branch",
	})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Len(t, bookings.rows, 2)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	svc, _, notifications := newBookingFixture()
	ctx := context.Background()
	b, err := svc.Create(ctx, "customerA", model.CreateBookingRequest{
		CarID: "C123", PickupDate: "2025-06-01", ReturnDate: "2025-06-03", PickupLocation: "Airport",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, b.ID, "customerA", "confirmed")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateStatus(ctx, b.ID, "admin1", "shipped")
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateStatus(ctx, b.ID, "admin1", "confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)

	got := notifications.forUser("customerA")
	require.Len(t, got, 1)
	assert.Equal(t, model.NotificationBookingUpdate, got[0].Type)
	assert.Contains(t, got[0].Message, "Honda Civic")
	assert.Contains(t, got[0].Message, "confirmed")
	assert.Equal(t, b.ID, *got[0].BookingID)

	_, err = svc.UpdateStatus(ctx, "missing", "admin1", "confirmed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_Visibility(t *testing.T) {
	svc, _, _ := newBookingFixture()
	ctx := context.Background()
	b, err := svc.Create(ctx, "customerA", model.CreateBookingRequest{
		CarID: "C123", PickupDate: "2025-06-01", ReturnDate: "2025-06-03", PickupLocation: "Airport",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, b.ID, "customerB")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, b.ID, "admin1")
	assert.NoError(t, err)

	res, err := svc.List(ctx, "customerB", "", utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.NotNil(t, res.Items)

	res, err = svc.List(ctx, "admin1", "pending", utils.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestBookingService_CreateLinksOnlyOwnInquiry(t *testing.T) {
	own := model.NewInquiry("inq-A", "customerA", "C123", "2025-06-01", "2025-06-05", "Main Branch", nil, nil)
	other := model.NewInquiry("inq-B", "customerB", "C123", "2025-06-01", "2025-06-05", "Main Branch", nil, nil)
	svc, bookings, notifications := newBookingFixture(own, other)
	ctx := context.Background()

	req := func(inquiryID string) model.CreateBookingRequest {
		return model.CreateBookingRequest{
			CarID: "C123", InquiryID: &inquiryID, PickupDate: "2025-06-01", ReturnDate: "2025-06-05", PickupLocation: "Main Branch",
		}
	}

	_, err := svc.Create(ctx, "customerA", req("inq-B"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, "customerA", req("no-such-inquiry"))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Empty(t, bookings.rows)
	assert.Empty(t, notifications.forUser("admin1"))

	b, err := svc.Create(ctx, "customerA", req("inq-A"))
	require.NoError(t, err)
	require.NotNil(t, b.InquiryID)
	assert.Equal(t, "inq-A", *b.InquiryID)
}
