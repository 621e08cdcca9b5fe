package service

import (
	"context"
	"errors"

	"car_rental/internal/model"
	"car_rental/internal/repository"
	"car_rental/internal/utils"
)

var errBackend = errors.New("backend unavailable")

func page[T any](items []T, p utils.Pagination) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeProfiles struct {
	byID      map[string]*model.Profile
	createErr error
}

func newFakeProfiles(profiles ...*model.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: map[string]*model.Profile{}}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) Create(_ context.Context, p *model.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfiles) FindByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfiles) FindByID(_ context.Context, id string) (*model.Profile, error) {
	return f.byID[id], nil
}

func (f *fakeProfiles) FindByRole(_ context.Context, role string) ([]model.Profile, error) {
	var out []model.Profile
	for _, p := range f.byID {
		if p.Role == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCars struct {
	byID    map[string]*model.Car
	updates int
}

func newFakeCars(cars ...*model.Car) *fakeCars {
	f := &fakeCars{byID: map[string]*model.Car{}}
	for _, c := range cars {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCars) Create(_ context.Context, c *model.Car) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCars) FindByID(_ context.Context, id string) (*model.Car, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCars) List(_ context.Context, _ model.CarFilters, p utils.Pagination) ([]model.Car, int, error) {
	var all []model.Car
	for _, c := range f.byID {
		all = append(all, *c)
	}
	return page(all, p), len(all), nil
}

func (f *fakeCars) Update(_ context.Context, c *model.Car) error {
	if _, ok := f.byID[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.updates++
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCars) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeInquiries joins the car summary the way the SQL LEFT JOIN does.
type fakeInquiries struct {
	rows []*model.Inquiry
	cars *fakeCars
}

func (f *fakeInquiries) withCar(i *model.Inquiry) *model.Inquiry {
	cp := *i
	if c, ok := f.cars.byID[i.CarID]; ok {
		cp.Car = c.Summary()
	}
	return &cp
}

func (f *fakeInquiries) Create(_ context.Context, i *model.Inquiry) error {
	cp := *i
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeInquiries) FindByID(_ context.Context, id string) (*model.Inquiry, error) {
	for _, i := range f.rows {
		if i.ID == id {
			return f.withCar(i), nil
		}
	}
	return nil, nil
}

func (f *fakeInquiries) List(_ context.Context, filters model.InquiryFilters, p utils.Pagination) ([]model.Inquiry, int, error) {
	var matched []model.Inquiry
	for _, i := range f.rows {
		if filters.UserID != nil && i.UserID != *filters.UserID {
			continue
		}
		if filters.Status != nil && i.Status != *filters.Status {
			continue
		}
		matched = append(matched, *f.withCar(i))
	}
	return page(matched, p), len(matched), nil
}

func (f *fakeInquiries) Update(_ context.Context, id string, upd model.InquiryUpdate) (*model.Inquiry, error) {
	for _, i := range f.rows {
		if i.ID != id {
			continue
		}
		if upd.Status != nil {
			i.Status = *upd.Status
		}
		if upd.AdminResponse != nil {
			i.AdminResponse = upd.AdminResponse
		}
		return f.withCar(i), nil
	}
	return nil, repository.ErrNotFound
}

type fakeNotifications struct {
	rows   []model.Notification
	failOn map[string]bool // recipient ids whose insert fails
}

func (f *fakeNotifications) Create(_ context.Context, n *model.Notification) error {
	if f.failOn[n.UserID] {
		return errBackend
	}
	f.rows = append(f.rows, *n)
	return nil
}

func (f *fakeNotifications) ListByUser(_ context.Context, userID string, unreadOnly bool, p utils.Pagination) ([]model.Notification, int, error) {
	var matched []model.Notification
	for _, n := range f.rows {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			matched = append(matched, n)
		}
	}
	return page(matched, p), len(matched), nil
}

func (f *fakeNotifications) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifications) MarkRead(_ context.Context, id, userID string) error {
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for i := range f.rows {
		if f.rows[i].UserID == userID && !f.rows[i].IsRead {
			f.rows[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifications) forUser(userID string) []model.Notification {
	var out []model.Notification
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeDocuments struct {
	rows []*model.Document
}

func (f *fakeDocuments) Create(_ context.Context, d *model.Document) error {
	cp := *d
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeDocuments) FindByID(_ context.Context, id string) (*model.Document, error) {
	for _, d := range f.rows {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDocuments) List(_ context.Context, filters model.DocumentFilters, p utils.Pagination) ([]model.Document, int, error) {
	var matched []model.Document
	for _, d := range f.rows {
		if filters.UserID != nil && d.UserID != *filters.UserID {
			continue
		}
		matched = append(matched, *d)
	}
	return page(matched, p), len(matched), nil
}

func (f *fakeDocuments) Verify(_ context.Context, id, verifiedBy string, isVerified bool, notes *string) (*model.Document, error) {
	for _, d := range f.rows {
		if d.ID == id {
			d.IsVerified = isVerified
			d.VerifiedBy = &verifiedBy
			if notes != nil {
				d.Notes = notes
			}
			cp := *d
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeBookings struct {
	rows []*model.Booking
	cars *fakeCars
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	cp := *b
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeBookings) withCar(b *model.Booking) *model.Booking {
	cp := *b
	if c, ok := f.cars.byID[b.CarID]; ok {
		cp.Car = c.Summary()
	}
	return &cp
}

func (f *fakeBookings) FindByID(_ context.Context, id string) (*model.Booking, error) {
	for _, b := range f.rows {
		if b.ID == id {
			return f.withCar(b), nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) List(_ context.Context, filters model.BookingFilters, p utils.Pagination) ([]model.Booking, int, error) {
	var matched []model.Booking
	for _, b := range f.rows {
		if filters.UserID != nil && b.UserID != *filters.UserID {
			continue
		}
		if filters.Status != nil && b.Status != *filters.Status {
			continue
		}
		matched = append(matched, *f.withCar(b))
	}
	return page(matched, p), len(matched), nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	for _, b := range f.rows {
		if b.ID == id {
			b.Status = status
			return f.withCar(b), nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeExpenses struct {
	rows []model.Expense
}

func (f *fakeExpenses) Create(_ context.Context, e *model.Expense) error {
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeExpenses) List(_ context.Context, _ model.ExpenseFilters, p utils.Pagination) ([]model.Expense, int, error) {
	return page(f.rows, p), len(f.rows), nil
}

func (f *fakeExpenses) FindAll(_ context.Context, _ model.ExpenseFilters) ([]model.Expense, error) {
	return f.rows, nil
}

func (f *fakeExpenses) GetStats(_ context.Context, _ model.ExpenseFilters) (*model.ExpenseStats, error) {
	stats := &model.ExpenseStats{ByCategory: map[string]float64{}}
	for _, e := range f.rows {
		stats.Total += e.Amount
		stats.Count++
		stats.ByCategory[e.Category] += e.Amount
	}
	return stats, nil
}
