package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
	"github.com/mosparks/PKS-BookingService/internal/service/bookings/models"
	"github.com/mosparks/PKS-BookingService/pkg/ptr"
)

// --- Фейки ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByRequesterID(_ context.Context, requesterID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.RequesterID != requesterID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByResourceWithFilter(_ context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.ResourceID != filter.ResourceID {
			continue
		}
		if !filter.IncludeInactive && b.IsTerminal() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Тестовые данные ---

func testBooking(id, resourceID, requesterID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ResourceID:  resourceID,
		RequesterID: requesterID,
		BookingDate: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Status:      status,
	}
}

// --- Тесты ---

func TestGetByID_OwnBooking(t *testing.T) {
	svc := NewService(newFakeBookingRepo(testBooking(1, 42, 100, domain.StatusConfirmed)), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 100, false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-07-15", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestGetByID_AdminSeesAny(t *testing.T) {
	svc := NewService(newFakeBookingRepo(testBooking(1, 42, 100, domain.StatusConfirmed)), nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 999, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc := NewService(newFakeBookingRepo(testBooking(1, 42, 100, domain.StatusConfirmed)), nopLogger{})

	_, err := svc.GetByID(context.Background(), 1, 999, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetByID(context.Background(), 7, 100, false)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetRequesterBookings_FiltersByStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(
		testBooking(1, 42, 100, domain.StatusConfirmed),
		testBooking(2, 42, 100, domain.StatusCancelled),
		testBooking(3, 42, 200, domain.StatusConfirmed),
	), nopLogger{})

	resp, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
		RequesterID: 100,
		Status:      ptr.Ptr(string(domain.StatusConfirmed)),
	})
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestGetRequesterBookings_AllStatuses(t *testing.T) {
	svc := NewService(newFakeBookingRepo(
		testBooking(1, 42, 100, domain.StatusConfirmed),
		testBooking(2, 42, 100, domain.StatusCancelled),
	), nopLogger{})

	resp, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
		RequesterID: 100,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetRequesterBookings_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetRequesterBookings(context.Background(), &models.GetRequesterBookingsRequest{
		RequesterID: 100,
		Status:      ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetResourceBookings_ActiveOnly(t *testing.T) {
	svc := NewService(newFakeBookingRepo(
		testBooking(1, 42, 100, domain.StatusConfirmed),
		testBooking(2, 42, 200, domain.StatusPending),
		testBooking(3, 42, 300, domain.StatusCancelled),
		testBooking(4, 77, 100, domain.StatusConfirmed),
	), nopLogger{})

	resp, err := svc.GetResourceBookings(context.Background(), &models.GetResourceBookingsRequest{
		ResourceID: 42,
	})
	require.NoError(t, err)

	// Терминальные и чужие ресурсы отфильтрованы
	assert.Len(t, resp.Bookings, 2)
}

func TestGetResourceBookings_IncludeInactive(t *testing.T) {
	svc := NewService(newFakeBookingRepo(
		testBooking(1, 42, 100, domain.StatusConfirmed),
		testBooking(2, 42, 300, domain.StatusCancelled),
	), nopLogger{})

	resp, err := svc.GetResourceBookings(context.Background(), &models.GetResourceBookingsRequest{
		ResourceID:      42,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetResourceBookings_InvalidStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), nopLogger{})

	_, err := svc.GetResourceBookings(context.Background(), &models.GetResourceBookingsRequest{
		ResourceID: 42,
		Status:     ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
