package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// --- Фейки ---

type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  map[int64]*domain.Booking
	cancelErr map[int64]error

	// Вызывается после выборки, до пообъектных транзакций: позволяет
	// воспроизвести конкурентное изменение статуса
	afterSelect func(r *fakeBookingRepo)
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:  make(map[int64]*domain.Booking),
		cancelErr: make(map[int64]error),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetElapsedActive(_ context.Context, before time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	var elapsed []*domain.Booking
	for _, b := range r.bookings {
		if b.IsActive() && b.BookingDate.Before(before) {
			copied := *b
			elapsed = append(elapsed, &copied)
		}
	}
	r.mu.Unlock()

	if r.afterSelect != nil {
		r.afterSelect(r)
	}
	return elapsed, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) setStatus(id int64, status domain.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].Status = status
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[id].Status = status
	return nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.cancelErr[id]; err != nil {
		return err
	}
	b := r.bookings[id]
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	return nil
}

func (r *fakeBookingRepo) get(id int64) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id]
}

type fakeLedgerRepo struct {
	mu       sync.Mutex
	released []string
}

func (r *fakeLedgerRepo) ReleaseRange(_ context.Context, resourceID int64, date time.Time, start, end types.TimeString, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.released = append(r.released, fmt.Sprintf("%d/%s/%s-%s", resourceID, date.Format(domain.DateFormat), start, end))
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Тестовые данные ---

var testNow = time.Date(2026, 7, 10, 0, 30, 0, 0, time.UTC)

func elapsedBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ResourceID:  42,
		RequesterID: 100,
		BookingDate: time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "12:00",
		Status:      status,
	}
}

type fixture struct {
	sweeper   *CompletionSweeper
	bookings  *fakeBookingRepo
	ledger    *fakeLedgerRepo
	publisher *fakePublisher
}

func newFixture(bookings ...*domain.Booking) *fixture {
	repo := newFakeBookingRepo(bookings...)
	ledgerRepo := &fakeLedgerRepo{}
	publisher := &fakePublisher{}

	sweeper := NewCompletionSweeper(
		repo,
		ledgerRepo,
		publisher,
		&fakeTxManager{},
		&fakeTimeProvider{now: testNow},
		nopLogger{},
	)

	return &fixture{sweeper: sweeper, bookings: repo, ledger: ledgerRepo, publisher: publisher}
}

// --- Тесты ---

func TestRun_ConfirmedCompleted(t *testing.T) {
	f := newFixture(elapsedBooking(1, domain.StatusConfirmed))

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, f.bookings.get(1).Status)

	// Завершение не освобождает резерв: день уже прошёл
	assert.Empty(t, f.ledger.released)
	assert.Empty(t, f.publisher.events)
}

func TestRun_PendingCancelledWithRelease(t *testing.T) {
	f := newFixture(elapsedBooking(1, domain.StatusPending))

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)

	stored := f.bookings.get(1)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, expiredPendingReason, *stored.CancellationReason)

	require.Len(t, f.ledger.released, 1)
	assert.Equal(t, "42/2026-07-09/10:00-12:00", f.ledger.released[0])

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCancelled, f.publisher.events[0].Type)
}

func TestRun_TodayNotTouched(t *testing.T) {
	booking := elapsedBooking(1, domain.StatusConfirmed)
	booking.BookingDate = time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	f := newFixture(booking)

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)

	// Сегодняшние бронирования ещё активны
	assert.Equal(t, domain.StatusConfirmed, f.bookings.get(1).Status)
}

func TestRun_TerminalNotTouched(t *testing.T) {
	f := newFixture(
		elapsedBooking(1, domain.StatusCancelled),
		elapsedBooking(2, domain.StatusCompleted),
	)

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, f.bookings.get(1).Status)
	assert.Equal(t, domain.StatusCompleted, f.bookings.get(2).Status)
	assert.Empty(t, f.ledger.released)
}

func TestRun_FailureDoesNotBlockBatch(t *testing.T) {
	f := newFixture(
		elapsedBooking(1, domain.StatusPending),
		elapsedBooking(2, domain.StatusPending),
		elapsedBooking(3, domain.StatusConfirmed),
	)
	f.bookings.cancelErr[1] = errors.New("deadlock detected")

	err := f.sweeper.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 bookings failed")

	// Сбой на одном бронировании не мешает обработке остальных
	assert.Equal(t, domain.StatusPending, f.bookings.get(1).Status)
	assert.Equal(t, domain.StatusCancelled, f.bookings.get(2).Status)
	assert.Equal(t, domain.StatusCompleted, f.bookings.get(3).Status)
	assert.Len(t, f.ledger.released, 1)
}

func TestRun_DecidedBetweenSelectionAndSweep(t *testing.T) {
	// Модератор отклоняет бронирование после выборки, но до пообъектной
	// транзакции: перечитанный под блокировкой статус терминальный,
	// бронирование пропускается без повторного освобождения резерва
	f := newFixture(elapsedBooking(1, domain.StatusPending))
	f.bookings.afterSelect = func(r *fakeBookingRepo) {
		r.setStatus(1, domain.StatusRejected)
	}

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, f.bookings.get(1).Status)
	assert.Empty(t, f.ledger.released)
	assert.Empty(t, f.publisher.events)
}

func TestRun_DeletedBetweenSelectionAndSweep(t *testing.T) {
	f := newFixture(elapsedBooking(1, domain.StatusPending))
	f.bookings.afterSelect = func(r *fakeBookingRepo) {
		r.mu.Lock()
		delete(r.bookings, 1)
		r.mu.Unlock()
	}

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.ledger.released)
}

func TestRun_EmptyBatch(t *testing.T) {
	f := newFixture()

	err := f.sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.publisher.events)
}
