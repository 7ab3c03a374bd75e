package decide_booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/internal/infra/events"
	bookingstorage "github.com/mosparks/PKS-BookingService/internal/infra/storage/booking"
	"github.com/mosparks/PKS-BookingService/pkg/ptr"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// --- Фейки ---

type fakeBookingRepo struct {
	mu       sync.Mutex
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
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingstorage.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Decide(_ context.Context, id int64, status domain.BookingStatus, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.bookings[id]
	b.Status = status
	b.DecisionNotes = notes
	if status == domain.StatusConfirmed {
		b.ApprovalGranted = true
	}
	now := time.Now()
	b.DecidedAt = &now
	return nil
}

func (r *fakeBookingRepo) RecordApproval(_ context.Context, id int64, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.bookings[id]
	b.ApprovalGranted = true
	b.DecisionNotes = notes
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

var testNow = time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

func pendingBooking(id int64, requiresPayment bool) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		ResourceID:       42,
		RequesterID:      100,
		BookingDate:      time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		StartTime:        "10:00",
		EndTime:          "12:00",
		Status:           domain.StatusPending,
		RequiresApproval: true,
		RequiresPayment:  requiresPayment,
	}
}

type fixture struct {
	useCase   *UseCase
	bookings  *fakeBookingRepo
	ledger    *fakeLedgerRepo
	publisher *fakePublisher
}

func newFixture(bookings ...*domain.Booking) *fixture {
	repo := newFakeBookingRepo(bookings...)
	ledgerRepo := &fakeLedgerRepo{}
	publisher := &fakePublisher{}

	uc := New(
		repo,
		ledgerRepo,
		publisher,
		&fakeTxManager{},
		&fakeTimeProvider{now: testNow},
		nopLogger{},
	)

	return &fixture{useCase: uc, bookings: repo, ledger: ledgerRepo, publisher: publisher}
}

// --- Тесты ---

func TestExecute_ApproveConfirms(t *testing.T) {
	f := newFixture(pendingBooking(1, false))

	resp, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Резерв сохраняется после подтверждения
	assert.Empty(t, f.ledger.released)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingConfirmed, f.publisher.events[0].Type)
}

func TestExecute_ApproveAwaitingPaymentStaysPending(t *testing.T) {
	f := newFixture(pendingBooking(1, true))

	resp, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	// Одобрение зафиксировано, но подтверждение ждёт оплаты
	stored := f.bookings.get(1)
	assert.True(t, stored.ApprovalGranted)
	assert.Equal(t, domain.StatusPending, stored.Status)

	// Событие подтверждения не публикуется
	assert.Empty(t, f.publisher.events)
	// Резерв продолжает удерживаться
	assert.Empty(t, f.ledger.released)
}

func TestExecute_RejectReleasesReservation(t *testing.T) {
	f := newFixture(pendingBooking(1, false))
	notes := "площадка на ремонте"

	resp, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    DecisionReject,
		Notes:       &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRejected), resp.Status)

	// Слоты освобождены в той же единице работы
	require.Len(t, f.ledger.released, 1)
	assert.Equal(t, "42/2026-07-15/10:00-12:00", f.ledger.released[0])

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingRejected, f.publisher.events[0].Type)
}

func TestExecute_AlreadyDecided(t *testing.T) {
	confirmed := pendingBooking(1, false)
	confirmed.Status = domain.StatusConfirmed
	f := newFixture(confirmed)

	_, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    DecisionReject,
	})
	assert.ErrorIs(t, err, ErrNotPending)

	// Повторное решение не освобождает резерв второй раз
	assert.Empty(t, f.ledger.released)
}

func TestExecute_ApprovalNotRequired(t *testing.T) {
	booking := pendingBooking(1, true)
	booking.RequiresApproval = false
	f := newFixture(booking)

	_, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    DecisionApprove,
	})
	assert.ErrorIs(t, err, ErrApprovalNotRequired)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   99,
		ModeratorID: 500,
		Decision:    DecisionApprove,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidDecision(t *testing.T) {
	f := newFixture(pendingBooking(1, false))

	_, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    "maybe",
	})
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestExecute_OversizedNotesRejected(t *testing.T) {
	f := newFixture(pendingBooking(1, false))

	_, err := f.useCase.Execute(context.Background(), Request{
		BookingID:   1,
		ModeratorID: 500,
		Decision:    DecisionApprove,
		Notes:       ptr.Ptr(strings.Repeat("а", domain.MaxDecisionNotesLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
