package create_booking

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
	"github.com/mosparks/PKS-BookingService/internal/infra/storage/ledger"
	"github.com/mosparks/PKS-BookingService/internal/integrations/catalog"
	"github.com/mosparks/PKS-BookingService/pkg/ptr"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// --- Фейки ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, bookings: make(map[int64]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *booking
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.bookings[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeBookingRepo) GetActiveForDate(_ context.Context, resourceID int64, date time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ResourceID == resourceID && b.BookingDate.Equal(date) && b.IsActive() {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeLedgerRepo struct {
	mu        sync.Mutex
	committed map[string]int
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{committed: make(map[string]int)}
}

func (r *fakeLedgerRepo) key(resourceID int64, date time.Time, slot types.TimeString) string {
	return fmt.Sprintf("%d/%s/%s", resourceID, date.Format(domain.DateFormat), slot)
}

func (r *fakeLedgerRepo) TryReserve(_ context.Context, resourceID int64, date time.Time, slot types.TimeString, capacity, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(resourceID, date, slot)
	if r.committed[key]+amount > capacity {
		return ledger.ErrCapacityExceeded
	}
	r.committed[key] += amount
	return nil
}

type fakeCatalog struct {
	resource *catalog.Resource
	err      error
}

func (c *fakeCatalog) GetResource(context.Context, int64) (*catalog.Resource, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.resource, nil
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

func (p *fakePublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// fakeTxManager сериализует единицы работы мьютексом, имитируя
// сериализацию конкурентов на блокировках строк
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

var (
	testNow  = time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
)

func testResource(model string, capacity int) *catalog.Resource {
	day := catalog.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("09:00"),
		CloseTime: ptr.Ptr("21:00"),
	}
	return &catalog.Resource{
		ID:             42,
		Name:           "Павильон №3",
		OccupancyModel: model,
		Capacity:       capacity,
		Price:          1500,
		Policy: catalog.Policy{
			SlotGranularityMinutes: 60,
			MinDurationMinutes:     60,
			MaxDurationMinutes:     240,
			AdvanceBookingDays:     30,
			OpeningHours: catalog.WeekSchedule{
				Monday: day, Tuesday: day, Wednesday: day,
				Thursday: day, Friday: day, Saturday: day, Sunday: day,
			},
		},
	}
}

type fixture struct {
	useCase   *UseCase
	bookings  *fakeBookingRepo
	ledger    *fakeLedgerRepo
	publisher *fakePublisher
}

func newFixture(resource *catalog.Resource) *fixture {
	bookings := newFakeBookingRepo()
	ledgerRepo := newFakeLedgerRepo()
	publisher := &fakePublisher{}

	uc := New(
		bookings,
		ledgerRepo,
		&fakeCatalog{resource: resource},
		publisher,
		&fakeTxManager{},
		&fakeTimeProvider{now: testNow},
		nopLogger{},
	)

	return &fixture{useCase: uc, bookings: bookings, ledger: ledgerRepo, publisher: publisher}
}

func testRequest(requesterID int64, start, end types.TimeString) Request {
	return Request{
		RequesterID: requesterID,
		ResourceID:  42,
		Date:        testDate,
		StartTime:   start,
		EndTime:     end,
	}
}

// --- Тесты ---

func TestExecute_ExclusiveResource(t *testing.T) {
	f := newFixture(testResource("exclusive", 1))

	resp, err := f.useCase.Execute(context.Background(), testRequest(100, "10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Павильон №3", resp.ResourceName)

	// Пересекающийся интервал другого заявителя отклоняется
	_, err = f.useCase.Execute(context.Background(), testRequest(200, "11:00", "13:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Соприкасающийся интервал допустим
	resp, err = f.useCase.Execute(context.Background(), testRequest(200, "12:00", "14:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_ApprovalGateHoldsReservation(t *testing.T) {
	resource := testResource("exclusive", 1)
	resource.RequiresApproval = true
	f := newFixture(resource)

	resp, err := f.useCase.Execute(context.Background(), testRequest(100, "10:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, resp.RequiresApproval)

	// Ожидающее решения бронирование удерживает резерв
	_, err = f.useCase.Execute(context.Background(), testRequest(200, "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CapacityResource(t *testing.T) {
	f := newFixture(testResource("capacity", 3))

	for i := int64(1); i <= 3; i++ {
		resp, err := f.useCase.Execute(context.Background(), testRequest(100+i, "10:00", "11:00"))
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	}

	// Четвёртый заявитель не помещается
	_, err := f.useCase.Execute(context.Background(), testRequest(200, "10:00", "11:00"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_CapacityConcurrent(t *testing.T) {
	f := newFixture(testResource("capacity", 3))

	var wg sync.WaitGroup
	errs := make([]error, 6)

	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.useCase.Execute(context.Background(), testRequest(int64(1000+i), "10:00", "11:00"))
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrCapacityExceeded)
			rejected++
		}
	}

	// Ровно трое успевают, остальные получают отказ
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 3, rejected)
}

func TestExecute_MultiSlotIntervalReservesEverySlot(t *testing.T) {
	f := newFixture(testResource("capacity", 2))

	// Первый занимает 10:00-13:00 (три слота)
	_, err := f.useCase.Execute(context.Background(), testRequest(100, "10:00", "13:00"))
	require.NoError(t, err)

	// Второй занимает середину
	_, err = f.useCase.Execute(context.Background(), testRequest(200, "11:00", "12:00"))
	require.NoError(t, err)

	// Третий не помещается в слот 11:00, хотя 10:00 и 12:00 свободны
	_, err = f.useCase.Execute(context.Background(), testRequest(300, "10:00", "13:00"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	f := newFixture(testResource("capacity", 10))

	_, err := f.useCase.Execute(context.Background(), testRequest(100, "10:00", "12:00"))
	require.NoError(t, err)

	// Повторная заявка того же заявителя на пересекающийся интервал
	_, err = f.useCase.Execute(context.Background(), testRequest(100, "11:00", "13:00"))
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	// Непересекающийся интервал допустим
	_, err = f.useCase.Execute(context.Background(), testRequest(100, "14:00", "16:00"))
	assert.NoError(t, err)
}

func TestExecute_PolicyViolations(t *testing.T) {
	f := newFixture(testResource("exclusive", 1))

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "past date",
			req:     Request{RequesterID: 100, ResourceID: 42, Date: testNow.AddDate(0, 0, -1), StartTime: "10:00", EndTime: "12:00"},
			wantErr: ErrPastDate,
		},
		{
			name:    "too far in advance",
			req:     Request{RequesterID: 100, ResourceID: 42, Date: testNow.AddDate(0, 0, 60), StartTime: "10:00", EndTime: "12:00"},
			wantErr: ErrTooFarInAdvance,
		},
		{
			name:    "unaligned interval",
			req:     testRequest(100, "10:30", "12:00"),
			wantErr: ErrInvalidInterval,
		},
		{
			name:    "duration too long",
			req:     testRequest(100, "09:00", "15:00"),
			wantErr: ErrDurationOutOfRange,
		},
		{
			name:    "outside operating hours",
			req:     testRequest(100, "07:00", "09:00"),
			wantErr: ErrOutsideOperatingHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.useCase.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ResourceNotFound(t *testing.T) {
	bookings := newFakeBookingRepo()
	uc := New(
		bookings,
		newFakeLedgerRepo(),
		&fakeCatalog{err: catalog.ErrResourceNotFound},
		&fakePublisher{},
		&fakeTxManager{},
		&fakeTimeProvider{now: testNow},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), testRequest(100, "10:00", "12:00"))
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(testResource("exclusive", 1))

	_, err := f.useCase.Execute(context.Background(), Request{RequesterID: 0, ResourceID: 42, Date: testDate, StartTime: "10:00", EndTime: "12:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.useCase.Execute(context.Background(), Request{RequesterID: 100, ResourceID: 42, Date: testDate, StartTime: "abcde", EndTime: "12:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OversizedFieldsRejected(t *testing.T) {
	f := newFixture(testResource("exclusive", 1))

	// Примечание длиннее допустимого
	req := testRequest(100, "10:00", "12:00")
	req.Notes = ptr.Ptr(strings.Repeat("а", domain.MaxNotesLength+1))
	_, err := f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Данные заявителя больше допустимого размера
	req = testRequest(100, "10:00", "12:00")
	req.Requester = []byte(`{"blob":"` + strings.Repeat("x", domain.MaxRequesterPayloadBytes) + `"}`)
	_, err = f.useCase.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Примечание на границе допустимого проходит
	req = testRequest(100, "10:00", "12:00")
	req.Notes = ptr.Ptr(strings.Repeat("а", domain.MaxNotesLength))
	_, err = f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_PublishesCreatedEvent(t *testing.T) {
	f := newFixture(testResource("exclusive", 1))

	resp, err := f.useCase.Execute(context.Background(), testRequest(100, "10:00", "12:00"))
	require.NoError(t, err)

	published := f.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeBookingCreated, published[0].Type)
	assert.Equal(t, resp.ID, published[0].BookingID)
	assert.Equal(t, int64(42), published[0].ResourceID)
	assert.Equal(t, "10:00", published[0].StartTime)
}

func TestExecute_NoBookingOnRejectedReservation(t *testing.T) {
	f := newFixture(testResource("exclusive", 1))

	_, err := f.useCase.Execute(context.Background(), testRequest(100, "10:00", "12:00"))
	require.NoError(t, err)

	_, err = f.useCase.Execute(context.Background(), testRequest(200, "10:00", "12:00"))
	require.ErrorIs(t, err, ErrSlotTaken)

	// Отклонённая заявка не оставляет следа ни в бронированиях, ни в событиях
	assert.Len(t, f.bookings.bookings, 1)
	assert.Len(t, f.publisher.published(), 1)
}
