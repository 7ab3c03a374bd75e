package overlap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

func TestIndex_QueryHalfOpen(t *testing.T) {
	idx := NewIndex()
	idx.Insert(1, "10:00", "12:00")

	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		want  bool
	}{
		{name: "identical interval", start: "10:00", end: "12:00", want: true},
		{name: "contained", start: "10:30", end: "11:30", want: true},
		{name: "overlaps start", start: "09:00", end: "10:30", want: true},
		{name: "overlaps end", start: "11:30", end: "13:00", want: true},
		{name: "covers", start: "09:00", end: "13:00", want: true},
		{name: "touches end", start: "12:00", end: "13:00", want: false},
		{name: "touches start", start: "09:00", end: "10:00", want: false},
		{name: "before", start: "08:00", end: "09:00", want: false},
		{name: "after", start: "13:00", end: "14:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Query(tt.start, tt.end))
		})
	}
}

func TestIndex_InsertKeepsOrder(t *testing.T) {
	idx := NewIndex()
	idx.Insert(3, "14:00", "15:00")
	idx.Insert(1, "09:00", "10:00")
	idx.Insert(2, "11:00", "12:00")

	assert.Equal(t, 3, idx.Len())

	// Запрос до первого интервала обрывается на первой записи
	assert.False(t, idx.Query("08:00", "09:00"))
	assert.True(t, idx.Query("09:30", "11:30"))
}

func TestIndex_Remove(t *testing.T) {
	idx := NewIndex()
	idx.Insert(1, "10:00", "12:00")
	idx.Insert(2, "14:00", "16:00")

	assert.True(t, idx.Remove(1))
	assert.False(t, idx.Query("10:00", "12:00"))
	assert.True(t, idx.Query("14:00", "16:00"))

	// Повторное удаление - no-op
	assert.False(t, idx.Remove(1))
	assert.Equal(t, 1, idx.Len())
}

func TestIndex_CountOverlapping(t *testing.T) {
	idx := NewIndex()
	idx.Insert(1, "10:00", "12:00")
	idx.Insert(2, "11:00", "13:00")
	idx.Insert(3, "12:00", "14:00")

	assert.Equal(t, 2, idx.CountOverlapping("11:30", "12:30"))
	assert.Equal(t, 3, idx.CountOverlapping("10:00", "14:00"))
	assert.Equal(t, 0, idx.CountOverlapping("08:00", "10:00"))
}


func TestFromBookings_SkipsTerminal(t *testing.T) {
	date := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	bookings := []*domain.Booking{
		{ID: 1, BookingDate: date, StartTime: "10:00", EndTime: "12:00", Status: domain.StatusPending},
		{ID: 2, BookingDate: date, StartTime: "12:00", EndTime: "14:00", Status: domain.StatusConfirmed},
		{ID: 3, BookingDate: date, StartTime: "14:00", EndTime: "16:00", Status: domain.StatusCancelled},
		{ID: 4, BookingDate: date, StartTime: "16:00", EndTime: "18:00", Status: domain.StatusRejected},
		{ID: 5, BookingDate: date, StartTime: "18:00", EndTime: "20:00", Status: domain.StatusCompleted},
	}

	idx := FromBookings(bookings)

	// Резерв удерживают только pending и confirmed
	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Query("10:00", "11:00"))
	assert.True(t, idx.Query("13:00", "14:00"))
	assert.False(t, idx.Query("14:00", "16:00"))
	assert.False(t, idx.Query("18:00", "20:00"))
}
