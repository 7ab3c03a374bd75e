// Package overlap provides an ordered interval index over one resource-day.
// The booking coordinator builds it inside the atomic unit of work from the
// day's active bookings (fetched with row locks held), queries it for the
// exclusive-occupancy and duplicate checks, and keeps it in sync with the
// rows it writes during that unit of work.
package overlap

import (
	"sort"

	"github.com/mosparks/PKS-BookingService/internal/domain"
	"github.com/mosparks/PKS-BookingService/pkg/types"
)

// Entry is one indexed interval
type Entry struct {
	BookingID int64
	Start     types.TimeString
	End       types.TimeString
}

// Index keeps intervals ordered by start time so overlap queries can stop
// scanning as soon as an interval starts at or after the queried end.
// Not safe for concurrent use: callers are serialized by the unit of work.
type Index struct {
	entries []Entry
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{entries: make([]Entry, 0)}
}

// FromBookings builds an index over the active bookings of one day.
// Terminal bookings never occupy the index.
func FromBookings(bookings []*domain.Booking) *Index {
	idx := NewIndex()
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		idx.Insert(b.ID, b.StartTime, b.EndTime)
	}
	return idx
}

// Insert adds an interval, keeping the slice ordered by start time
func (ix *Index) Insert(bookingID int64, start, end types.TimeString) {
	pos := sort.Search(len(ix.entries), func(i int) bool {
		return !ix.entries[i].Start.IsBefore(start)
	})
	ix.entries = append(ix.entries, Entry{})
	copy(ix.entries[pos+1:], ix.entries[pos:])
	ix.entries[pos] = Entry{BookingID: bookingID, Start: start, End: end}
}

// Remove deletes the interval of a booking. Returns false if the booking
// is not indexed, which callers treat as an already-released no-op.
func (ix *Index) Remove(bookingID int64) bool {
	for i, e := range ix.entries {
		if e.BookingID == bookingID {
			ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Query reports whether [start, end) intersects any indexed interval.
// Half-open semantics: two intervals intersect iff s1 < e2 && s2 < e1,
// so touching endpoints do not conflict.
func (ix *Index) Query(start, end types.TimeString) bool {
	for _, e := range ix.entries {
		if !e.Start.IsBefore(end) {
			// Entries are ordered by start: nothing further can overlap
			break
		}
		if start.IsBefore(e.End) {
			return true
		}
	}
	return false
}

// CountOverlapping returns how many indexed intervals intersect [start, end)
func (ix *Index) CountOverlapping(start, end types.TimeString) int {
	count := 0
	for _, e := range ix.entries {
		if !e.Start.IsBefore(end) {
			break
		}
		if start.IsBefore(e.End) {
			count++
		}
	}
	return count
}

// Len returns the number of indexed intervals
func (ix *Index) Len() int {
	return len(ix.entries)
}
