package repository

import (
	"sync"

	"github.com/railbook/railbook/internal/domain"
)

// MemoryBookingLedger implements BookingLedger using in-memory storage.
type MemoryBookingLedger struct {
	bookings map[string]*domain.Booking
	mu       sync.RWMutex
}

// NewMemoryBookingLedger creates an empty ledger.
func NewMemoryBookingLedger() *MemoryBookingLedger {
	return &MemoryBookingLedger{
		bookings: make(map[string]*domain.Booking),
	}
}

// Get retrieves a booking by id.
func (l *MemoryBookingLedger) Get(bookingID string) (*domain.Booking, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	booking, exists := l.bookings[bookingID]
	if !exists {
		return nil, false
	}

	// Return a copy so callers cannot mutate the stored record.
	b := *booking
	return &b, true
}

// Put inserts or overwrites the booking under its id.
func (l *MemoryBookingLedger) Put(booking *domain.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := *booking
	l.bookings[booking.BookingID] = &b
}

// Replace overwrites an existing booking. It fails if no record exists for
// the id.
func (l *MemoryBookingLedger) Replace(booking *domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.bookings[booking.BookingID]; !exists {
		return domain.ErrBookingNotFound
	}

	b := *booking
	l.bookings[booking.BookingID] = &b
	return nil
}

// Remove deletes the booking. Removing an absent id is a no-op.
func (l *MemoryBookingLedger) Remove(bookingID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.bookings, bookingID)
}

// All resolves ids to booking records, preserving input order and skipping
// ids with no record.
func (l *MemoryBookingLedger) All(bookingIDs []string) []*domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*domain.Booking, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		if booking, exists := l.bookings[id]; exists {
			b := *booking
			result = append(result, &b)
		}
	}
	return result
}

// FindByPassenger scans for a booking held by the same ticket holder.
func (l *MemoryBookingLedger) FindByPassenger(p domain.Passenger) (*domain.Booking, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, booking := range l.bookings {
		if booking.Passenger.SameIdentity(p) {
			b := *booking
			return &b, true
		}
	}
	return nil, false
}

// Count returns the number of active bookings.
func (l *MemoryBookingLedger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bookings)
}
