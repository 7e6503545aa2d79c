package repository

import (
	"fmt"
	"sync"

	"github.com/railbook/railbook/internal/domain"
)

// MemorySeatInventory implements SeatInventory using in-memory storage.
// Seats are created once at construction and never added or removed; only
// their occupant changes. All state is volatile and reset on restart.
type MemorySeatInventory struct {
	seats     []domain.Seat             // stable scan order: section 1 seats first, then section 2, ...
	occupants map[domain.SeatKey]string // empty string means free
	mu        sync.RWMutex
}

// NewMemorySeatInventory creates an inventory of totalSeats seats split
// across the given sections. Seats are numbered from 1 within each section;
// when the total does not divide evenly, earlier sections get the extra
// seats.
func NewMemorySeatInventory(totalSeats int, sectionNames []string) (*MemorySeatInventory, error) {
	if totalSeats <= 0 {
		return nil, fmt.Errorf("total seats must be positive, got %d", totalSeats)
	}
	if len(sectionNames) == 0 {
		return nil, fmt.Errorf("at least one section is required")
	}

	inv := &MemorySeatInventory{
		seats:     make([]domain.Seat, 0, totalSeats),
		occupants: make(map[domain.SeatKey]string, totalSeats),
	}

	per := totalSeats / len(sectionNames)
	extra := totalSeats % len(sectionNames)
	for i, name := range sectionNames {
		count := per
		if i < extra {
			count++
		}
		for n := 1; n <= count; n++ {
			seat := domain.Seat{
				SectionID:   i + 1,
				SeatNumber:  n,
				SectionName: name,
			}
			inv.seats = append(inv.seats, seat)
			inv.occupants[seat.Key()] = ""
		}
	}

	return inv, nil
}

// FindFreeSeat returns the first free seat in scan order.
func (inv *MemorySeatInventory) FindFreeSeat() (domain.Seat, bool) {
	return inv.FindFreeSeatExcluding(domain.SeatKey{})
}

// FindFreeSeatExcluding returns the first free seat whose key differs from
// exclude. The zero SeatKey never matches a real seat, so it excludes
// nothing.
func (inv *MemorySeatInventory) FindFreeSeatExcluding(exclude domain.SeatKey) (domain.Seat, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	for _, seat := range inv.seats {
		key := seat.Key()
		if key == exclude {
			continue
		}
		if inv.occupants[key] == "" {
			return seat, true
		}
	}
	return domain.Seat{}, false
}

// FindSeatByBooking returns the seat occupied by the booking id.
func (inv *MemorySeatInventory) FindSeatByBooking(bookingID string) (domain.Seat, bool) {
	if bookingID == "" {
		return domain.Seat{}, false
	}

	inv.mu.RLock()
	defer inv.mu.RUnlock()

	for _, seat := range inv.seats {
		if inv.occupants[seat.Key()] == bookingID {
			return seat, true
		}
	}
	return domain.Seat{}, false
}

// Occupy marks the seat as held by the booking id. The occupant is replaced
// wholesale, never partially updated.
func (inv *MemorySeatInventory) Occupy(seat domain.SeatKey, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("booking id is required to occupy a seat")
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	current, exists := inv.occupants[seat]
	if !exists {
		return fmt.Errorf("unknown seat: section %d seat %d", seat.SectionID, seat.SeatNumber)
	}
	if current != "" {
		return fmt.Errorf("seat already occupied: section %d seat %d held by %s", seat.SectionID, seat.SeatNumber, current)
	}

	inv.occupants[seat] = bookingID
	return nil
}

// Release frees the seat.
func (inv *MemorySeatInventory) Release(seat domain.SeatKey) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, exists := inv.occupants[seat]; !exists {
		return fmt.Errorf("unknown seat: section %d seat %d", seat.SectionID, seat.SeatNumber)
	}

	inv.occupants[seat] = ""
	return nil
}

// BookingsInSection returns occupying booking ids for the section in seat
// order.
func (inv *MemorySeatInventory) BookingsInSection(sectionID int) []string {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	ids := make([]string, 0)
	for _, seat := range inv.seats {
		if seat.SectionID != sectionID {
			continue
		}
		if occupant := inv.occupants[seat.Key()]; occupant != "" {
			ids = append(ids, occupant)
		}
	}
	return ids
}

// FreeSeatCount returns the number of free seats.
func (inv *MemorySeatInventory) FreeSeatCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	free := 0
	for _, occupant := range inv.occupants {
		if occupant == "" {
			free++
		}
	}
	return free
}

// TotalSeatCount returns the fixed pool size.
func (inv *MemorySeatInventory) TotalSeatCount() int {
	return len(inv.seats)
}
