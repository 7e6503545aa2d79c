package repository

import "github.com/railbook/railbook/internal/domain"

// SeatInventory is the fixed pool of train seats. Each seat is either free
// or occupied by exactly one booking id.
type SeatInventory interface {
	// FindFreeSeat returns the first free seat in the inventory's stable
	// scan order, or false when the train is full.
	FindFreeSeat() (domain.Seat, bool)

	// FindFreeSeatExcluding is FindFreeSeat skipping the given seat. Used
	// for seat changes, where the booking's current seat must never be
	// selected as the replacement.
	FindFreeSeatExcluding(exclude domain.SeatKey) (domain.Seat, bool)

	// FindSeatByBooking returns the seat occupied by the given booking id.
	FindSeatByBooking(bookingID string) (domain.Seat, bool)

	// Occupy marks a seat as held by the booking id. It fails if the seat
	// is unknown or already occupied.
	Occupy(seat domain.SeatKey, bookingID string) error

	// Release frees a seat. It fails if the seat is unknown.
	Release(seat domain.SeatKey) error

	// BookingsInSection returns the booking ids occupying seats in the
	// given section, in seat order. Unknown sections yield an empty slice.
	BookingsInSection(sectionID int) []string

	// FreeSeatCount returns the number of currently free seats.
	FreeSeatCount() int

	// TotalSeatCount returns the fixed size of the pool.
	TotalSeatCount() int
}

// BookingLedger is the authoritative table of active bookings, keyed by
// booking id. There are no secondary indexes; passenger lookups scan.
type BookingLedger interface {
	Get(bookingID string) (*domain.Booking, bool)
	Put(booking *domain.Booking)
	Replace(booking *domain.Booking) error
	Remove(bookingID string)

	// All resolves booking ids to records, preserving the input order.
	// Ids with no record are skipped.
	All(bookingIDs []string) []*domain.Booking

	// FindByPassenger returns any booking held by the same ticket holder
	// (case-insensitive name and email match).
	FindByPassenger(p domain.Passenger) (*domain.Booking, bool)

	Count() int
}

// FareTable maps journeys to ticket prices. It is populated at startup and
// never mutated afterwards.
type FareTable interface {
	// PriceFor returns the fare for the journey, matching both stations
	// case-insensitively.
	PriceFor(from, to string) (float64, bool)
}
