package domain

import "time"

// Booking is a passenger's claim on one seat for one journey. It is the
// canonical ledger record; transport-facing shapes are produced at the
// boundary by the mapper.
type Booking struct {
	BookingID          string
	BoardingStation    string
	DestinationStation string
	PricePaid          float64
	Section            string
	SeatNumber         int
	Passenger          Passenger
}

// BookingEventType identifies a booking lifecycle event
type BookingEventType string

const (
	BookingEventPurchased   BookingEventType = "ticket.purchased"
	BookingEventCancelled   BookingEventType = "ticket.cancelled"
	BookingEventSeatChanged BookingEventType = "ticket.seat_changed"
)

// BookingEvent is the payload published to the event stream for downstream
// consumers.
type BookingEvent struct {
	EventID            string           `json:"event_id"`
	Type               BookingEventType `json:"type"`
	BookingID          string           `json:"booking_id"`
	BoardingStation    string           `json:"boarding_station"`
	DestinationStation string           `json:"destination_station"`
	PricePaid          float64          `json:"price_paid"`
	Section            string           `json:"section"`
	SeatNumber         int              `json:"seat_number"`
	Passenger          Passenger        `json:"passenger"`
	OccurredAt         time.Time        `json:"occurred_at"`
}

// NewBookingEvent builds an event from a booking record.
func NewBookingEvent(eventType BookingEventType, booking *Booking, eventID string) *BookingEvent {
	return &BookingEvent{
		EventID:            eventID,
		Type:               eventType,
		BookingID:          booking.BookingID,
		BoardingStation:    booking.BoardingStation,
		DestinationStation: booking.DestinationStation,
		PricePaid:          booking.PricePaid,
		Section:            booking.Section,
		SeatNumber:         booking.SeatNumber,
		Passenger:          booking.Passenger,
		OccurredAt:         time.Now().UTC(),
	}
}

// Key returns the partition key for the event stream. Events for the same
// booking stay ordered.
func (e *BookingEvent) Key() string {
	return e.BookingID
}
