package dto

import (
	"github.com/railbook/railbook/internal/domain"
)

// PurchaseTicketRequest represents a request to purchase a ticket. Field
// presence is validated by the service so failures surface in the documented
// order, not by binding tags.
type PurchaseTicketRequest struct {
	BoardingStation    string           `json:"boarding_station"`
	DestinationStation string           `json:"destination_station"`
	Passenger          domain.Passenger `json:"passenger"`
}

// TicketReceiptResponse is the caller-facing representation of a booking.
type TicketReceiptResponse struct {
	BookingID          string           `json:"booking_id"`
	BoardingStation    string           `json:"boarding_station"`
	DestinationStation string           `json:"destination_station"`
	PricePaid          float64          `json:"price_paid"`
	Section            string           `json:"section"`
	SeatNumber         int              `json:"seat_number"`
	Passenger          domain.Passenger `json:"passenger"`
}

// SectionBookingResponse is one row of a section listing. Price and stations
// are omitted from the summary by design.
type SectionBookingResponse struct {
	Passenger   domain.Passenger `json:"passenger"`
	SectionName string           `json:"section_name"`
	SeatNumber  int              `json:"seat_number"`
}

// SectionBookingsResponse wraps a section listing.
type SectionBookingsResponse struct {
	Bookings []*SectionBookingResponse `json:"bookings"`
}

// CancelBookingResponse acknowledges a cancellation.
type CancelBookingResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// ErrorResponse is the error payload for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
