// Package mapper converts internal booking records to the caller-facing
// receipt and summary shapes. All functions are pure; no state, no
// validation.
package mapper

import (
	"github.com/railbook/railbook/internal/domain"
	"github.com/railbook/railbook/internal/dto"
)

// ReceiptFromBooking maps a ledger record to the public receipt shape.
func ReceiptFromBooking(b *domain.Booking) *dto.TicketReceiptResponse {
	return &dto.TicketReceiptResponse{
		BookingID:          b.BookingID,
		BoardingStation:    b.BoardingStation,
		DestinationStation: b.DestinationStation,
		PricePaid:          b.PricePaid,
		Section:            b.Section,
		SeatNumber:         b.SeatNumber,
		Passenger:          b.Passenger,
	}
}

// SectionBookingsFromBookings maps ledger records to section-summary rows,
// preserving order.
func SectionBookingsFromBookings(bookings []*domain.Booking) []*dto.SectionBookingResponse {
	summaries := make([]*dto.SectionBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		summaries = append(summaries, &dto.SectionBookingResponse{
			Passenger:   b.Passenger,
			SectionName: b.Section,
			SeatNumber:  b.SeatNumber,
		})
	}
	return summaries
}
