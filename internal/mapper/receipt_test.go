package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/railbook/railbook/internal/domain"
)

func TestReceiptFromBooking(t *testing.T) {
	booking := &domain.Booking{
		BookingID:          "bk-1",
		BoardingStation:    "London",
		DestinationStation: "France",
		PricePaid:          20,
		Section:            "SECTION A",
		SeatNumber:         3,
		Passenger: domain.Passenger{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
		},
	}

	receipt := ReceiptFromBooking(booking)

	assert.Equal(t, "bk-1", receipt.BookingID)
	assert.Equal(t, "London", receipt.BoardingStation)
	assert.Equal(t, "France", receipt.DestinationStation)
	assert.Equal(t, 20.0, receipt.PricePaid)
	assert.Equal(t, "SECTION A", receipt.Section)
	assert.Equal(t, 3, receipt.SeatNumber)
	assert.Equal(t, booking.Passenger, receipt.Passenger)
}

func TestSectionBookingsFromBookings(t *testing.T) {
	bookings := []*domain.Booking{
		{Section: "SECTION A", SeatNumber: 1, Passenger: domain.Passenger{FirstName: "Ada"}},
		{Section: "SECTION A", SeatNumber: 2, Passenger: domain.Passenger{FirstName: "Grace"}},
	}

	rows := SectionBookingsFromBookings(bookings)

	assert.Len(t, rows, 2)
	assert.Equal(t, "Ada", rows[0].Passenger.FirstName)
	assert.Equal(t, 1, rows[0].SeatNumber)
	assert.Equal(t, "Grace", rows[1].Passenger.FirstName)
	assert.Equal(t, 2, rows[1].SeatNumber)
}

func TestSectionBookingsFromBookings_Empty(t *testing.T) {
	rows := SectionBookingsFromBookings(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
