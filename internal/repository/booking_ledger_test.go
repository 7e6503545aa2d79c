package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/railbook/internal/domain"
)

func testBooking(id string) *domain.Booking {
	return &domain.Booking{
		BookingID:          id,
		BoardingStation:    "London",
		DestinationStation: "France",
		PricePaid:          20,
		Section:            "SECTION A",
		SeatNumber:         1,
		Passenger: domain.Passenger{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
		},
	}
}

func TestMemoryBookingLedger_PutAndGet(t *testing.T) {
	ledger := NewMemoryBookingLedger()

	booking := testBooking("bk-1")
	ledger.Put(booking)

	got, ok := ledger.Get("bk-1")
	require.True(t, ok)
	assert.Equal(t, *booking, *got)
	assert.Equal(t, 1, ledger.Count())

	_, ok = ledger.Get("missing")
	assert.False(t, ok)
}

func TestMemoryBookingLedger_GetReturnsCopy(t *testing.T) {
	ledger := NewMemoryBookingLedger()
	ledger.Put(testBooking("bk-1"))

	got, ok := ledger.Get("bk-1")
	require.True(t, ok)
	got.SeatNumber = 99

	again, ok := ledger.Get("bk-1")
	require.True(t, ok)
	assert.Equal(t, 1, again.SeatNumber)
}

func TestMemoryBookingLedger_PutStoresCopy(t *testing.T) {
	ledger := NewMemoryBookingLedger()

	booking := testBooking("bk-1")
	ledger.Put(booking)
	booking.SeatNumber = 99

	got, ok := ledger.Get("bk-1")
	require.True(t, ok)
	assert.Equal(t, 1, got.SeatNumber)
}

func TestMemoryBookingLedger_Replace(t *testing.T) {
	ledger := NewMemoryBookingLedger()
	ledger.Put(testBooking("bk-1"))

	updated := testBooking("bk-1")
	updated.SeatNumber = 7
	require.NoError(t, ledger.Replace(updated))

	got, ok := ledger.Get("bk-1")
	require.True(t, ok)
	assert.Equal(t, 7, got.SeatNumber)
}

func TestMemoryBookingLedger_ReplaceMissing(t *testing.T) {
	ledger := NewMemoryBookingLedger()

	err := ledger.Replace(testBooking("bk-1"))
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestMemoryBookingLedger_Remove(t *testing.T) {
	ledger := NewMemoryBookingLedger()
	ledger.Put(testBooking("bk-1"))

	ledger.Remove("bk-1")
	_, ok := ledger.Get("bk-1")
	assert.False(t, ok)
	assert.Equal(t, 0, ledger.Count())

	// Removing an absent id is a no-op
	ledger.Remove("bk-1")
}

func TestMemoryBookingLedger_All(t *testing.T) {
	ledger := NewMemoryBookingLedger()
	ledger.Put(testBooking("bk-1"))
	ledger.Put(testBooking("bk-2"))

	bookings := ledger.All([]string{"bk-2", "missing", "bk-1"})
	require.Len(t, bookings, 2)
	assert.Equal(t, "bk-2", bookings[0].BookingID)
	assert.Equal(t, "bk-1", bookings[1].BookingID)
}

func TestMemoryBookingLedger_FindByPassenger(t *testing.T) {
	ledger := NewMemoryBookingLedger()
	ledger.Put(testBooking("bk-1"))

	// Identity matching is case-insensitive on all three fields
	found, ok := ledger.FindByPassenger(domain.Passenger{
		FirstName:    "ADA",
		LastName:     "lovelace",
		EmailAddress: "Ada@Example.com",
	})
	require.True(t, ok)
	assert.Equal(t, "bk-1", found.BookingID)

	// A different email is a different passenger
	_, ok = ledger.FindByPassenger(domain.Passenger{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		EmailAddress: "other@example.com",
	})
	assert.False(t, ok)
}
