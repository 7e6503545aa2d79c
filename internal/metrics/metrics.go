package metrics

import (
	"sync"

	"github.com/railbook/railbook/internal/telemetry"
)

var (
	// Ticket counters
	TicketsPurchased *telemetry.Counter
	TicketsCancelled *telemetry.Counter
	SeatChanges      *telemetry.Counter
	PurchaseFailures *telemetry.Counter

	// Histograms
	PurchaseDuration *telemetry.Histogram

	initOnce sync.Once
	initErr  error
)

// Init initializes all ticket metrics
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	TicketsPurchased, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_purchased_total",
		Description: "Total number of tickets purchased",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	TicketsCancelled, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_cancelled_total",
		Description: "Total number of bookings cancelled",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SeatChanges, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "seat_changes_total",
		Description: "Total number of seat reassignments",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	PurchaseFailures, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "purchase_failures_total",
		Description: "Total number of rejected purchase attempts",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	PurchaseDuration, err = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "purchase_duration_seconds",
		Description: "Time taken to complete a purchase",
		Unit:        "s",
	})
	if err != nil {
		return err
	}

	return nil
}
