package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/railbook/railbook/internal/domain"
	"github.com/railbook/railbook/internal/dto"
	"github.com/railbook/railbook/internal/mapper"
	"github.com/railbook/railbook/internal/metrics"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/telemetry"
)

// TicketService defines the interface for the booking engine
type TicketService interface {
	// PurchaseTicket allocates a seat, prices the journey and records the
	// booking. Fails with a typed error when validation rejects the request.
	PurchaseTicket(ctx context.Context, req *dto.PurchaseTicketRequest) (*dto.TicketReceiptResponse, error)

	// GetReceipt retrieves the receipt for a booking; the email must match
	// the booking's passenger.
	GetReceipt(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error)

	// GetSectionBookings lists occupied seats in a section. Unknown or
	// empty sections yield an empty list, not an error.
	GetSectionBookings(ctx context.Context, sectionID int) ([]*dto.SectionBookingResponse, error)

	// CancelBooking removes the booking and frees its seat.
	CancelBooking(ctx context.Context, bookingID, email string) error

	// ChangeSeat moves the booking to a different free seat.
	ChangeSeat(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error)
}

// EmailValidator reports whether an email address is syntactically valid.
// The real validator is an external collaborator; this is its boolean shape.
type EmailValidator func(string) bool

// ticketService implements TicketService
type ticketService struct {
	seats        repository.SeatInventory
	ledger       repository.BookingLedger
	fares        repository.FareTable
	events       EventPublisher
	isValidEmail EmailValidator
	now          func() time.Time

	// mu serializes validation-through-mutation so every check observes
	// the same seat/ledger snapshot the final write applies to. Reads take
	// it shared, which also keeps a retrieve from seeing a cancel halfway
	// through its two-store update.
	mu sync.RWMutex
}

// TicketServiceConfig contains configuration for the ticket service
type TicketServiceConfig struct {
	EmailValidator EmailValidator
	Now            func() time.Time
}

// NewTicketService creates a new ticket service
func NewTicketService(
	seats repository.SeatInventory,
	ledger repository.BookingLedger,
	fares repository.FareTable,
	events EventPublisher,
	cfg *TicketServiceConfig,
) TicketService {
	isValidEmail := defaultEmailValidator
	now := time.Now
	if cfg != nil {
		if cfg.EmailValidator != nil {
			isValidEmail = cfg.EmailValidator
		}
		if cfg.Now != nil {
			now = cfg.Now
		}
	}
	if events == nil {
		events = NewNoOpEventPublisher()
	}
	return &ticketService{
		seats:        seats,
		ledger:       ledger,
		fares:        fares,
		events:       events,
		isValidEmail: isValidEmail,
		now:          now,
	}
}

// PurchaseTicket allocates a seat and records the booking. Checks run in a
// fixed order and the first failure wins.
func (s *ticketService) PurchaseTicket(ctx context.Context, req *dto.PurchaseTicketRequest) (*dto.TicketReceiptResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.purchase")
	defer span.End()
	started := s.now()

	if req == nil {
		span.SetStatus(codes.Error, "missing journey details")
		return nil, domain.ErrMissingJourneyDetails
	}

	span.SetAttributes(
		attribute.String("boarding_station", req.BoardingStation),
		attribute.String("destination_station", req.DestinationStation),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	seat, err := s.validatePurchase(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		metrics.PurchaseFailures.Add(ctx, 1, attribute.String("reason", failureReason(err)))
		return nil, err
	}

	price, ok := s.fares.PriceFor(req.BoardingStation, req.DestinationStation)
	if !ok {
		span.SetStatus(codes.Error, "unknown journey")
		metrics.PurchaseFailures.Add(ctx, 1, attribute.String("reason", failureReason(domain.ErrUnknownJourney)))
		return nil, domain.ErrUnknownJourney
	}

	booking := &domain.Booking{
		BookingID:          s.newBookingID(),
		BoardingStation:    req.BoardingStation,
		DestinationStation: req.DestinationStation,
		PricePaid:          price,
		Section:            seat.SectionName,
		SeatNumber:         seat.SeatNumber,
		Passenger:          req.Passenger,
	}

	// The free seat was found under the same lock, so occupying it cannot
	// fail; if it does, the inventory and ledger have diverged.
	if err := s.seats.Occupy(seat.Key(), booking.BookingID); err != nil {
		panic(fmt.Sprintf("seat inventory out of sync: %v", err))
	}
	s.ledger.Put(booking)

	_ = s.events.PublishTicketPurchased(ctx, booking)

	span.SetAttributes(attribute.String("booking_id", booking.BookingID))
	span.SetStatus(codes.Ok, "")
	metrics.TicketsPurchased.Add(ctx, 1, attribute.String("section", booking.Section))
	metrics.PurchaseDuration.Record(ctx, s.now().Sub(started).Seconds())

	return mapper.ReceiptFromBooking(booking), nil
}

// validatePurchase runs the purchase validation chain and returns the seat
// the booking will take. Must be called with mu held.
func (s *ticketService) validatePurchase(req *dto.PurchaseTicketRequest) (domain.Seat, error) {
	seat, ok := s.seats.FindFreeSeat()
	if !ok {
		return domain.Seat{}, domain.ErrNoSeatsAvailable
	}

	if strings.TrimSpace(req.BoardingStation) == "" || strings.TrimSpace(req.DestinationStation) == "" {
		return domain.Seat{}, domain.ErrMissingJourneyDetails
	}

	if req.Passenger.Incomplete() {
		return domain.Seat{}, domain.ErrMissingPassengerDetails
	}

	if !s.isValidEmail(req.Passenger.EmailAddress) {
		return domain.Seat{}, domain.ErrInvalidEmailFormat
	}

	if _, exists := s.ledger.FindByPassenger(req.Passenger); exists {
		return domain.Seat{}, domain.ErrDuplicatePassenger
	}

	return seat, nil
}

// GetReceipt returns the receipt for a booking.
func (s *ticketService) GetReceipt(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error) {
	_, span := telemetry.StartSpan(ctx, "service.ticket.get_receipt")
	defer span.End()
	span.SetAttributes(attribute.String("booking_id", bookingID))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.seats.FindSeatByBooking(bookingID); !ok {
		span.SetStatus(codes.Error, "booking not found")
		return nil, domain.ErrBookingNotFound
	}

	booking := s.mustBooking(bookingID)
	if !strings.EqualFold(booking.Passenger.EmailAddress, email) {
		span.SetStatus(codes.Error, "email mismatch")
		return nil, domain.ErrEmailMismatch
	}

	span.SetStatus(codes.Ok, "")
	return mapper.ReceiptFromBooking(booking), nil
}

// GetSectionBookings lists the occupied seats in a section.
func (s *ticketService) GetSectionBookings(ctx context.Context, sectionID int) ([]*dto.SectionBookingResponse, error) {
	_, span := telemetry.StartSpan(ctx, "service.ticket.section_bookings")
	defer span.End()
	span.SetAttributes(attribute.Int("section_id", sectionID))

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.seats.BookingsInSection(sectionID)
	bookings := make([]*domain.Booking, 0, len(ids))
	for _, id := range ids {
		bookings = append(bookings, s.mustBooking(id))
	}

	span.SetAttributes(attribute.Int("booking_count", len(bookings)))
	span.SetStatus(codes.Ok, "")
	return mapper.SectionBookingsFromBookings(bookings), nil
}

// CancelBooking removes the booking and frees its seat.
func (s *ticketService) CancelBooking(ctx context.Context, bookingID, email string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("booking_id", bookingID))

	s.mu.Lock()
	defer s.mu.Unlock()

	seat, ok := s.seats.FindSeatByBooking(bookingID)
	if !ok {
		span.SetStatus(codes.Error, "booking not found")
		return domain.ErrBookingNotFound
	}

	booking := s.mustBooking(bookingID)
	if !strings.EqualFold(booking.Passenger.EmailAddress, email) {
		span.SetStatus(codes.Error, "email mismatch")
		return domain.ErrEmailMismatch
	}

	s.ledger.Remove(bookingID)
	if err := s.seats.Release(seat.Key()); err != nil {
		panic(fmt.Sprintf("seat inventory out of sync: %v", err))
	}

	_ = s.events.PublishTicketCancelled(ctx, booking)

	span.SetStatus(codes.Ok, "")
	metrics.TicketsCancelled.Add(ctx, 1, attribute.String("section", booking.Section))
	return nil
}

// ChangeSeat moves the booking to a different free seat. The replacement is
// never the seat being vacated: with only the booking's own seat free, the
// change fails rather than reassigning in place.
func (s *ticketService) ChangeSeat(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.change_seat")
	defer span.End()
	span.SetAttributes(attribute.String("booking_id", bookingID))

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.seats.FindSeatByBooking(bookingID)
	if !ok {
		span.SetStatus(codes.Error, "booking not found")
		return nil, domain.ErrBookingNotFound
	}

	next, ok := s.seats.FindFreeSeatExcluding(current.Key())
	if !ok {
		span.SetStatus(codes.Error, "no seat for change")
		return nil, domain.ErrNoSeatForChange
	}

	booking := s.mustBooking(bookingID)
	if !strings.EqualFold(booking.Passenger.EmailAddress, email) {
		span.SetStatus(codes.Error, "email mismatch")
		return nil, domain.ErrEmailMismatch
	}

	updated := *booking
	updated.Section = next.SectionName
	updated.SeatNumber = next.SeatNumber

	if err := s.ledger.Replace(&updated); err != nil {
		panic(fmt.Sprintf("booking ledger out of sync: %v", err))
	}
	if err := s.seats.Release(current.Key()); err != nil {
		panic(fmt.Sprintf("seat inventory out of sync: %v", err))
	}
	if err := s.seats.Occupy(next.Key(), bookingID); err != nil {
		panic(fmt.Sprintf("seat inventory out of sync: %v", err))
	}

	_ = s.events.PublishSeatChanged(ctx, &updated)

	span.SetAttributes(
		attribute.String("section", updated.Section),
		attribute.Int("seat_number", updated.SeatNumber),
	)
	span.SetStatus(codes.Ok, "")
	metrics.SeatChanges.Add(ctx, 1)
	return mapper.ReceiptFromBooking(&updated), nil
}

// mustBooking fetches a ledger record that the inventory says exists. A miss
// means the two stores fell out of lockstep, which is a programming error.
func (s *ticketService) mustBooking(bookingID string) *domain.Booking {
	booking, ok := s.ledger.Get(bookingID)
	if !ok {
		panic(fmt.Sprintf("booking ledger out of sync: seat occupied by %s but no ledger entry", bookingID))
	}
	return booking
}

// newBookingID builds a booking id from the wall clock plus random bytes.
// The time prefix keeps ids human-orderable; the suffix keeps two bookings
// in the same second from colliding.
func (s *ticketService) newBookingID() string {
	prefix := s.now().Format("20060102150405")
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return prefix + uuid.New().String()[:8]
	}
	return prefix + hex.EncodeToString(bytes)
}

func defaultEmailValidator(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// failureReason maps a validation error to a low-cardinality metric label.
func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case err == domain.ErrNoSeatsAvailable:
		return "no_seats"
	case err == domain.ErrMissingJourneyDetails:
		return "missing_journey"
	case err == domain.ErrMissingPassengerDetails:
		return "missing_passenger"
	case err == domain.ErrInvalidEmailFormat:
		return "invalid_email"
	case err == domain.ErrDuplicatePassenger:
		return "duplicate_passenger"
	case err == domain.ErrUnknownJourney:
		return "unknown_journey"
	default:
		return "other"
	}
}
