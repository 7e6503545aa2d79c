package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/railbook/railbook/internal/domain"
	"github.com/railbook/railbook/internal/dto"
	"github.com/railbook/railbook/internal/service"
	"github.com/railbook/railbook/internal/telemetry"
)

// TicketHandler handles ticket HTTP requests
type TicketHandler struct {
	tickets service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(tickets service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// PurchaseTicket handles POST /tickets
func (h *TicketHandler) PurchaseTicket(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.purchase")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	var req dto.PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid request",
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		})
		return
	}

	receipt, err := h.tickets.PurchaseTicket(ctx, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetAttributes(attribute.String("booking_id", receipt.BookingID))
	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, receipt)
}

// GetReceipt handles GET /tickets/:id
func (h *TicketHandler) GetReceipt(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.get_receipt")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	bookingID := c.Param("id")
	email := c.Query("email")
	span.SetAttributes(attribute.String("booking_id", bookingID))

	receipt, err := h.tickets.GetReceipt(ctx, bookingID, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, receipt)
}

// GetSectionBookings handles GET /sections/:id/bookings
func (h *TicketHandler) GetSectionBookings(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.section_bookings")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	sectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		span.SetStatus(codes.Error, "invalid section id")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "section id must be an integer",
			Code:  "INVALID_REQUEST",
		})
		return
	}
	span.SetAttributes(attribute.Int("section_id", sectionID))

	bookings, err := h.tickets.GetSectionBookings(ctx, sectionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.SectionBookingsResponse{Bookings: bookings})
}

// CancelBooking handles DELETE /tickets/:id
func (h *TicketHandler) CancelBooking(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.cancel")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	bookingID := c.Param("id")
	email := c.Query("email")
	span.SetAttributes(attribute.String("booking_id", bookingID))

	if err := h.tickets.CancelBooking(ctx, bookingID, email); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, dto.CancelBookingResponse{
		BookingID: bookingID,
		Status:    "CANCELLED",
		Message:   "booking removed and seat released",
	})
}

// ChangeSeat handles POST /tickets/:id/seat
func (h *TicketHandler) ChangeSeat(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.ticket.change_seat")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	bookingID := c.Param("id")
	email := c.Query("email")
	span.SetAttributes(attribute.String("booking_id", bookingID))

	receipt, err := h.tickets.ChangeSeat(ctx, bookingID, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, receipt)
}

func (h *TicketHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "BOOKING_NOT_FOUND",
		})
	case errors.Is(err, domain.ErrNoSeatsAvailable):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "NO_SEATS_AVAILABLE",
		})
	case errors.Is(err, domain.ErrNoSeatForChange):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "NO_SEATS_AVAILABLE_FOR_MODIFICATION",
		})
	case errors.Is(err, domain.ErrUnknownJourney):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "UNKNOWN_JOURNEY",
		})
	case errors.Is(err, domain.ErrMissingJourneyDetails):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "MISSING_JOURNEY_DETAILS",
		})
	case errors.Is(err, domain.ErrMissingPassengerDetails):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "MISSING_PASSENGER_DETAILS",
		})
	case errors.Is(err, domain.ErrInvalidEmailFormat):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_EMAIL_FORMAT",
		})
	case errors.Is(err, domain.ErrDuplicatePassenger):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "DUPLICATE_PASSENGER",
		})
	case errors.Is(err, domain.ErrEmailMismatch):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "EMAIL_MISMATCH",
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}
