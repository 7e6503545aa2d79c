package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/railbook/railbook/internal/domain"
	"github.com/railbook/railbook/internal/dto"
)

// MockTicketService is a function-field mock of TicketService
type MockTicketService struct {
	PurchaseFunc   func(ctx context.Context, req *dto.PurchaseTicketRequest) (*dto.TicketReceiptResponse, error)
	GetReceiptFunc func(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error)
	SectionFunc    func(ctx context.Context, sectionID int) ([]*dto.SectionBookingResponse, error)
	CancelFunc     func(ctx context.Context, bookingID, email string) error
	ChangeSeatFunc func(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error)
}

func (m *MockTicketService) PurchaseTicket(ctx context.Context, req *dto.PurchaseTicketRequest) (*dto.TicketReceiptResponse, error) {
	return m.PurchaseFunc(ctx, req)
}

func (m *MockTicketService) GetReceipt(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error) {
	return m.GetReceiptFunc(ctx, bookingID, email)
}

func (m *MockTicketService) GetSectionBookings(ctx context.Context, sectionID int) ([]*dto.SectionBookingResponse, error) {
	return m.SectionFunc(ctx, sectionID)
}

func (m *MockTicketService) CancelBooking(ctx context.Context, bookingID, email string) error {
	return m.CancelFunc(ctx, bookingID, email)
}

func (m *MockTicketService) ChangeSeat(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error) {
	return m.ChangeSeatFunc(ctx, bookingID, email)
}

func setupTicketRouter(mock *MockTicketService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewTicketHandler(mock)
	tickets := router.Group("/api/v1/tickets")
	{
		tickets.POST("", h.PurchaseTicket)
		tickets.GET("/:id", h.GetReceipt)
		tickets.DELETE("/:id", h.CancelBooking)
		tickets.POST("/:id/seat", h.ChangeSeat)
	}
	router.GET("/api/v1/sections/:id/bookings", h.GetSectionBookings)

	return router
}

func sampleReceipt() *dto.TicketReceiptResponse {
	return &dto.TicketReceiptResponse{
		BookingID:          "20260831120000abcd1234",
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

func TestTicketHandler_PurchaseTicket(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "created", serviceErr: nil, wantStatus: http.StatusCreated},
		{name: "sold out", serviceErr: domain.ErrNoSeatsAvailable, wantStatus: http.StatusNotFound, wantCode: "NO_SEATS_AVAILABLE"},
		{name: "missing journey", serviceErr: domain.ErrMissingJourneyDetails, wantStatus: http.StatusBadRequest, wantCode: "MISSING_JOURNEY_DETAILS"},
		{name: "missing passenger", serviceErr: domain.ErrMissingPassengerDetails, wantStatus: http.StatusBadRequest, wantCode: "MISSING_PASSENGER_DETAILS"},
		{name: "invalid email", serviceErr: domain.ErrInvalidEmailFormat, wantStatus: http.StatusBadRequest, wantCode: "INVALID_EMAIL_FORMAT"},
		{name: "duplicate passenger", serviceErr: domain.ErrDuplicatePassenger, wantStatus: http.StatusConflict, wantCode: "DUPLICATE_PASSENGER"},
		{name: "unknown journey", serviceErr: domain.ErrUnknownJourney, wantStatus: http.StatusNotFound, wantCode: "UNKNOWN_JOURNEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTicketService{
				PurchaseFunc: func(ctx context.Context, req *dto.PurchaseTicketRequest) (*dto.TicketReceiptResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return sampleReceipt(), nil
				},
			}
			router := setupTicketRouter(mock)

			body, _ := json.Marshal(dto.PurchaseTicketRequest{
				BoardingStation:    "London",
				DestinationStation: "France",
				Passenger: domain.Passenger{
					FirstName:    "Ada",
					LastName:     "Lovelace",
					EmailAddress: "ada@example.com",
				},
			})
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, resp.Code, resp.Body.String())
			}
			if tt.wantCode != "" {
				var errResp dto.ErrorResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &errResp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if errResp.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, errResp.Code)
				}
			}
		})
	}
}

func TestTicketHandler_PurchaseTicket_MalformedBody(t *testing.T) {
	mock := &MockTicketService{
		PurchaseFunc: func(ctx context.Context, req *dto.PurchaseTicketRequest) (*dto.TicketReceiptResponse, error) {
			t.Fatal("service must not be called for malformed bodies")
			return nil, nil
		},
	}
	router := setupTicketRouter(mock)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, resp.Code)
	}
}

func TestTicketHandler_GetReceipt(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "found", serviceErr: nil, wantStatus: http.StatusOK},
		{name: "not found", serviceErr: domain.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "email mismatch", serviceErr: domain.ErrEmailMismatch, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTicketService{
				GetReceiptFunc: func(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error) {
					if bookingID != "bk-1" {
						t.Errorf("expected booking id bk-1, got %s", bookingID)
					}
					if email != "ada@example.com" {
						t.Errorf("expected email from query, got %s", email)
					}
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return sampleReceipt(), nil
				},
			}
			router := setupTicketRouter(mock)

			req, _ := http.NewRequest(http.MethodGet, "/api/v1/tickets/bk-1?email=ada@example.com", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.Code)
			}
		})
	}
}

func TestTicketHandler_GetSectionBookings(t *testing.T) {
	mock := &MockTicketService{
		SectionFunc: func(ctx context.Context, sectionID int) ([]*dto.SectionBookingResponse, error) {
			if sectionID != 1 {
				t.Errorf("expected section 1, got %d", sectionID)
			}
			return []*dto.SectionBookingResponse{
				{
					Passenger:   domain.Passenger{FirstName: "Ada", LastName: "Lovelace", EmailAddress: "ada@example.com"},
					SectionName: "SECTION A",
					SeatNumber:  1,
				},
			}, nil
		},
	}
	router := setupTicketRouter(mock)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/sections/1/bookings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}

	var listing dto.SectionBookingsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listing.Bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(listing.Bookings))
	}
	if listing.Bookings[0].SeatNumber != 1 {
		t.Errorf("expected seat 1, got %d", listing.Bookings[0].SeatNumber)
	}
}

func TestTicketHandler_GetSectionBookings_NonIntegerID(t *testing.T) {
	mock := &MockTicketService{
		SectionFunc: func(ctx context.Context, sectionID int) ([]*dto.SectionBookingResponse, error) {
			t.Fatal("service must not be called for a non-integer section id")
			return nil, nil
		},
	}
	router := setupTicketRouter(mock)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/sections/first/bookings", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, resp.Code)
	}
}

func TestTicketHandler_CancelBooking(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "cancelled", serviceErr: nil, wantStatus: http.StatusOK},
		{name: "not found", serviceErr: domain.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "email mismatch", serviceErr: domain.ErrEmailMismatch, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTicketService{
				CancelFunc: func(ctx context.Context, bookingID, email string) error {
					return tt.serviceErr
				},
			}
			router := setupTicketRouter(mock)

			req, _ := http.NewRequest(http.MethodDelete, "/api/v1/tickets/bk-1?email=ada@example.com", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.Code)
			}

			if tt.serviceErr == nil {
				var ack dto.CancelBookingResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if ack.Status != "CANCELLED" {
					t.Errorf("expected status CANCELLED, got %s", ack.Status)
				}
				if ack.BookingID != "bk-1" {
					t.Errorf("expected booking id bk-1, got %s", ack.BookingID)
				}
			}
		})
	}
}

func TestTicketHandler_ChangeSeat(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{name: "moved", serviceErr: nil, wantStatus: http.StatusOK},
		{name: "not found", serviceErr: domain.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantCode: "BOOKING_NOT_FOUND"},
		{name: "no seat for change", serviceErr: domain.ErrNoSeatForChange, wantStatus: http.StatusNotFound, wantCode: "NO_SEATS_AVAILABLE_FOR_MODIFICATION"},
		{name: "email mismatch", serviceErr: domain.ErrEmailMismatch, wantStatus: http.StatusForbidden, wantCode: "EMAIL_MISMATCH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockTicketService{
				ChangeSeatFunc: func(ctx context.Context, bookingID, email string) (*dto.TicketReceiptResponse, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					receipt := sampleReceipt()
					receipt.SeatNumber = 2
					return receipt, nil
				},
			}
			router := setupTicketRouter(mock)

			req, _ := http.NewRequest(http.MethodPost, "/api/v1/tickets/bk-1/seat?email=ada@example.com", nil)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.Code)
			}
			if tt.wantCode != "" {
				var errResp dto.ErrorResponse
				if err := json.Unmarshal(resp.Body.Bytes(), &errResp); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if errResp.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, errResp.Code)
				}
			}
		})
	}
}
