package di

import (
	"github.com/railbook/railbook/internal/handler"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/service"
)

// Container holds all dependencies for the ticket service
type Container struct {
	// Stores
	SeatInventory repository.SeatInventory
	BookingLedger repository.BookingLedger
	FareTable     repository.FareTable

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	TicketService service.TicketService

	// Handlers
	HealthHandler *handler.HealthHandler
	TicketHandler *handler.TicketHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	SeatInventory  repository.SeatInventory
	BookingLedger  repository.BookingLedger
	FareTable      repository.FareTable
	EventPublisher service.EventPublisher
	ServiceConfig  *service.TicketServiceConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		SeatInventory:  cfg.SeatInventory,
		BookingLedger:  cfg.BookingLedger,
		FareTable:      cfg.FareTable,
		EventPublisher: cfg.EventPublisher,
	}

	c.TicketService = service.NewTicketService(
		c.SeatInventory,
		c.BookingLedger,
		c.FareTable,
		c.EventPublisher,
		cfg.ServiceConfig,
	)

	c.HealthHandler = handler.NewHealthHandler(c.SeatInventory)
	c.TicketHandler = handler.NewTicketHandler(c.TicketService)

	return c
}
