package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/di"
	"github.com/railbook/railbook/internal/logger"
	"github.com/railbook/railbook/internal/metrics"
	"github.com/railbook/railbook/internal/repository"
	"github.com/railbook/railbook/internal/service"
	"github.com/railbook/railbook/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting railbook ticket service...")

	ctx := context.Background()

	// Initialize telemetry
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	if err := metrics.Init(); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize metrics: %v", err))
	}

	// Bootstrap the in-memory stores from configuration. All state is
	// volatile and reset on restart.
	seatInventory, err := repository.NewMemorySeatInventory(cfg.Train.TotalSeats, cfg.Train.Sections)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to build seat inventory: %v", err))
	}
	bookingLedger := repository.NewMemoryBookingLedger()
	fareTable := repository.NewMemoryFareTable(cfg.Train.Fares)
	appLog.Info(fmt.Sprintf("Seat inventory ready (%d seats in %d sections, %d fares)",
		seatInventory.TotalSeatCount(), len(cfg.Train.Sections), len(cfg.Train.Fares)))

	// Initialize Kafka event publisher, falling back to no-op when the
	// brokers are unreachable or disabled.
	var eventPublisher service.EventPublisher = service.NewNoOpEventPublisher()
	if cfg.Kafka.Enabled {
		publisher, err := service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.Topic,
			ServiceName: cfg.App.Name,
			ClientID:    cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Warn(fmt.Sprintf("Kafka connection failed, using no-op publisher: %v", err))
		} else {
			appLog.Info("Kafka event publisher connected")
			eventPublisher = publisher
		}
	}
	defer func() { _ = eventPublisher.Close() }()

	// Build dependency injection container
	container := di.NewContainer(&di.ContainerConfig{
		SeatInventory:  seatInventory,
		BookingLedger:  bookingLedger,
		FareTable:      fareTable,
		EventPublisher: eventPublisher,
	})

	// Setup Gin
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.App.Name))

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"version": cfg.App.Version,
				"service": cfg.App.Name,
			})
		})

		tickets := v1.Group("/tickets")
		{
			tickets.POST("", container.TicketHandler.PurchaseTicket)
			tickets.GET("/:id", container.TicketHandler.GetReceipt)
			tickets.DELETE("/:id", container.TicketHandler.CancelBooking)
			tickets.POST("/:id/seat", container.TicketHandler.ChangeSeat)
		}

		v1.GET("/sections/:id/bookings", container.TicketHandler.GetSectionBookings)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Ticket service listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
