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

	"github.com/dariofm/flightdeck/internal/api"
	"github.com/dariofm/flightdeck/internal/cache"
	"github.com/dariofm/flightdeck/internal/kafka"
	"github.com/dariofm/flightdeck/internal/ports"
	"github.com/dariofm/flightdeck/internal/repository"
	"github.com/dariofm/flightdeck/internal/service"
	"github.com/dariofm/flightdeck/internal/utils"
	"github.com/dariofm/flightdeck/pkg/config"
	"github.com/dariofm/flightdeck/pkg/health"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
)

type App struct {
	config   *config.Config
	server   *http.Server
	db       *pgxpool.Pool
	cache    *cache.RedisCache
	producer *kafka.Producer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	a.cache = cache.NewRedisCache(a.config.Redis)
	a.producer = kafka.NewProducer(a.config.Kafka.Brokers)

	if err := a.setupServer(ctx); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer(ctx context.Context) error {
	services, err := a.setupServices(ctx)
	if err != nil {
		return err
	}
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	BookingService ports.BookingService
	FlightService  ports.FlightService
}

func (a *App) setupServices(ctx context.Context) (Services, error) {
	flightRepo := repository.NewFlightRepository(a.db)
	bookingRepo := repository.NewBookingRepository(a.db)

	if a.config.SeedData {
		if err := flightRepo.EnsureSeedData(ctx); err != nil {
			return Services{}, fmt.Errorf("seeding failed: %w", err)
		}
	}

	return Services{
		BookingService: service.NewBookingService(
			bookingRepo,
			flightRepo,
			service.WithEventProducer(a.producer, a.config.Kafka.BookingTopic),
		),
		FlightService: service.NewFlightService(flightRepo, a.cache),
	}, nil
}

func (a *App) setupRouter(services Services) http.Handler {
	router := httprouter.New()
	const versionPrefix = "/v1"

	router.HandlerFunc(http.MethodGet, versionPrefix+"/health", health.HealthGet())

	router.GET(versionPrefix+"/airports", api.ListAirportsHandler(services.FlightService))
	router.POST(versionPrefix+"/flights/search",
		utils.AllowedContentTypes(api.SearchFlightsHandler(services.FlightService), "application/json"))
	router.GET(versionPrefix+"/flights/:id", api.GetFlightHandler(services.FlightService))

	router.POST(versionPrefix+"/bookings",
		utils.AllowedContentTypes(api.CreateBookingHandler(services.BookingService), "application/json"))
	router.GET(versionPrefix+"/bookings", api.ListBookingsHandler(services.BookingService))

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		log.Println("Starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			log.Printf("kafka producer close: %v", err)
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := NewApp(cfg)
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
