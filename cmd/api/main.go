package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/petcareapp/portal-api/internal/config"
	"github.com/petcareapp/portal-api/internal/email"
	appointmenthandler "github.com/petcareapp/portal-api/internal/handler/appointment"
	authhandler "github.com/petcareapp/portal-api/internal/handler/auth"
	cataloghandler "github.com/petcareapp/portal-api/internal/handler/catalog"
	customerhandler "github.com/petcareapp/portal-api/internal/handler/customer"
	healthhandler "github.com/petcareapp/portal-api/internal/handler/health"
	pethandler "github.com/petcareapp/portal-api/internal/handler/pet"
	"github.com/petcareapp/portal-api/internal/middleware"
	"github.com/petcareapp/portal-api/internal/repository/backend"
	"github.com/petcareapp/portal-api/internal/router"
	appointmentservice "github.com/petcareapp/portal-api/internal/service/appointment"
	authservice "github.com/petcareapp/portal-api/internal/service/auth"
	catalogservice "github.com/petcareapp/portal-api/internal/service/catalog"
	customerservice "github.com/petcareapp/portal-api/internal/service/customer"
	petservice "github.com/petcareapp/portal-api/internal/service/pet"
	"github.com/petcareapp/portal-api/pkg/logger"
	"github.com/petcareapp/portal-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	// Backend client and repositories
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	petRepo := backend.NewPetRepository(client)
	breedRepo := backend.NewBreedRepository(client)
	productRepo := backend.NewProductRepository(client)
	categoryRepo := backend.NewCategoryRepository(client)
	brandRepo := backend.NewBrandRepository(client)
	serviceRepo := backend.NewServiceRepository(client)
	appointmentRepo := backend.NewAppointmentRepository(client)
	recordRepo := backend.NewHealthRecordRepository(client)
	customerRepo := backend.NewCustomerRepository(client)
	authRepo := backend.NewAuthRepository(client)

	sessions, err := authservice.NewRedisSessionStore(cfg.Redis.URL)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}

	mailer := email.NewService(cfg.Email, log)

	if err := validator.RegisterCustomRules(); err != nil {
		log.Fatal(err, "failed to register binding rules")
	}

	// Services
	catalogSvc := catalogservice.NewService(
		productRepo, categoryRepo, brandRepo, serviceRepo,
		cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	petSvc := petservice.NewService(
		petRepo, breedRepo, recordRepo,
		cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	appointmentSvc := appointmentservice.NewService(
		appointmentRepo, serviceRepo, customerRepo, mailer, log)
	customerSvc := customerservice.NewService(customerRepo)
	authSvc := authservice.NewService(
		authRepo, customerRepo, sessions, mailer, log,
		cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)

	// Handlers
	authHandler := authhandler.NewHandler(authSvc)
	petHandler := pethandler.NewHandler(petSvc)
	catalogHandler := cataloghandler.NewHandler(catalogSvc)
	appointmentHandler := appointmenthandler.NewHandler(appointmentSvc)
	customerHandler := customerhandler.NewHandler(customerSvc)
	healthHandler := healthhandler.NewHandler(map[string]healthhandler.Pinger{
		"redis": sessions,
	})

	r := router.NewRouter(
		log,
		authSvc,
		authHandler,
		petHandler,
		catalogHandler,
		appointmentHandler,
		customerHandler,
		healthHandler,
		router.Config{
			RateLimit:       rate.Limit(cfg.RateLimit.RPS),
			RateBurst:       cfg.RateLimit.Burst,
			CORSConfig:      middleware.DefaultCORSConfig(),
			CatalogCacheAge: int(cfg.Cache.TTL.Seconds()),
			RequestTimeout:  cfg.Server.WriteTimeout,
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(fmt.Sprintf("listening on :%d", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
