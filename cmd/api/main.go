package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/openclinic/agenda-api/internal/config"
	"github.com/openclinic/agenda-api/internal/handler"
	availabilityHandler "github.com/openclinic/agenda-api/internal/handler/availability"
	appointmentHandler "github.com/openclinic/agenda-api/internal/handler/appointment"
	clinicianHandler "github.com/openclinic/agenda-api/internal/handler/clinician"
	patientHandler "github.com/openclinic/agenda-api/internal/handler/patient"
	visitHandler "github.com/openclinic/agenda-api/internal/handler/visit"
	"github.com/openclinic/agenda-api/internal/middleware"
	"github.com/openclinic/agenda-api/internal/repository/postgres"
	"github.com/openclinic/agenda-api/internal/router"
	appointmentService "github.com/openclinic/agenda-api/internal/service/appointment"
	availabilityService "github.com/openclinic/agenda-api/internal/service/availability"
	clinicianService "github.com/openclinic/agenda-api/internal/service/clinician"
	eventService "github.com/openclinic/agenda-api/internal/service/event"
	patientService "github.com/openclinic/agenda-api/internal/service/patient"
	visitService "github.com/openclinic/agenda-api/internal/service/visit"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	baseRepo := postgres.NewBaseRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(baseRepo)
	appointmentRepo := postgres.NewAppointmentRepository(baseRepo)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	clinicianRepo := postgres.NewClinicianRepository(baseRepo)
	visitRepo := postgres.NewVisitRepository(baseRepo)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)

	emitter := eventService.NewService(outboxRepo)

	availabilitySvc, err := availabilityService.NewService(scheduleRepo, appointmentRepo, cfg.Scheduling)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize availability service")
	}
	appointmentSvc := appointmentService.NewService(appointmentRepo, emitter)
	patientSvc := patientService.NewService(patientRepo)
	clinicianSvc := clinicianService.NewService(clinicianRepo, scheduleRepo)
	visitSvc := visitService.NewService(visitRepo, appointmentRepo, emitter)

	h := handler.NewHandler()

	r := router.NewRouter(
		availabilityHandler.NewHandler(availabilitySvc),
		appointmentHandler.NewHandler(appointmentSvc),
		patientHandler.NewHandler(patientSvc, visitSvc),
		clinicianHandler.NewHandler(clinicianSvc),
		visitHandler.NewHandler(visitSvc),
		h,
		router.Config{
			RateLimit:         rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst:         cfg.Server.RateLimitBurst,
			Timeout:           time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:        middleware.DefaultCORSConfig(),
			MetricsPrefix:     "agenda_api",
			DirectoryCacheTTL: 5 * time.Minute,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
