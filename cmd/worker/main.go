package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/openclinic/agenda-api/internal/config"
	"github.com/openclinic/agenda-api/internal/repository/postgres"
	"github.com/openclinic/agenda-api/internal/service/notification"
	internalworker "github.com/openclinic/agenda-api/internal/worker"
	"github.com/openclinic/agenda-api/pkg/logger"
	"github.com/openclinic/agenda-api/pkg/messaging/redis"
	"github.com/openclinic/agenda-api/pkg/metrics"
	"github.com/openclinic/agenda-api/pkg/worker"
)

// workerConfig carries the knobs that only matter to this process; the
// shared settings (database, redis, outbox) come from the config file.
type workerConfig struct {
	HealthPort       int           `envconfig:"HEALTH_PORT" default:"8081"`
	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"1h"`
	CleanupInterval  time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`
	OutboxRetention  time.Duration `envconfig:"OUTBOX_RETENTION" default:"24h"`
	SMTP             notification.SMTPConfig
}

func setupHealthCheck(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			log.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var wcfg workerConfig
	if err := envconfig.Process("worker", &wcfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker config")
	}

	lg := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create redis broker")
	}
	defer broker.Close()

	location, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Scheduling.Timezone).Msg("failed to load timezone")
	}

	baseRepo := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(baseRepo)
	appointmentRepo := postgres.NewAppointmentRepository(baseRepo)
	patientRepo := postgres.NewPatientRepository(baseRepo)
	clinicianRepo := postgres.NewClinicianRepository(baseRepo)

	m := metrics.NewMetrics("agenda", "worker")

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		},
		lg,
		m,
	)

	reminder := internalworker.NewReminderWorker(
		appointmentRepo,
		patientRepo,
		clinicianRepo,
		notification.NewEmailSender(wcfg.SMTP),
		m,
		location,
		wcfg.ReminderInterval,
	)

	cleanup := internalworker.NewOutboxCleanupWorker(outboxRepo, wcfg.OutboxRetention, wcfg.CleanupInterval)

	setupHealthCheck(wcfg.HealthPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	go reminder.Start(ctx)
	go cleanup.Start(ctx)

	processor.Start(ctx)
}
