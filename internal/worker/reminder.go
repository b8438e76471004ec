package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openclinic/agenda-api/internal/repository"
	"github.com/openclinic/agenda-api/internal/service/notification"
	"github.com/openclinic/agenda-api/pkg/metrics"
)

// ReminderWorker mails clinicians their next-day agenda once per interval.
type ReminderWorker struct {
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	clinicianRepo   repository.ClinicianRepository
	sender          notification.Sender
	metrics         *metrics.Metrics
	location        *time.Location
	interval        time.Duration
}

func NewReminderWorker(
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	clinicianRepo repository.ClinicianRepository,
	sender notification.Sender,
	m *metrics.Metrics,
	location *time.Location,
	interval time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		clinicianRepo:   clinicianRepo,
		sender:          sender,
		metrics:         m,
		location:        location,
		interval:        interval,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.dispatch(ctx); err != nil {
				log.Error().Err(err).Msg("reminder dispatch failed")
			}
		}
	}
}

func (w *ReminderWorker) dispatch(ctx context.Context) error {
	tomorrow := time.Now().In(w.location).AddDate(0, 0, 1)

	appointments, err := w.appointmentRepo.ListForReminder(ctx, tomorrow)
	if err != nil {
		return err
	}

	for _, appointment := range appointments {
		patient, err := w.patientRepo.Get(ctx, appointment.PatientID)
		if err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to load patient for reminder")
			w.metrics.RemindersFailed.Inc()
			continue
		}

		clinician, err := w.clinicianRepo.Get(ctx, appointment.ClinicianID)
		if err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to load clinician for reminder")
			w.metrics.RemindersFailed.Inc()
			continue
		}

		if err := w.sender.SendReminder(appointment, patient, clinician); err != nil {
			log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to send reminder")
			w.metrics.RemindersFailed.Inc()
			continue
		}

		w.metrics.RemindersSent.Inc()
	}

	log.Info().Int("appointments", len(appointments)).Str("date", tomorrow.Format("2006-01-02")).Msg("reminder dispatch complete")
	return nil
}
