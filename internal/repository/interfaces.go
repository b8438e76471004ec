package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/openclinic/agenda-api/internal/model"
)

// All repository interfaces in one file
type (
	// ScheduleRepository resolves clinicians and their working windows.
	ScheduleRepository interface {
		// ResolveClinicians returns the clinicians matching the selector
		// joined with their working window for the given ISO weekday.
		// Clinicians without a window that day are not returned.
		ResolveClinicians(ctx context.Context, sel model.ClinicianSelector, weekday int) ([]*model.ClinicianWorkday, error)
		ListForClinician(ctx context.Context, clinicianID uuid.UUID) ([]*model.WorkSchedule, error)
		Upsert(ctx context.Context, schedule *model.WorkSchedule) error
	}

	AppointmentRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		// FetchDayIntervals returns the reduced interval projection for all
		// appointments of the given clinicians on one exact date.
		FetchDayIntervals(ctx context.Context, clinicianIDs []uuid.UUID, date time.Time) ([]*model.AppointmentInterval, error)
		// BookWithPatient inserts the appointment and creates or updates the
		// patient record in a single transaction.
		BookWithPatient(ctx context.Context, patient *model.Patient, appointment *model.Appointment) error
		ListForReminder(ctx context.Context, date time.Time) ([]*model.Appointment, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
		// ListPendingFirstAppointment returns patients registered without
		// any scheduled appointment yet.
		ListPendingFirstAppointment(ctx context.Context) ([]*model.Patient, error)
	}

	ClinicianRepository interface {
		Create(ctx context.Context, clinician *model.Clinician) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinician, error)
		Update(ctx context.Context, clinician *model.Clinician) error
		List(ctx context.Context, filters *model.ClinicianFilters) ([]*model.Clinician, error)
	}

	VisitRepository interface {
		// RegisterSession writes the visit note and marks the appointment
		// attended in one transaction.
		RegisterSession(ctx context.Context, note *model.VisitNote) error
		ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.VisitNote, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		BeginTx(ctx context.Context) (*sql.Tx, error)
		UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status string, errorMessage *string, retryAt *time.Time) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
