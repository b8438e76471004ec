package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/openclinic/agenda-api/internal/model"
)

// Sender delivers appointment reminders. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendReminder(appointment *model.Appointment, patient *model.Patient, clinician *model.Clinician) error
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT" default:"587"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

type emailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(cfg SMTPConfig) Sender {
	return &emailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendReminder mails the owning clinician about tomorrow's visit. Patients
// are contacted by phone from the reception desk, so the clinician's inbox
// is the delivery target.
func (s *emailSender) SendReminder(appointment *model.Appointment, patient *model.Patient, clinician *model.Clinician) error {
	if clinician.Email == "" {
		return fmt.Errorf("clinician %s has no email address", clinician.ID)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", clinician.Email)
	m.SetHeader("Subject", fmt.Sprintf("Reminder: appointment %s at %s",
		appointment.Date.Format("2006-01-02"), appointment.StartTime))
	m.SetBody("text/plain", fmt.Sprintf(
		"Patient: %s\nDate: %s\nTime: %s - %s\nCategory: %s\nPhone: %s\n",
		patient.Name,
		appointment.Date.Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime,
		appointment.Category,
		patient.Phone,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
