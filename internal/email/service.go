package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/petcareapp/portal-api/internal/config"
	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/pkg/logger"
)

type Service interface {
	SendWelcome(ctx context.Context, to, name string) error
	SendAppointmentConfirmation(ctx context.Context, to string, appointment *model.Appointment) error
	SendAppointmentCancellation(ctx context.Context, to string, appointment *model.Appointment) error
}

// NewService returns an SMTP-backed sender, or a no-op one when email is
// disabled in the configuration.
func NewService(cfg config.EmailConfig, log *logger.Logger) Service {
	if !cfg.Enabled {
		return &noopService{log: log}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

func (s *smtpService) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(
		"<h2>Bem-vindo, %s!</h2><p>Sua conta foi criada com sucesso. Agora você pode cadastrar seus pets, agendar serviços e acompanhar a saúde deles pelo portal.</p>",
		name)
	return s.send(ctx, to, "Bem-vindo ao PetCare", body)
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to string, appointment *model.Appointment) error {
	body := fmt.Sprintf(
		"<h2>Agendamento recebido</h2><p>Serviço: %s</p><p>Pet: %s</p><p>Data: %s</p><p>Valor: %s</p><p>Status: %s</p>",
		appointment.Service.Name,
		appointment.PetName,
		appointment.ScheduleTime.Format("02/01/2006 15:04"),
		appointment.Service.Price.Format(),
		appointment.StatusLabel(),
	)
	return s.send(ctx, to, "Agendamento recebido - PetCare", body)
}

func (s *smtpService) SendAppointmentCancellation(ctx context.Context, to string, appointment *model.Appointment) error {
	body := fmt.Sprintf(
		"<h2>Agendamento cancelado</h2><p>Serviço: %s</p><p>Pet: %s</p><p>Data: %s</p>",
		appointment.Service.Name,
		appointment.PetName,
		appointment.ScheduleTime.Format("02/01/2006 15:04"),
	)
	return s.send(ctx, to, "Agendamento cancelado - PetCare", body)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

type noopService struct {
	log *logger.Logger
}

func (s *noopService) SendWelcome(_ context.Context, to, _ string) error {
	s.log.Debug(fmt.Sprintf("email disabled, skipping welcome email to %s", to))
	return nil
}

func (s *noopService) SendAppointmentConfirmation(_ context.Context, to string, _ *model.Appointment) error {
	s.log.Debug(fmt.Sprintf("email disabled, skipping confirmation email to %s", to))
	return nil
}

func (s *noopService) SendAppointmentCancellation(_ context.Context, to string, _ *model.Appointment) error {
	s.log.Debug(fmt.Sprintf("email disabled, skipping cancellation email to %s", to))
	return nil
}
