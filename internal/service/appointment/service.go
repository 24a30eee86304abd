package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/petcareapp/portal-api/internal/email"
	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/logger"
)

type AppointmentService interface {
	ListAppointments(ctx context.Context, status string) ([]model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	BookAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListServices(ctx context.Context) ([]model.Service, error)
}

type Service struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
	customers    repository.CustomerRepository
	mailer       email.Service
	log          *logger.Logger
	now          func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	customers repository.CustomerRepository,
	mailer email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		services:     services,
		customers:    customers,
		mailer:       mailer,
		log:          log,
		now:          time.Now,
	}
}

// ListAppointments returns the customer's bookings, optionally narrowed to
// one status. Unknown status values are rejected before the backend is
// called.
func (s *Service) ListAppointments(ctx context.Context, status string) ([]model.Appointment, error) {
	if status == "" {
		appointments, err := s.appointments.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list appointments: %w", err)
		}
		return appointments, nil
	}

	parsed, err := model.ParseAppointmentStatus(status)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListByStatus(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s appointments: %w", parsed, err)
	}
	return appointments, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %d: %w", id, err)
	}
	return appointment, nil
}

// BookAppointment creates a booking after checking the requested slot is in
// the future. The confirmation email is best-effort: a delivery failure is
// logged, never surfaced to the caller.
func (s *Service) BookAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	slot, err := time.Parse("2006-01-02 15:04", req.ScheduleDate+" "+req.ScheduleTime)
	if err != nil {
		return nil, errors.NewValidation("malformed schedule date or time", err)
	}
	if !slot.After(s.now()) {
		return nil, errors.NewValidation("schedule time must be in the future", nil)
	}

	appointment, err := s.appointments.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	s.sendConfirmation(ctx, appointment)
	return appointment, nil
}

// CancelAppointment checks eligibility on the current snapshot before asking
// the backend, so completed or already-canceled bookings fail fast.
func (s *Service) CancelAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	current, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %d: %w", id, err)
	}
	if !current.CanBeCanceled() {
		return nil, errors.NewValidation(
			fmt.Sprintf("appointment with status %s cannot be canceled", current.StatusLabel()), nil)
	}

	canceled, err := s.appointments.Cancel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel appointment %d: %w", id, err)
	}

	s.sendCancellation(ctx, canceled)
	return canceled, nil
}

func (s *Service) ListServices(ctx context.Context) ([]model.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) sendConfirmation(ctx context.Context, appointment *model.Appointment) {
	customer, err := s.customers.Me(ctx)
	if err != nil {
		s.log.Error(err, "failed to load customer for confirmation email")
		return
	}
	if err := s.mailer.SendAppointmentConfirmation(ctx, customer.Email(), appointment); err != nil {
		s.log.Error(err, "failed to send confirmation email")
	}
}

func (s *Service) sendCancellation(ctx context.Context, appointment *model.Appointment) {
	customer, err := s.customers.Me(ctx)
	if err != nil {
		s.log.Error(err, "failed to load customer for cancellation email")
		return
	}
	if err := s.mailer.SendAppointmentCancellation(ctx, customer.Email(), appointment); err != nil {
		s.log.Error(err, "failed to send cancellation email")
	}
}
