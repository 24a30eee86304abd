package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/logger"
)

type fakeAppointmentRepo struct {
	appointments map[int64]model.Appointment
	created      *model.CreateAppointmentRequest
	cancelCalls  int
}

func (f *fakeAppointmentRepo) List(_ context.Context) ([]model.Appointment, error) {
	out := make([]model.Appointment, 0, len(f.appointments))
	for _, a := range f.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByStatus(_ context.Context, status model.AppointmentStatus) ([]model.Appointment, error) {
	out := []model.Appointment{}
	for _, a := range f.appointments {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id int64) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, errors.NewNotFound("appointment", nil)
	}
	return &a, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	f.created = req
	return &model.Appointment{
		ID:      99,
		PetID:   req.PetID,
		PetName: "Rex",
		Service: model.Service{ID: req.ServiceID, Name: "Banho"},
		Status:  model.AppointmentStatusPending,
	}, nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id int64) (*model.Appointment, error) {
	f.cancelCalls++
	a := f.appointments[id]
	a.Status = model.AppointmentStatusCanceled
	return &a, nil
}

type fakeCustomerRepo struct{}

func (f *fakeCustomerRepo) Me(_ context.Context) (*model.Customer, error) {
	return &model.Customer{
		ID:   7,
		User: model.User{Username: "ana", Email: "ana@example.com"},
	}, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, _ int64, _ *model.UpdateCustomerRequest) (*model.Customer, error) {
	return nil, nil
}

type fakeServiceRepo struct{}

func (f *fakeServiceRepo) List(_ context.Context) ([]model.Service, error) {
	return nil, nil
}

func (f *fakeServiceRepo) Get(_ context.Context, _ int64) (*model.Service, error) {
	return nil, nil
}

type fakeMailer struct {
	confirmations int
	cancellations int
}

func (f *fakeMailer) SendWelcome(_ context.Context, _, _ string) error { return nil }

func (f *fakeMailer) SendAppointmentConfirmation(_ context.Context, _ string, _ *model.Appointment) error {
	f.confirmations++
	return nil
}

func (f *fakeMailer) SendAppointmentCancellation(_ context.Context, _ string, _ *model.Appointment) error {
	f.cancellations++
	return nil
}

func newTestService(repo *fakeAppointmentRepo, mailer *fakeMailer, now time.Time) *Service {
	svc := NewService(repo, &fakeServiceRepo{}, &fakeCustomerRepo{}, mailer, logger.NewLogger(nil))
	svc.now = func() time.Time { return now }
	return svc
}

func TestBookAppointmentRejectsPastSlots(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{}
	svc := newTestService(repo, &fakeMailer{}, now)

	_, err := svc.BookAppointment(context.Background(), &model.CreateAppointmentRequest{
		PetID:        1,
		ServiceID:    1,
		ScheduleDate: "2026-08-31",
		ScheduleTime: "09:00",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Nil(t, repo.created)
}

func TestBookAppointmentSendsConfirmation(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{}
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer, now)

	a, err := svc.BookAppointment(context.Background(), &model.CreateAppointmentRequest{
		PetID:        1,
		ServiceID:    2,
		ScheduleDate: "2026-09-01",
		ScheduleTime: "10:00",
	})

	require.NoError(t, err)
	assert.True(t, a.IsPending())
	assert.Equal(t, 1, mailer.confirmations)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(2), repo.created.ServiceID)
}

func TestCancelAppointmentChecksEligibilityFirst(t *testing.T) {
	tests := []struct {
		name       string
		status     model.AppointmentStatus
		wantCancel bool
	}{
		{name: "pending can cancel", status: model.AppointmentStatusPending, wantCancel: true},
		{name: "confirmed can cancel", status: model.AppointmentStatusConfirmed, wantCancel: true},
		{name: "completed cannot cancel", status: model.AppointmentStatusCompleted, wantCancel: false},
		{name: "canceled cannot cancel again", status: model.AppointmentStatusCanceled, wantCancel: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{appointments: map[int64]model.Appointment{
				5: {ID: 5, Status: tt.status},
			}}
			mailer := &fakeMailer{}
			svc := newTestService(repo, mailer, time.Now())

			canceled, err := svc.CancelAppointment(context.Background(), 5)

			if !tt.wantCancel {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				assert.Equal(t, 0, repo.cancelCalls)
				return
			}

			require.NoError(t, err)
			assert.True(t, canceled.IsCanceled())
			assert.Equal(t, 1, repo.cancelCalls)
			assert.Equal(t, 1, mailer.cancellations)
		})
	}
}

func TestListAppointmentsRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, &fakeMailer{}, time.Now())

	_, err := svc.ListAppointments(context.Background(), "RESCHEDULED")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
