package model

import (
	"fmt"
	"time"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// AppointmentStatus as the backend enumerates it. PENDING and CONFIRMED
// may still be canceled; COMPLETED and CANCELED are terminal. Transitions
// happen exclusively on the backend — the portal never flips a status
// locally, it receives a fresh snapshot instead.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCanceled  AppointmentStatus = "CANCELED"
)

// ParseAppointmentStatus validates a wire value against the known status set.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	switch s := AppointmentStatus(raw); s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCanceled:
		return s, nil
	}
	return "", errors.NewValidation(fmt.Sprintf("unknown appointment status %q", raw), nil)
}

// Service is a bookable grooming/veterinary service.
type Service struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           Money  `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Appointment is an immutable booking snapshot.
type Appointment struct {
	ID           int64             `json:"id"`
	PetID        int64             `json:"pet_id"`
	PetName      string            `json:"pet_name"`
	Service      Service           `json:"service"`
	ScheduleTime time.Time         `json:"schedule_time"`
	Status       AppointmentStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
}

func (a Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

func (a Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

func (a Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

func (a Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceled
}

// CanBeCanceled reports whether the booking is still in a cancelable state.
// The actual cancellation is a backend call that returns a new snapshot.
func (a Appointment) CanBeCanceled() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

func (a Appointment) StatusLabel() string {
	switch a.Status {
	case AppointmentStatusPending:
		return "Pendente"
	case AppointmentStatusConfirmed:
		return "Confirmado"
	case AppointmentStatusCompleted:
		return "Concluído"
	case AppointmentStatusCanceled:
		return "Cancelado"
	default:
		return "Desconhecido"
	}
}

func (a Appointment) StatusColor() string {
	switch a.Status {
	case AppointmentStatusPending:
		return ColorWarning
	case AppointmentStatusConfirmed:
		return ColorPrimary
	case AppointmentStatusCompleted:
		return ColorSuccess
	case AppointmentStatusCanceled:
		return ColorNeutral
	default:
		return ColorNeutral
	}
}

func (a Appointment) IsPastAt(now time.Time) bool {
	return a.ScheduleTime.Before(now)
}

func (a Appointment) IsPast() bool {
	return a.IsPastAt(time.Now())
}

// CreateAppointmentRequest is the portal's booking payload. The schedule is
// split into date and time fields the way the backend expects them.
type CreateAppointmentRequest struct {
	PetID        int64  `json:"pet_id" binding:"required"`
	ServiceID    int64  `json:"service_id" binding:"required"`
	ScheduleDate string `json:"schedule_date" binding:"required,datetime=2006-01-02"`
	ScheduleTime string `json:"schedule_time" binding:"required,datetime=15:04"`
	Notes        string `json:"notes" binding:"max=1000"`
}
