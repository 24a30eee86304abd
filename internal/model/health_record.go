package model

import (
	"fmt"
	"math"
	"time"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// HealthRecordType as the backend enumerates it.
type HealthRecordType string

const (
	HealthRecordVaccine      HealthRecordType = "VACCINE"
	HealthRecordSurgery      HealthRecordType = "SURGERY"
	HealthRecordConsultation HealthRecordType = "CONSULTATION"
	HealthRecordExam         HealthRecordType = "EXAM"
	HealthRecordOther        HealthRecordType = "OTHER"
)

// ParseHealthRecordType validates a wire value against the known type set.
func ParseHealthRecordType(raw string) (HealthRecordType, error) {
	switch t := HealthRecordType(raw); t {
	case HealthRecordVaccine, HealthRecordSurgery, HealthRecordConsultation,
		HealthRecordExam, HealthRecordOther:
		return t, nil
	}
	return "", errors.NewValidation(fmt.Sprintf("unknown health record type %q", raw), nil)
}

// HealthRecord is an immutable entry of a pet's health history.
type HealthRecord struct {
	ID          int64            `json:"id"`
	PetID       int64            `json:"pet_id"`
	Type        HealthRecordType `json:"record_type"`
	Description string           `json:"description"`
	RecordDate  time.Time        `json:"record_date"`
	NextDueDate *time.Time       `json:"next_due_date,omitempty"`
	CreatedBy   string           `json:"created_by_username"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (r HealthRecord) TypeLabel() string {
	switch r.Type {
	case HealthRecordVaccine:
		return "Vacina"
	case HealthRecordSurgery:
		return "Cirurgia"
	case HealthRecordConsultation:
		return "Consulta"
	case HealthRecordExam:
		return "Exame"
	case HealthRecordOther:
		return "Outro"
	default:
		return "Desconhecido"
	}
}

func (r HealthRecord) TypeIcon() string {
	switch r.Type {
	case HealthRecordVaccine:
		return "💉"
	case HealthRecordSurgery:
		return "⚕️"
	case HealthRecordConsultation:
		return "🩺"
	case HealthRecordExam:
		return "🔬"
	default:
		return "📋"
	}
}

func (r HealthRecord) HasNextDueDate() bool {
	return r.NextDueDate != nil
}

// IsOverdueAt reports whether the follow-up date exists and lies strictly
// in the past.
func (r HealthRecord) IsOverdueAt(now time.Time) bool {
	return r.NextDueDate != nil && r.NextDueDate.Before(now)
}

func (r HealthRecord) IsOverdue() bool {
	return r.IsOverdueAt(time.Now())
}

// RecordAgeAt is the absolute whole-day distance between the record date
// and now, rounded up.
func (r HealthRecord) RecordAgeAt(now time.Time) int {
	diff := now.Sub(r.RecordDate)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func (r HealthRecord) RecordAge() int {
	return r.RecordAgeAt(time.Now())
}

// CreateHealthRecordRequest is the portal's record creation payload.
type CreateHealthRecordRequest struct {
	PetID       int64  `json:"pet_id" binding:"required"`
	RecordType  string `json:"record_type" binding:"required"`
	Description string `json:"description" binding:"required,max=2000"`
	RecordDate  string `json:"record_date" binding:"required,datetime=2006-01-02"`
	NextDueDate string `json:"next_due_date" binding:"omitempty,datetime=2006-01-02"`
}
