package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(recordType HealthRecordType, recordDate time.Time, nextDue *time.Time) HealthRecord {
	return HealthRecord{
		ID:          1,
		PetID:       2,
		Type:        recordType,
		Description: "Antirrábica anual",
		RecordDate:  recordDate,
		NextDueDate: nextDue,
		CreatedBy:   "drasilva",
	}
}

func TestParseHealthRecordType(t *testing.T) {
	for _, raw := range []string{"VACCINE", "SURGERY", "CONSULTATION", "EXAM", "OTHER"} {
		rt, err := ParseHealthRecordType(raw)
		require.NoError(t, err)
		assert.Equal(t, HealthRecordType(raw), rt)
	}

	_, err := ParseHealthRecordType("CHECKUP")
	assert.Error(t, err)
	_, err = ParseHealthRecordType("vaccine")
	assert.Error(t, err)
}

func TestHealthRecordTypeDisplay(t *testing.T) {
	tests := []struct {
		recordType HealthRecordType
		label      string
		icon       string
	}{
		{recordType: HealthRecordVaccine, label: "Vacina", icon: "💉"},
		{recordType: HealthRecordSurgery, label: "Cirurgia", icon: "⚕️"},
		{recordType: HealthRecordConsultation, label: "Consulta", icon: "🩺"},
		{recordType: HealthRecordExam, label: "Exame", icon: "🔬"},
		{recordType: HealthRecordOther, label: "Outro", icon: "📋"},
	}

	for _, tt := range tests {
		r := testRecord(tt.recordType, time.Now(), nil)
		assert.Equal(t, tt.label, r.TypeLabel())
		assert.Equal(t, tt.icon, r.TypeIcon())
	}
}

func TestHealthRecordOverdue(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	recordDate := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	noDue := testRecord(HealthRecordVaccine, recordDate, nil)
	assert.False(t, noDue.HasNextDueDate())
	assert.False(t, noDue.IsOverdueAt(now))

	past := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	overdue := testRecord(HealthRecordVaccine, recordDate, &past)
	assert.True(t, overdue.HasNextDueDate())
	assert.True(t, overdue.IsOverdueAt(now))

	future := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	upcoming := testRecord(HealthRecordVaccine, recordDate, &future)
	assert.True(t, upcoming.HasNextDueDate())
	assert.False(t, upcoming.IsOverdueAt(now))

	exact := testRecord(HealthRecordVaccine, recordDate, &now)
	assert.False(t, exact.IsOverdueAt(now), "due right now is not strictly before")
}

func TestHealthRecordAge(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		recordDate time.Time
		want       int
	}{
		{name: "same instant", recordDate: now, want: 0},
		{name: "ten days ago", recordDate: now.AddDate(0, 0, -10), want: 10},
		{name: "partial day rounds up", recordDate: now.Add(-(9*24 + 23) * time.Hour), want: 10},
		{name: "future record counts absolute distance", recordDate: now.AddDate(0, 0, 3), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRecord(HealthRecordExam, tt.recordDate, nil)
			assert.Equal(t, tt.want, r.RecordAgeAt(now))
		})
	}
}
