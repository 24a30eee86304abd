package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/pkg/errors"
)

type healthRecordDTO struct {
	ID                int64   `json:"id"`
	Pet               int64   `json:"pet"`
	RecordType        string  `json:"record_type"`
	Description       string  `json:"description"`
	RecordDate        string  `json:"record_date"`
	NextDueDate       *string `json:"next_due_date"`
	CreatedByUsername string  `json:"created_by_username"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type HealthRecordRepository struct {
	client *Client
}

func NewHealthRecordRepository(client *Client) *HealthRecordRepository {
	return &HealthRecordRepository{client: client}
}

func (r *HealthRecordRepository) ListByPet(ctx context.Context, petID int64) ([]model.HealthRecord, error) {
	query := url.Values{}
	query.Set("pet", strconv.FormatInt(petID, 10))

	var dtos []healthRecordDTO
	if err := r.client.get(ctx, pathRecords, query, &dtos); err != nil {
		return nil, fmt.Errorf("list health records for pet %d: %w", petID, err)
	}

	records := make([]model.HealthRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := mapHealthRecord(dto)
		if err != nil {
			return nil, fmt.Errorf("map health record %d: %w", dto.ID, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *HealthRecordRepository) Create(ctx context.Context, req *model.CreateHealthRecordRequest) (*model.HealthRecord, error) {
	payload := map[string]interface{}{
		"pet":         req.PetID,
		"record_type": req.RecordType,
		"description": req.Description,
		"record_date": req.RecordDate,
	}
	if req.NextDueDate != "" {
		payload["next_due_date"] = req.NextDueDate
	} else {
		payload["next_due_date"] = nil
	}

	var dto healthRecordDTO
	if err := r.client.post(ctx, pathRecords, payload, &dto); err != nil {
		return nil, fmt.Errorf("create health record: %w", err)
	}

	record, err := mapHealthRecord(dto)
	if err != nil {
		return nil, fmt.Errorf("map created health record: %w", err)
	}
	return &record, nil
}

// mapHealthRecord is the total wire-to-domain mapping for health entries.
func mapHealthRecord(dto healthRecordDTO) (model.HealthRecord, error) {
	recordType, err := model.ParseHealthRecordType(dto.RecordType)
	if err != nil {
		return model.HealthRecord{}, err
	}

	recordDate, err := time.Parse(wireDateLayout, dto.RecordDate)
	if err != nil {
		return model.HealthRecord{}, errors.NewValidation(
			fmt.Sprintf("malformed record date %q", dto.RecordDate), err)
	}

	var nextDueDate *time.Time
	if dto.NextDueDate != nil && *dto.NextDueDate != "" {
		parsed, err := time.Parse(wireDateLayout, *dto.NextDueDate)
		if err != nil {
			return model.HealthRecord{}, errors.NewValidation(
				fmt.Sprintf("malformed next due date %q", *dto.NextDueDate), err)
		}
		nextDueDate = &parsed
	}

	createdAt, err := parseTimestamp(dto.CreatedAt)
	if err != nil {
		return model.HealthRecord{}, err
	}
	updatedAt, err := parseTimestamp(dto.UpdatedAt)
	if err != nil {
		return model.HealthRecord{}, err
	}

	return model.HealthRecord{
		ID:          dto.ID,
		PetID:       dto.Pet,
		Type:        recordType,
		Description: dto.Description,
		RecordDate:  recordDate,
		NextDueDate: nextDueDate,
		CreatedBy:   dto.CreatedByUsername,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.NewValidation(fmt.Sprintf("malformed timestamp %q", raw), err)
	}
	return ts, nil
}
