package pet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/pkg/errors"
)

type fakePetRepo struct{}

func (f *fakePetRepo) List(_ context.Context) ([]model.Pet, error)          { return nil, nil }
func (f *fakePetRepo) Get(_ context.Context, _ int64) (*model.Pet, error)   { return nil, nil }
func (f *fakePetRepo) Delete(_ context.Context, _ int64) error              { return nil }
func (f *fakePetRepo) Create(_ context.Context, _ *model.CreatePetRequest) (*model.Pet, error) {
	return nil, nil
}
func (f *fakePetRepo) Update(_ context.Context, _ int64, _ *model.UpdatePetRequest) (*model.Pet, error) {
	return nil, nil
}

type fakeBreedRepo struct {
	listCalls      int
	bySpeciesCalls int
}

func (f *fakeBreedRepo) List(_ context.Context) ([]model.Breed, error) {
	f.listCalls++
	return []model.Breed{{ID: 1, Name: "Labrador", Species: model.SpeciesDog}}, nil
}

func (f *fakeBreedRepo) ListBySpecies(_ context.Context, species model.Species) ([]model.Breed, error) {
	f.bySpeciesCalls++
	return []model.Breed{{ID: 2, Name: "Siamês", Species: species}}, nil
}

type fakeRecordRepo struct {
	created *model.CreateHealthRecordRequest
}

func (f *fakeRecordRepo) ListByPet(_ context.Context, _ int64) ([]model.HealthRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) Create(_ context.Context, req *model.CreateHealthRecordRequest) (*model.HealthRecord, error) {
	f.created = req
	return &model.HealthRecord{ID: 1, Type: model.HealthRecordVaccine}, nil
}

func newTestService(breeds *fakeBreedRepo, records *fakeRecordRepo) *Service {
	return NewService(&fakePetRepo{}, breeds, records, time.Minute, time.Minute)
}

func TestListBreedsRejectsUnknownSpecies(t *testing.T) {
	breeds := &fakeBreedRepo{}
	svc := newTestService(breeds, &fakeRecordRepo{})

	_, err := svc.ListBreeds(context.Background(), "FISH")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, breeds.bySpeciesCalls)
}

func TestListBreedsCachesPerSpecies(t *testing.T) {
	breeds := &fakeBreedRepo{}
	svc := newTestService(breeds, &fakeRecordRepo{})

	first, err := svc.ListBreeds(context.Background(), "CAT")
	require.NoError(t, err)
	second, err := svc.ListBreeds(context.Background(), "CAT")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, breeds.bySpeciesCalls)

	// The all-breeds listing is cached under its own key.
	_, err = svc.ListBreeds(context.Background(), "")
	require.NoError(t, err)
	_, err = svc.ListBreeds(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, breeds.listCalls)
}

func TestCreateHealthRecordRejectsUnknownType(t *testing.T) {
	records := &fakeRecordRepo{}
	svc := newTestService(&fakeBreedRepo{}, records)

	_, err := svc.CreateHealthRecord(context.Background(), &model.CreateHealthRecordRequest{
		PetID:       1,
		RecordType:  "GROOMING",
		Description: "banho e tosa",
		RecordDate:  "2026-08-31",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Nil(t, records.created)
}

func TestCreateHealthRecordForwardsValidRequest(t *testing.T) {
	records := &fakeRecordRepo{}
	svc := newTestService(&fakeBreedRepo{}, records)

	record, err := svc.CreateHealthRecord(context.Background(), &model.CreateHealthRecordRequest{
		PetID:       1,
		RecordType:  "VACCINE",
		Description: "Antirrábica",
		RecordDate:  "2026-08-31",
	})

	require.NoError(t, err)
	assert.Equal(t, model.HealthRecordVaccine, record.Type)
	require.NotNil(t, records.created)
}
