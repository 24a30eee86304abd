package pet

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
)

type PetService interface {
	ListPets(ctx context.Context) ([]model.Pet, error)
	GetPet(ctx context.Context, id int64) (*model.Pet, error)
	CreatePet(ctx context.Context, req *model.CreatePetRequest) (*model.Pet, error)
	UpdatePet(ctx context.Context, id int64, req *model.UpdatePetRequest) (*model.Pet, error)
	DeletePet(ctx context.Context, id int64) error
	ListBreeds(ctx context.Context, species string) ([]model.Breed, error)
	ListHealthRecords(ctx context.Context, petID int64) ([]model.HealthRecord, error)
	CreateHealthRecord(ctx context.Context, req *model.CreateHealthRecordRequest) (*model.HealthRecord, error)
}

// Service manages the customer's pets. The breed catalog is near-static,
// so it is cached per species for the configured TTL.
type Service struct {
	pets     repository.PetRepository
	breeds   repository.BreedRepository
	records  repository.HealthRecordRepository
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewService(
	pets repository.PetRepository,
	breeds repository.BreedRepository,
	records repository.HealthRecordRepository,
	ttl, cleanupInterval time.Duration,
) *Service {
	return &Service{
		pets:     pets,
		breeds:   breeds,
		records:  records,
		cache:    cache.New(ttl, cleanupInterval),
		cacheTTL: ttl,
	}
}

func (s *Service) ListPets(ctx context.Context) ([]model.Pet, error) {
	pets, err := s.pets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (s *Service) GetPet(ctx context.Context, id int64) (*model.Pet, error) {
	pet, err := s.pets.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pet %d: %w", id, err)
	}
	return pet, nil
}

func (s *Service) CreatePet(ctx context.Context, req *model.CreatePetRequest) (*model.Pet, error) {
	pet, err := s.pets.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	return pet, nil
}

func (s *Service) UpdatePet(ctx context.Context, id int64, req *model.UpdatePetRequest) (*model.Pet, error) {
	pet, err := s.pets.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update pet %d: %w", id, err)
	}
	return pet, nil
}

func (s *Service) DeletePet(ctx context.Context, id int64) error {
	if err := s.pets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pet %d: %w", id, err)
	}
	return nil
}

// ListBreeds returns breeds, narrowed to one species when given. An empty
// species returns the whole catalog. Unknown species values are rejected
// before the backend is called.
func (s *Service) ListBreeds(ctx context.Context, species string) ([]model.Breed, error) {
	cacheKey := "breeds:all"
	if species != "" {
		parsed, err := model.ParseSpecies(species)
		if err != nil {
			return nil, err
		}
		cacheKey = "breeds:" + string(parsed)

		if cached, found := s.cache.Get(cacheKey); found {
			return cached.([]model.Breed), nil
		}

		breeds, err := s.breeds.ListBySpecies(ctx, parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to list breeds for species %s: %w", parsed, err)
		}
		s.cache.Set(cacheKey, breeds, s.cacheTTL)
		return breeds, nil
	}

	if cached, found := s.cache.Get(cacheKey); found {
		return cached.([]model.Breed), nil
	}

	breeds, err := s.breeds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list breeds: %w", err)
	}
	s.cache.Set(cacheKey, breeds, s.cacheTTL)
	return breeds, nil
}

// ListHealthRecords fetches the pet first: a pet outside the customer's
// account 404s there instead of silently returning an empty history.
func (s *Service) ListHealthRecords(ctx context.Context, petID int64) ([]model.HealthRecord, error) {
	if _, err := s.pets.Get(ctx, petID); err != nil {
		return nil, fmt.Errorf("failed to get pet %d: %w", petID, err)
	}

	records, err := s.records.ListByPet(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to list health records for pet %d: %w", petID, err)
	}
	return records, nil
}

// CreateHealthRecord validates the record type locally before forwarding,
// so a typo fails fast with a field-level message.
func (s *Service) CreateHealthRecord(ctx context.Context, req *model.CreateHealthRecordRequest) (*model.HealthRecord, error) {
	if _, err := model.ParseHealthRecordType(req.RecordType); err != nil {
		return nil, err
	}
	if _, err := s.pets.Get(ctx, req.PetID); err != nil {
		return nil, fmt.Errorf("failed to get pet %d: %w", req.PetID, err)
	}

	record, err := s.records.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create health record: %w", err)
	}
	return record, nil
}
