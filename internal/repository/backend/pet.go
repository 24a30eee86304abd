package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/pkg/errors"
)

const wireDateLayout = "2006-01-02"

type breedDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Description string `json:"description"`
}

type petDTO struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Breed     breedDTO `json:"breed"`
	BirthDate *string  `json:"birth_date"`
	Owner     int64    `json:"owner"`
}

type PetRepository struct {
	client *Client
}

func NewPetRepository(client *Client) *PetRepository {
	return &PetRepository{client: client}
}

func (r *PetRepository) List(ctx context.Context) ([]model.Pet, error) {
	var dtos []petDTO
	if err := r.client.get(ctx, pathPets, nil, &dtos); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	pets := make([]model.Pet, 0, len(dtos))
	for _, dto := range dtos {
		pet, err := mapPet(dto)
		if err != nil {
			return nil, fmt.Errorf("map pet %d: %w", dto.ID, err)
		}
		pets = append(pets, pet)
	}
	return pets, nil
}

func (r *PetRepository) Get(ctx context.Context, id int64) (*model.Pet, error) {
	var dto petDTO
	if err := r.client.get(ctx, detailPath(pathPets, id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get pet %d: %w", id, err)
	}

	pet, err := mapPet(dto)
	if err != nil {
		return nil, fmt.Errorf("map pet %d: %w", id, err)
	}
	return &pet, nil
}

func (r *PetRepository) Create(ctx context.Context, req *model.CreatePetRequest) (*model.Pet, error) {
	payload := map[string]interface{}{
		"name":       req.Name,
		"breed_id":   req.BreedID,
		"birth_date": req.BirthDate,
	}

	var dto petDTO
	if err := r.client.post(ctx, pathPets, payload, &dto); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}

	pet, err := mapPet(dto)
	if err != nil {
		return nil, fmt.Errorf("map created pet: %w", err)
	}
	return &pet, nil
}

func (r *PetRepository) Update(ctx context.Context, id int64, req *model.UpdatePetRequest) (*model.Pet, error) {
	payload := map[string]interface{}{}
	if req.Name != nil {
		payload["name"] = *req.Name
	}
	if req.BreedID != nil {
		payload["breed_id"] = *req.BreedID
	}
	if req.BirthDate != nil {
		payload["birth_date"] = *req.BirthDate
	}

	var dto petDTO
	if err := r.client.patch(ctx, detailPath(pathPets, id), payload, &dto); err != nil {
		return nil, fmt.Errorf("update pet %d: %w", id, err)
	}

	pet, err := mapPet(dto)
	if err != nil {
		return nil, fmt.Errorf("map updated pet: %w", err)
	}
	return &pet, nil
}

func (r *PetRepository) Delete(ctx context.Context, id int64) error {
	if err := r.client.delete(ctx, detailPath(pathPets, id)); err != nil {
		return fmt.Errorf("delete pet %d: %w", id, err)
	}
	return nil
}

// mapPet is the total wire-to-domain mapping for pets: every field is
// covered and malformed values fail instead of defaulting.
func mapPet(dto petDTO) (model.Pet, error) {
	breed, err := mapBreed(dto.Breed)
	if err != nil {
		return model.Pet{}, err
	}

	var birthDate *time.Time
	if dto.BirthDate != nil && *dto.BirthDate != "" {
		parsed, err := time.Parse(wireDateLayout, *dto.BirthDate)
		if err != nil {
			return model.Pet{}, errors.NewValidation(
				fmt.Sprintf("malformed birth date %q", *dto.BirthDate), err)
		}
		birthDate = &parsed
	}

	return model.Pet{
		ID:        dto.ID,
		Name:      dto.Name,
		Breed:     breed,
		BirthDate: birthDate,
		OwnerID:   dto.Owner,
	}, nil
}

func mapBreed(dto breedDTO) (model.Breed, error) {
	species, err := model.ParseSpecies(dto.Species)
	if err != nil {
		return model.Breed{}, err
	}

	return model.Breed{
		ID:          dto.ID,
		Name:        dto.Name,
		Species:     species,
		Description: dto.Description,
	}, nil
}

type BreedRepository struct {
	client *Client
}

func NewBreedRepository(client *Client) *BreedRepository {
	return &BreedRepository{client: client}
}

func (r *BreedRepository) List(ctx context.Context) ([]model.Breed, error) {
	return r.list(ctx, nil)
}

func (r *BreedRepository) ListBySpecies(ctx context.Context, species model.Species) ([]model.Breed, error) {
	query := url.Values{}
	query.Set("species", string(species))
	return r.list(ctx, query)
}

func (r *BreedRepository) list(ctx context.Context, query url.Values) ([]model.Breed, error) {
	var dtos []breedDTO
	if err := r.client.get(ctx, pathBreeds, query, &dtos); err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}

	breeds := make([]model.Breed, 0, len(dtos))
	for _, dto := range dtos {
		breed, err := mapBreed(dto)
		if err != nil {
			return nil, fmt.Errorf("map breed %d: %w", dto.ID, err)
		}
		breeds = append(breeds, breed)
	}
	return breeds, nil
}
