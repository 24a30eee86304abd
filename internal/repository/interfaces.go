package repository

import (
	"context"

	"github.com/petcareapp/portal-api/internal/model"
)

// ProductFilter narrows catalog listings; zero values mean "no filter".
type ProductFilter struct {
	CategoryID int64
	BrandID    int64
	Search     string
	InStock    bool
}

type PetRepository interface {
	List(ctx context.Context) ([]model.Pet, error)
	Get(ctx context.Context, id int64) (*model.Pet, error)
	Create(ctx context.Context, req *model.CreatePetRequest) (*model.Pet, error)
	Update(ctx context.Context, id int64, req *model.UpdatePetRequest) (*model.Pet, error)
	Delete(ctx context.Context, id int64) error
}

type BreedRepository interface {
	List(ctx context.Context) ([]model.Breed, error)
	ListBySpecies(ctx context.Context, species model.Species) ([]model.Breed, error)
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
}

type BrandRepository interface {
	List(ctx context.Context) ([]model.Brand, error)
}

type ServiceRepository interface {
	List(ctx context.Context) ([]model.Service, error)
	Get(ctx context.Context, id int64) (*model.Service, error)
}

type AppointmentRepository interface {
	List(ctx context.Context) ([]model.Appointment, error)
	ListByStatus(ctx context.Context, status model.AppointmentStatus) ([]model.Appointment, error)
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	// Cancel asks the backend to cancel and returns the fresh snapshot;
	// the local entity is never mutated.
	Cancel(ctx context.Context, id int64) (*model.Appointment, error)
}

type HealthRecordRepository interface {
	ListByPet(ctx context.Context, petID int64) ([]model.HealthRecord, error)
	Create(ctx context.Context, req *model.CreateHealthRecordRequest) (*model.HealthRecord, error)
}

type CustomerRepository interface {
	Me(ctx context.Context) (*model.Customer, error)
	Update(ctx context.Context, id int64, req *model.UpdateCustomerRequest) (*model.Customer, error)
}

type AuthRepository interface {
	// Login exchanges credentials for the backend's API token.
	Login(ctx context.Context, username, password string) (string, error)
	// Register creates the account and returns the profile plus the
	// backend token for the new session.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Customer, string, error)
	Logout(ctx context.Context) error
}
