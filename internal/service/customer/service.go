package customer

import (
	"context"
	"fmt"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/pkg/errors"
)

type CustomerService interface {
	GetProfile(ctx context.Context) (*model.Customer, error)
	UpdateProfile(ctx context.Context, req *model.UpdateCustomerRequest) (*model.Customer, error)
}

type Service struct {
	customers repository.CustomerRepository
}

func NewService(customers repository.CustomerRepository) *Service {
	return &Service{customers: customers}
}

func (s *Service) GetProfile(ctx context.Context) (*model.Customer, error) {
	customer, err := s.customers.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return customer, nil
}

// UpdateProfile patches the profile of whoever owns the session token. The
// customer ID comes from the backend, never from the client.
func (s *Service) UpdateProfile(ctx context.Context, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	if req.Phone != nil && !model.ValidPhoneNumber(*req.Phone) {
		return nil, errors.NewValidation("phone number must have 10 or 11 digits", nil)
	}

	current, err := s.customers.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	updated, err := s.customers.Update(ctx, current.ID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return updated, nil
}
