package backend

import (
	"context"
	"fmt"

	"github.com/petcareapp/portal-api/internal/model"
)

type userDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type customerDTO struct {
	ID      int64   `json:"id"`
	User    userDTO `json:"user"`
	CPF     string  `json:"cpf"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
}

func mapCustomer(dto customerDTO) model.Customer {
	return model.Customer{
		ID: dto.ID,
		User: model.User{
			ID:        dto.User.ID,
			Username:  dto.User.Username,
			FirstName: dto.User.FirstName,
			LastName:  dto.User.LastName,
			Email:     dto.User.Email,
		},
		CPF:     dto.CPF,
		Phone:   dto.Phone,
		Address: dto.Address,
	}
}

type CustomerRepository struct {
	client *Client
}

func NewCustomerRepository(client *Client) *CustomerRepository {
	return &CustomerRepository{client: client}
}

func (r *CustomerRepository) Me(ctx context.Context) (*model.Customer, error) {
	var dto customerDTO
	if err := r.client.get(ctx, pathCurrentUser, nil, &dto); err != nil {
		return nil, fmt.Errorf("get current customer: %w", err)
	}

	customer := mapCustomer(dto)
	return &customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, id int64, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	payload := map[string]interface{}{}
	if req.FirstName != nil {
		payload["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		payload["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		payload["phone"] = *req.Phone
	}
	if req.Address != nil {
		payload["address"] = *req.Address
	}

	var dto customerDTO
	if err := r.client.patch(ctx, detailPath(pathCustomers, id), payload, &dto); err != nil {
		return nil, fmt.Errorf("update customer %d: %w", id, err)
	}

	customer := mapCustomer(dto)
	return &customer, nil
}
