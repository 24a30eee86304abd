package backend

import (
	"context"
	"fmt"

	"github.com/petcareapp/portal-api/internal/model"
)

type AuthRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) *AuthRepository {
	return &AuthRepository{client: client}
}

// Login exchanges credentials for the backend's API token.
func (r *AuthRepository) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]interface{}{
		"username": username,
		"password": password,
	}

	var response struct {
		Key string `json:"key"`
	}
	if err := r.client.post(ctx, pathLogin, payload, &response); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return response.Key, nil
}

// Register creates the account and customer profile in one call and
// returns the new session's backend token alongside the profile.
func (r *AuthRepository) Register(ctx context.Context, req *model.RegisterRequest) (*model.Customer, string, error) {
	payload := map[string]interface{}{
		"username":   req.Username,
		"email":      req.Email,
		"password":   req.Password,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"cpf":        req.CPF,
		"phone":      req.Phone,
		"address":    req.Address,
	}

	var response struct {
		Customer customerDTO `json:"customer"`
		Token    string      `json:"token"`
	}
	if err := r.client.post(ctx, pathRegister, payload, &response); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	customer := mapCustomer(response.Customer)
	return &customer, response.Token, nil
}

// Logout invalidates the backend token carried in the context.
func (r *AuthRepository) Logout(ctx context.Context) error {
	if err := r.client.post(ctx, pathLogout, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
