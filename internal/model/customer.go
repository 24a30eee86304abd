package model

import (
	"fmt"
	"strings"
)

// User is the account identity embedded in a customer profile.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Customer is an immutable profile snapshot. CPF is kept as the raw backend
// string; registration validates it through NewCPF before it ever reaches
// the backend.
type Customer struct {
	ID      int64  `json:"id"`
	User    User   `json:"user"`
	CPF     string `json:"cpf"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// FullName joins first and last name, falling back to the username when
// both are blank.
func (c Customer) FullName() string {
	name := strings.TrimSpace(c.User.FirstName + " " + c.User.LastName)
	if name == "" {
		return c.User.Username
	}
	return name
}

func (c Customer) Email() string {
	return c.User.Email
}

// FormatPhone renders Brazilian phone numbers: 11 digits as the mobile
// pattern (DD) DDDDD-DDDD, 10 digits as the landline pattern
// (DD) DDDD-DDDD, anything else unchanged.
func (c Customer) FormatPhone() string {
	cleaned := digitsOnly(c.Phone)
	switch len(cleaned) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", cleaned[0:2], cleaned[2:7], cleaned[7:11])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", cleaned[0:2], cleaned[2:6], cleaned[6:10])
	}
	return c.Phone
}

// ValidPhoneNumber accepts Brazilian numbers with or without formatting:
// 10 digits (landline) or 11 (mobile).
func ValidPhoneNumber(raw string) bool {
	n := len(digitsOnly(raw))
	return n == 10 || n == 11
}

// RegisterRequest is the portal's account creation payload.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	CPF       string `json:"cpf" binding:"required,cpf"`
	Phone     string `json:"phone" binding:"required,max=20"`
	Address   string `json:"address" binding:"required,max=300"`
}

// LoginRequest carries portal credentials; the backend authenticates them.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateCustomerRequest carries partial profile updates.
type UpdateCustomerRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,max=20"`
	Address   *string `json:"address" binding:"omitempty,max=300"`
}

// TokenResponse is returned by login and register.
type TokenResponse struct {
	Token    string    `json:"token"`
	Customer *Customer `json:"customer"`
}
