package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerFullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "first and last", user: User{FirstName: "Ana", LastName: "Souza", Username: "anas"}, want: "Ana Souza"},
		{name: "first only", user: User{FirstName: "Ana", Username: "anas"}, want: "Ana"},
		{name: "last only", user: User{LastName: "Souza", Username: "anas"}, want: "Souza"},
		{name: "falls back to username", user: User{Username: "anas"}, want: "anas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Customer{ID: 1, User: tt.user}
			assert.Equal(t, tt.want, c.FullName())
		})
	}
}

func TestCustomerEmail(t *testing.T) {
	c := Customer{User: User{Email: "ana@example.com"}}
	assert.Equal(t, "ana@example.com", c.Email())
}

func TestCustomerFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "mobile", phone: "11987654321", want: "(11) 98765-4321"},
		{name: "mobile already formatted", phone: "(11) 98765-4321", want: "(11) 98765-4321"},
		{name: "landline", phone: "1133334444", want: "(11) 3333-4444"},
		{name: "unrecognized length unchanged", phone: "12345", want: "12345"},
		{name: "empty unchanged", phone: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Customer{Phone: tt.phone}
			assert.Equal(t, tt.want, c.FormatPhone())
		})
	}
}
