package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/pkg/errors"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(10.5)
	require.NoError(t, err)
	assert.Equal(t, 10.5, m.Value())

	_, err = NewMoney(-1)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain decimal", input: "79.90", want: 79.90},
		{name: "integer", input: "100", want: 100},
		{name: "trims whitespace", input: " 12.50 ", want: 12.50},
		{name: "unparsable", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := MoneyFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Value())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	ten, _ := NewMoney(10)
	three, _ := NewMoney(3)

	assert.Equal(t, 13.0, ten.Add(three).Value())
	assert.Equal(t, 7.0, ten.Subtract(three).Value())

	doubled, err := ten.Multiply(2.5)
	require.NoError(t, err)
	assert.Equal(t, 25.0, doubled.Value())

	_, err = ten.Multiply(-1)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestMoneySubtractClampsAtZero(t *testing.T) {
	zero, _ := NewMoney(0)
	five, _ := NewMoney(5)

	assert.Equal(t, 0.0, zero.Subtract(five).Value())
	assert.Equal(t, 0.0, five.Subtract(five).Value())
}

func TestMoneyComparison(t *testing.T) {
	a, _ := NewMoney(10)
	b, _ := NewMoney(10)
	c, _ := NewMoney(9.99)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, a.IsGreaterThan(c))
	assert.False(t, c.IsGreaterThan(a))
	assert.False(t, a.IsGreaterThan(b))
}

func TestMoneyFormat(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "R$ 0,00"},
		{value: 9.9, want: "R$ 9,90"},
		{value: 1234.56, want: "R$ 1.234,56"},
		{value: 1000000, want: "R$ 1.000.000,00"},
	}

	for _, tt := range tests {
		m, err := NewMoney(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, m.Format())
	}
}
