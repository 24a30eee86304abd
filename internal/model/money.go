package model

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// Money is an immutable BRL amount. The zero value is R$ 0,00. The amount
// never goes negative: constructors reject negative input and Subtract
// clamps at zero.
type Money struct {
	value float64
}

// NewMoney wraps a non-negative amount.
func NewMoney(value float64) (Money, error) {
	if value < 0 {
		return Money{}, errors.NewValidation("money value cannot be negative", nil)
	}
	return Money{value: value}, nil
}

// MoneyFromString parses a decimal string as produced by the backend's
// price fields.
func MoneyFromString(raw string) (Money, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Money{}, errors.NewValidation("invalid money value", err)
	}
	return NewMoney(parsed)
}

func (m Money) Value() float64 {
	return m.value
}

func (m Money) Add(other Money) Money {
	return Money{value: m.value + other.value}
}

// Subtract clamps the result at zero instead of going negative.
func (m Money) Subtract(other Money) Money {
	return Money{value: math.Max(0, m.value-other.value)}
}

// Multiply scales the amount by factor, which may be fractional. A negative
// factor is a caller error and surfaces as a validation error.
func (m Money) Multiply(factor float64) (Money, error) {
	return NewMoney(m.value * factor)
}

func (m Money) IsGreaterThan(other Money) bool {
	return m.value > other.value
}

func (m Money) Equals(other Money) bool {
	return m.value == other.value
}

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// Format renders the amount as a pt-BR currency string, e.g. "R$ 1.234,56".
func (m Money) Format() string {
	return brlPrinter.Sprintf("R$ %v", number.Decimal(m.value, number.Scale(2)))
}

// MarshalJSON emits the plain numeric amount with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.value, 'f', 2, 64)), nil
}
