package model

import (
	"strings"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// CPF is a validated Brazilian taxpayer number: exactly 11 digits
// satisfying the two modulo-11 check digits.
type CPF struct {
	value string
}

// NewCPF strips formatting characters and validates the result. Inputs such
// as "111.444.777-35" and "11144477735" are both accepted.
func NewCPF(raw string) (CPF, error) {
	cleaned := digitsOnly(raw)

	if len(cleaned) != 11 {
		return CPF{}, errors.NewValidation("cpf must have 11 digits", nil)
	}

	if !validCPFDigits(cleaned) {
		return CPF{}, errors.NewValidation("invalid cpf", nil)
	}

	return CPF{value: cleaned}, nil
}

// Value returns the normalized 11-digit string.
func (c CPF) Value() string {
	return c.value
}

func (c CPF) String() string {
	return c.value
}

// Format renders the number as DDD.DDD.DDD-DD.
func (c CPF) Format() string {
	return c.value[0:3] + "." + c.value[3:6] + "." + c.value[6:9] + "-" + c.value[9:11]
}

func (c CPF) Equals(other CPF) bool {
	return c.value == other.value
}

func (c CPF) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.value + `"`), nil
}

func validCPFDigits(cpf string) bool {
	// Sequences like "00000000000" pass the checksum but are known invalid.
	allSame := true
	for i := 1; i < len(cpf); i++ {
		if cpf[i] != cpf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	if checkDigit(cpf, 9) != int(cpf[9]-'0') {
		return false
	}
	return checkDigit(cpf, 10) == int(cpf[10]-'0')
}

// checkDigit computes the verifier digit at position pos (9 or 10) from the
// preceding digits. The weighted sum uses descending weights starting at
// pos+1; a remainder of 10 or 11 coerces to 0 per the published algorithm.
func checkDigit(cpf string, pos int) int {
	sum := 0
	for i := 0; i < pos; i++ {
		sum += int(cpf[i]-'0') * (pos + 1 - i)
	}

	remainder := (sum * 10) % 11
	if remainder == 10 || remainder == 11 {
		remainder = 0
	}
	return remainder
}

func digitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
