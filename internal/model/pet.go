package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/petcareapp/portal-api/pkg/errors"
)

// Species of a breed as the backend enumerates it.
type Species string

const (
	SpeciesDog   Species = "DOG"
	SpeciesCat   Species = "CAT"
	SpeciesBird  Species = "BIRD"
	SpeciesOther Species = "OTHER"
)

// ParseSpecies validates a wire value against the known species set.
func ParseSpecies(raw string) (Species, error) {
	switch s := Species(raw); s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesOther:
		return s, nil
	}
	return "", errors.NewValidation(fmt.Sprintf("unknown species %q", raw), nil)
}

// Label returns the display name. A value that slipped past parsing maps to
// a generic label instead of failing.
func (s Species) Label() string {
	switch s {
	case SpeciesDog:
		return "Cachorro"
	case SpeciesCat:
		return "Gato"
	case SpeciesBird:
		return "Pássaro"
	case SpeciesOther:
		return "Outro"
	default:
		return "Desconhecido"
	}
}

// Breed is reference data owned by the backend, not by the pet.
type Breed struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Species     Species `json:"species"`
	Description string  `json:"description,omitempty"`
}

// Pet is an immutable snapshot of a customer's pet. A nil BirthDate means
// the birth date is unknown; such pets have no derivable age.
type Pet struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Breed     Breed      `json:"breed"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	OwnerID   int64      `json:"owner_id"`
}

// Age is a calendar age breakdown, not an elapsed-day count.
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// DetailedAgeAt subtracts calendar components, borrowing days from the
// previous month's length and months from the year when a component goes
// negative. This yields the human notion of age.
func (p Pet) DetailedAgeAt(now time.Time) (Age, bool) {
	if p.BirthDate == nil {
		return Age{}, false
	}
	birth := *p.BirthDate

	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	days := now.Day() - birth.Day()

	if days < 0 {
		months--
		// Day 0 of the current month is the last day of the previous one.
		days += time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location()).Day()
	}

	if months < 0 {
		years--
		months += 12
	}

	return Age{Years: years, Months: months, Days: days}, true
}

func (p Pet) DetailedAge() (Age, bool) {
	return p.DetailedAgeAt(time.Now())
}

// AgeAt renders the age as a pt-BR phrase, e.g. "2 anos, 3 meses, 10 dias".
// Zero components are omitted, except that a pet born today reads "0 dias"
// so the phrase is never empty when a birth date exists.
func (p Pet) AgeAt(now time.Time) (string, bool) {
	age, ok := p.DetailedAgeAt(now)
	if !ok {
		return "", false
	}

	var parts []string
	if age.Years > 0 {
		parts = append(parts, pluralize(age.Years, "ano", "anos"))
	}
	if age.Months > 0 {
		parts = append(parts, pluralize(age.Months, "mês", "meses"))
	}
	if age.Days > 0 || len(parts) == 0 {
		parts = append(parts, pluralize(age.Days, "dia", "dias"))
	}

	return strings.Join(parts, ", "), true
}

func (p Pet) Age() (string, bool) {
	return p.AgeAt(time.Now())
}

// IsAdultAt reports whether the pet is at least one year old. Pets without
// a birth date are never adult.
func (p Pet) IsAdultAt(now time.Time) bool {
	age, ok := p.DetailedAgeAt(now)
	return ok && age.Years >= 1
}

func (p Pet) IsAdult() bool {
	return p.IsAdultAt(time.Now())
}

func (p Pet) SpeciesLabel() string {
	return p.Breed.Species.Label()
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// CreatePetRequest is the portal's pet registration payload.
type CreatePetRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	BreedID   int64   `json:"breed_id" binding:"required"`
	BirthDate *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdatePetRequest carries partial updates; nil fields are left untouched.
type UpdatePetRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	BreedID   *int64  `json:"breed_id"`
	BirthDate *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
}
