// Package user holds the registered people who consult alerts and shelters.
package user

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/arca/internal/common"
)

type Role int

const (
	RoleUser Role = iota
	RoleAdministrator
)

func (r Role) String() string {
	if r == RoleAdministrator {
		return "Administrator"
	}
	return "User"
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// IsAdmin reports whether the role sees every city and every support point.
func (r Role) IsAdmin() bool {
	return r == RoleAdministrator
}

// User is a registered person. Only Email and Phone are editable.
type User struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	TaxID string  `json:"tax_id"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	Age   int     `json:"age"`
	Role  Role    `json:"role"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("phone must have between 10 and 15 digits")
)

var validate = validator.New()

// ValidateEmail checks an email before a profile edit.
func ValidateEmail(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePhone checks that phone has 10 to 15 digits once every other
// character is stripped.
func ValidatePhone(phone string) error {
	n := len(common.DigitsOnly(phone))
	if n < 10 || n > 15 {
		return ErrInvalidPhone
	}
	return nil
}
