package support

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/arca/internal/user"
)

const (
	MinCapacity = 1
	MaxCapacity = 10000
)

var (
	ErrCapacityNotNumber  = errors.New("capacity must be a whole number")
	ErrCapacityRange      = fmt.Errorf("capacity must be between %d and %d", MinCapacity, MaxCapacity)
	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrMissingCoordinates = errors.New("latitude and longitude are required")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// mintrim=N: at least N characters once surrounding spaces are removed.
	_ = v.RegisterValidation("mintrim", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return user.ValidatePhone(fl.Field().String()) == nil
	})
	return v
}

// Registration is a request to add a support point.
type Registration struct {
	Name         string   `json:"name" validate:"mintrim=3"`
	Neighborhood string   `json:"neighborhood" validate:"mintrim=2"`
	Street       string   `json:"street" validate:"mintrim=3"`
	City         string   `json:"city" validate:"mintrim=2"`
	State        string   `json:"state" validate:"mintrim=2"`
	Country      string   `json:"country" validate:"mintrim=2"`
	Capacity     int      `json:"capacity" validate:"min=1,max=10000"`
	Phone        string   `json:"phone" validate:"phone"`
	Lat          *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon          *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	Notes        string   `json:"notes"`
}

// Coord returns a pointer to v, for filling Registration coordinates.
func Coord(v float64) *float64 {
	return &v
}

// FieldError describes one rejected registration field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	err     error
}

func (fe FieldError) Error() string {
	return fe.Field + ": " + fe.Message
}

func (fe FieldError) Unwrap() error {
	return fe.err
}

// ValidationErrors collects every rejected field of a registration. It
// unwraps to the sentinel errors of this package and of package user, so
// errors.Is(err, ErrCapacityRange) works on the aggregate.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "invalid support point: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	var errs []error
	for _, fe := range v {
		if fe.err != nil {
			errs = append(errs, fe.err)
		}
	}
	return errs
}

// Validate checks every field and returns ValidationErrors when any fails.
func (r Registration) Validate() error {
	return collect(validate.Struct(r))
}

// ValidateField checks the single struct field named field (e.g. "State",
// "Lat") and returns its FieldError when it is rejected.
func (r Registration) ValidateField(field string) error {
	err := collect(validate.StructPartial(r, field))
	var verrs ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0]
	}
	return err
}

func collect(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) FieldError {
	field := strings.ToLower(fe.Field())
	switch fe.Field() {
	case "Lat", "Lon":
		if fe.Tag() == "required" {
			return FieldError{Field: field, Message: ErrMissingCoordinates.Error(), err: ErrMissingCoordinates}
		}
		return FieldError{Field: field, Message: ErrInvalidCoordinates.Error(), err: ErrInvalidCoordinates}
	case "Capacity":
		return FieldError{Field: field, Message: ErrCapacityRange.Error(), err: ErrCapacityRange}
	case "Phone":
		return FieldError{Field: field, Message: user.ErrInvalidPhone.Error(), err: user.ErrInvalidPhone}
	}
	return FieldError{Field: field, Message: fmt.Sprintf("must have at least %s characters", fe.Param())}
}

// Point builds the pending support point the registration describes. It
// expects a registration that passed Validate.
func (r Registration) Point(id int) Point {
	notes := strings.TrimSpace(r.Notes)
	if notes == "" {
		notes = DefaultNotes
	}
	return Point{
		ID:           id,
		Name:         strings.TrimSpace(r.Name),
		Neighborhood: strings.TrimSpace(r.Neighborhood),
		Street:       strings.TrimSpace(r.Street),
		City:         strings.TrimSpace(r.City),
		State:        strings.TrimSpace(r.State),
		Country:      strings.TrimSpace(r.Country),
		Capacity:     r.Capacity,
		Phone:        strings.TrimSpace(r.Phone),
		Status:       StatusPending,
		Lat:          deref(r.Lat),
		Lon:          deref(r.Lon),
		Notes:        notes,
	}
}

// ParseCapacity converts typed capacity text into a value within range.
func ParseCapacity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrCapacityNotNumber
	}
	if n < MinCapacity || n > MaxCapacity {
		return 0, ErrCapacityRange
	}
	return n, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
