// Package validation checks operator input against the validate tags on
// parking.VehicleDetails before it reaches the parking lot.
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/David0179/DS-Parking-Mngt-System/internal/parking"
)

var (
	ErrEmpty         = errors.New("cannot be empty")
	ErrTooShort      = errors.New("is too short")
	ErrTooLong       = errors.New("is too long")
	ErrInvalidChars  = errors.New("contains invalid characters")
	ErrLeadingZero   = errors.New("cannot start with '0'")
	ErrOuterSpace    = errors.New("cannot start or end with a space")
	ErrDoubleSpace   = errors.New("cannot have consecutive spaces")
	ErrContactLength = errors.New("must be 10-15 digits")
)

// FieldError names the field a rule failed for.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var labels = map[string]string{
	"RegistrationNumber": "Registration number",
	"OwnerName":          "Owner name",
	"Make":               "Vehicle make",
	"Model":              "Vehicle model",
	"Color":              "Vehicle color",
	"OwnerContact":       "Owner contact",
}

var tagErrors = map[string]error{
	"required":      ErrEmpty,
	"min":           ErrTooShort,
	"max":           ErrTooLong,
	"startsnotwith": ErrLeadingZero,
	"alphanum":      ErrInvalidChars,
	"letterspace":   ErrInvalidChars,
	"alnumspace":    ErrInvalidChars,
	"nooutspace":    ErrOuterSpace,
	"singlespace":   ErrDoubleSpace,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("letterspace", runesOf(isLetterOrSpace))
	v.RegisterValidation("alnumspace", runesOf(isAlnumOrSpace))
	v.RegisterValidation("nooutspace", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return !strings.HasPrefix(s, " ") && !strings.HasSuffix(s, " ")
	})
	v.RegisterValidation("singlespace", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), "  ")
	})
	return v
}

func runesOf(ok func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !ok(r) {
				return false
			}
		}
		return true
	}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isLetterOrSpace(r rune) bool {
	return r == ' ' || isLetter(r)
}

func isAlnumOrSpace(r rune) bool {
	return isLetterOrSpace(r) || (r >= '0' && r <= '9')
}

// Details validates every field and reports the first one that fails.
func Details(d parking.VehicleDetails) error {
	return fieldError(validate.Struct(d))
}

func field(name string, d parking.VehicleDetails) error {
	return fieldError(validate.StructPartial(d, name))
}

// fieldError maps the first validator failure onto the package's
// sentinel errors.
func fieldError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	sentinel, ok := tagErrors[fe.Tag()]
	if !ok {
		sentinel = ErrInvalidChars
	}
	// every contact rule except presence reports the digit-count message
	if fe.StructField() == "OwnerContact" && fe.Tag() != "required" {
		sentinel = ErrContactLength
	}
	return &FieldError{Field: labels[fe.StructField()], Err: sentinel}
}

// RegistrationNumber accepts 3 to 10 ASCII letters and digits, not
// starting with '0'.
func RegistrationNumber(s string) error {
	return field("RegistrationNumber", parking.VehicleDetails{RegistrationNumber: s})
}

// OwnerName accepts letters separated by single spaces, up to 100 bytes.
func OwnerName(s string) error {
	return field("OwnerName", parking.VehicleDetails{OwnerName: s})
}

func VehicleMake(s string) error {
	return field("Make", parking.VehicleDetails{Make: s})
}

func VehicleModel(s string) error {
	return field("Model", parking.VehicleDetails{Model: s})
}

func VehicleColor(s string) error {
	return field("Color", parking.VehicleDetails{Color: s})
}

// OwnerContact accepts 10 to 15 digits.
func OwnerContact(s string) error {
	return field("OwnerContact", parking.VehicleDetails{OwnerContact: s})
}
