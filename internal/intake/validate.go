package intake

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid form input")

// ValidationError carries the first rule that failed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "lead_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "service_id", func(fl validator.FieldLevel) bool {
		return slices.Contains(ServiceIDs, fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("intake: registering %q validation: %v", tag, err))
	}
}

type rule struct {
	value  func(Input) string
	tag    string
	reason string
}

// Order matters: the first failing rule is reported.
var rules = []rule{
	{func(in Input) string { return strings.TrimSpace(in.Name) }, "required", "name required"},
	{func(in Input) string { return strings.TrimSpace(in.Email) }, "required", "email required"},
	{func(in Input) string { return in.Service }, "required", "service required"},
	{func(in Input) string { return in.Email }, "lead_email", "invalid email format"},
	{func(in Input) string { return in.Service }, "service_id", "unknown service"},
}

// Validate checks in and returns nil or a *ValidationError naming the first broken rule.
// It has no side effects.
func Validate(in Input) error {
	for _, r := range rules {
		if err := validate.Var(r.value(in), r.tag); err != nil {
			return &ValidationError{Reason: r.reason}
		}
	}
	return nil
}
