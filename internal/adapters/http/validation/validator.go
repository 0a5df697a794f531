// Package validation checks page forms and API bodies with struct tags.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/okian/lobby/internal/domain/roster"
)

// Validator wraps the validator instance.
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator //nolint:gochecknoglobals // shared validator cache
	once     sync.Once
)

// New builds a validator with the lobby rules registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("slotkey", validateSlotKey)
	return &Validator{validate: v}
}

// Get returns the process-wide validator.
func Get() *Validator {
	once.Do(func() { instance = New() })
	return instance
}

// Struct validates s using its tags.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// FormatError turns validation failures into field messages that do not leak
// Go struct names.
func FormatError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "slotkey":
			errs[field] = "Unknown slot"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "printascii":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}
	return errs
}

// Message flattens FormatError into one line, fields sorted.
func Message(err error) string {
	errs := FormatError(err)
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, "; ")
}

func validateSlotKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if key == "" {
		return true
	}
	_, _, ok := roster.SlotKey(key).Parse()
	return ok
}
