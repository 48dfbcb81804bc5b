package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// ValidationCode is the machine readable code attached to InvalidInputError.
const ValidationCode = "VALIDATION_ERROR"

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps an error to the status code a transport should answer with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

// InvalidInputError reports caller input that cannot be priced. It matches
// ErrValidation under errors.Is.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

// NullInput reports a missing value for field.
func NullInput(field string) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Reason: field + " cannot be null or undefined",
	}
}

// InvalidType reports a value of the wrong type for field.
func InvalidType(field, expected string, value any) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf("%s must be of type %s", field, expected),
	}
}

// EmptyList reports an empty list where at least one element is required.
func EmptyList(field string) *InvalidInputError {
	return &InvalidInputError{
		Field:  field,
		Value:  []any{},
		Reason: field + " cannot be an empty array",
	}
}

func (e *InvalidInputError) Error() string {
	if e == nil {
		return ErrValidation.Error()
	}
	if e.Reason != "" {
		return e.Reason
	}
	if e.Field != "" {
		return e.Field + " is invalid"
	}
	return ErrValidation.Error()
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrValidation
}

// MarshalJSON renders the error the way API clients expect it.
func (e *InvalidInputError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"name"`
		Message string `json:"message"`
		Code    string `json:"code"`
		Field   string `json:"field,omitempty"`
		Value   any    `json:"value"`
	}{
		Name:    "InvalidInputError",
		Message: e.Error(),
		Code:    ValidationCode,
		Field:   e.Field,
		Value:   e.Value,
	})
}
