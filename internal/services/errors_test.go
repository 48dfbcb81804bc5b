package services_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"dvdshop/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrTransient, "cache", "get", "redis unavailable", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"cache", "get", "redis unavailable"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %q", err.Error())
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{services.Wrap(services.ErrValidation, "api", "decode", "bad body", nil), http.StatusBadRequest},
		{services.NullInput("movies"), http.StatusBadRequest},
		{services.Wrap(services.ErrNotFound, "", "", "missing", nil), http.StatusNotFound},
		{services.Wrap(services.ErrTimeout, "", "", "slow", nil), http.StatusGatewayTimeout},
		{services.Wrap(services.ErrTransient, "", "", "retry", nil), http.StatusServiceUnavailable},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := services.HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestInvalidInputErrorMatchesValidation(t *testing.T) {
	err := fmt.Errorf("calculate: %w", services.NullInput("movieTitles"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatal("expected ErrValidation match")
	}
	var invalid *services.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatal("expected errors.As to find InvalidInputError")
	}
	if invalid.Field != "movieTitles" {
		t.Fatalf("field = %q", invalid.Field)
	}
	if invalid.Error() != "movieTitles cannot be null or undefined" {
		t.Fatalf("message = %q", invalid.Error())
	}
}

func TestInvalidInputErrorJSON(t *testing.T) {
	data, err := json.Marshal(services.InvalidType("movies", "array", "nope"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]any{
		"name":    "InvalidInputError",
		"message": "movies must be of type array",
		"code":    "VALIDATION_ERROR",
		"field":   "movies",
		"value":   "nope",
	}
	for key, value := range want {
		if decoded[key] != value {
			t.Errorf("%s = %v, want %v", key, decoded[key], value)
		}
	}
}

func TestEmptyList(t *testing.T) {
	err := services.EmptyList("movies")
	if err.Error() != "movies cannot be an empty array" {
		t.Fatalf("message = %q", err.Error())
	}
}
