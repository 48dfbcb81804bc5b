package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"dvdshop/internal/services"
)

const calculateSchemaURL = "dvdshop://schemas/calculate-request.json"

const calculateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["movies"],
  "properties": {
    "movies": {
      "type": "array",
      "items": {"type": "string"}
    }
  }
}`

// Messages returned to callers for rejected calculate bodies.
const (
	MsgInvalidJSON     = "invalid JSON body"
	MsgBodyNotObject   = "request body must be a JSON object"
	MsgMoviesRequired  = "movies is required"
	MsgMoviesNotArray  = "movies must be an array"
	MsgMoviesNotString = "All movies must be strings"
)

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func calculateRequestSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(calculateSchemaURL, strings.NewReader(calculateSchema)); err != nil {
			schemaErr = fmt.Errorf("add calculate schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(calculateSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile calculate schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// DecodeCalculateRequest reads and validates a calculate body. Rejected input
// yields a *services.InvalidInputError; a body over the server limit yields
// the underlying *http.MaxBytesError.
func DecodeCalculateRequest(r io.Reader) (CalculateRequest, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if tooLarge := asMaxBytes(err); tooLarge != nil {
			return CalculateRequest{}, tooLarge
		}
		return CalculateRequest{}, &services.InvalidInputError{Field: "body", Reason: MsgInvalidJSON}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if tooLarge := asMaxBytes(err); tooLarge != nil {
			return CalculateRequest{}, tooLarge
		}
		return CalculateRequest{}, &services.InvalidInputError{Field: "body", Reason: MsgInvalidJSON}
	}

	schema, err := calculateRequestSchema()
	if err != nil {
		return CalculateRequest{}, err
	}
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return CalculateRequest{}, fmt.Errorf("validate calculate body: %w", err)
		}
		return CalculateRequest{}, rejection(verr, doc)
	}

	raw := doc.(map[string]any)["movies"].([]any)
	req := CalculateRequest{Movies: make([]string, len(raw))}
	for i, v := range raw {
		req.Movies[i] = v.(string)
	}
	return req, nil
}

func asMaxBytes(err error) *http.MaxBytesError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return tooLarge
	}
	return nil
}

// rejection picks the most specific message among the schema failures,
// preferring structural problems over element problems.
func rejection(verr *jsonschema.ValidationError, doc any) *services.InvalidInputError {
	var moviesValue any
	if obj, ok := doc.(map[string]any); ok {
		moviesValue = obj["movies"]
	}

	rank, reason, value := 0, MsgInvalidJSON, any(nil)
	consider := func(r int, msg string, v any) {
		if r > rank {
			rank, reason, value = r, msg, v
		}
	}
	for _, leaf := range leaves(verr) {
		kl := leaf.KeywordLocation
		switch {
		case kl == "/type":
			consider(4, MsgBodyNotObject, doc)
		case strings.HasSuffix(kl, "/required"):
			consider(3, MsgMoviesRequired, nil)
		case strings.HasSuffix(kl, "/properties/movies/type"):
			consider(2, MsgMoviesNotArray, moviesValue)
		case strings.Contains(kl, "/properties/movies/items"):
			consider(1, MsgMoviesNotString, moviesValue)
		}
	}
	field := "movies"
	if rank == 4 {
		field = "body"
	}
	return &services.InvalidInputError{Field: field, Value: value, Reason: reason}
}

func leaves(verr *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(verr.Causes) == 0 {
		return []*jsonschema.ValidationError{verr}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range verr.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}
