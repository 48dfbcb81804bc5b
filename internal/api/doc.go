// Package api defines the wire format of the pricing HTTP API and the
// converters between it and the calculator's breakdown types.
//
// # Key Types
//
// CalculateRequest/CalculateResponse: the body accepted and returned by the
// calculate routes. MovieView is one priced title in request order.
//
// HealthResponse/VersionedHealthResponse: liveness payloads for /health and
// /v1/health.
//
// ErrorResponse: every non-2xx answer, `{"error": <status text>, "message": ...}`.
//
// # Request validation
//
// DecodeCalculateRequest checks the body against an embedded JSON Schema and
// returns a services.InvalidInputError whose message is safe to show callers.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Movie kinds are exposed as
// "BACK_TO_THE_FUTURE" and "OTHER". The OpenAPI document is authored in YAML
// and converted to JSON once on first request.
package api
