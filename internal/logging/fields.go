package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldOperation names the API operation being served.
	FieldOperation = "operation"
	// FieldClientIP is the caller address as seen by the server.
	FieldClientIP = "client_ip"
	// FieldInstanceID identifies one server process lifetime.
	FieldInstanceID = "instance_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
	// FieldCacheBackend names the cache implementation in use.
	FieldCacheBackend = "cache_backend"
)
