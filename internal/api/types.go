package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

const (
	// Version is the service release reported by /v1/health.
	Version = "1.0.0"
	// APIVersion is the current route version prefix.
	APIVersion = "v1"
)

// CalculateRequest is the body of POST /v1/calculate.
type CalculateRequest struct {
	Movies []string `json:"movies"`
}

// CalculateResponse is the priced cart returned by the calculate routes.
type CalculateResponse struct {
	Total    float64 `json:"total"`
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	// DiscountPercentage is the effective percentage, kept for older clients.
	DiscountPercentage          float64     `json:"discountPercentage"`
	EffectiveDiscountPercentage float64     `json:"effectiveDiscountPercentage"`
	TierDiscountPercentage      float64     `json:"tierDiscountPercentage"`
	DiscountRate                float64     `json:"discountRate"`
	ItemCount                   int         `json:"itemCount"`
	UniqueEpisodes              int         `json:"uniqueEpisodes"`
	Movies                      []MovieView `json:"movies"`
}

// MovieView describes one priced title.
type MovieView struct {
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	BasePrice     float64 `json:"basePrice"`
	EpisodeNumber *int    `json:"episodeNumber,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp string       `json:"timestamp"`
	Uptime    float64      `json:"uptime"`
	Cache     *CacheHealth `json:"cache,omitempty"`
}

// CacheHealth reports the configured cache backend.
type CacheHealth struct {
	Backend   string `json:"backend"`
	Reachable bool   `json:"reachable"`
}

// VersionedHealthResponse is returned by GET /v1/health.
type VersionedHealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	APIVersion string `json:"apiVersion"`
	Timestamp  string `json:"timestamp"`
}

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
