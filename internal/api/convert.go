package api

import (
	"net/http"
	"time"

	"dvdshop/internal/calculator"
	"dvdshop/internal/movie"
)

const statusOK = "ok"

// FromDetails converts a calculator breakdown to its API representation.
func FromDetails(details calculator.Details) CalculateResponse {
	resp := Summary(details)
	resp.Movies = MoviesFromItems(details.Items)
	return resp
}

// Summary converts the totals of a breakdown and leaves Movies empty. The
// result is what the server caches; movies are rebuilt per request.
func Summary(details calculator.Details) CalculateResponse {
	b := details.Breakdown
	return CalculateResponse{
		Total:                       b.Total,
		Subtotal:                    b.Subtotal,
		Discount:                    b.Discount,
		DiscountPercentage:          b.EffectiveDiscountPercentage,
		EffectiveDiscountPercentage: b.EffectiveDiscountPercentage,
		TierDiscountPercentage:      b.TierDiscountPercentage,
		DiscountRate:                b.DiscountRate,
		ItemCount:                   b.ItemCount,
		UniqueEpisodes:              b.UniqueEpisodes,
	}
}

// MoviesFromItems converts calculator items, keeping order. Standard titles
// carry no episode number.
func MoviesFromItems(items []calculator.Item) []MovieView {
	views := make([]MovieView, len(items))
	for i, item := range items {
		view := MovieView{
			Title:     item.Title,
			Type:      item.Kind.String(),
			BasePrice: item.BasePrice,
		}
		if item.Kind == movie.KindPromotional {
			ep := item.Episode
			view.EpisodeNumber = &ep
		}
		views[i] = view
	}
	return views
}

// NewHealth builds the /health payload.
func NewHealth(now time.Time, uptime time.Duration, cache *CacheHealth) HealthResponse {
	return HealthResponse{
		Status:    statusOK,
		Timestamp: now.UTC().Format(dateTimeFormat),
		Uptime:    uptime.Seconds(),
		Cache:     cache,
	}
}

// NewVersionedHealth builds the /v1/health payload.
func NewVersionedHealth(now time.Time) VersionedHealthResponse {
	return VersionedHealthResponse{
		Status:     statusOK,
		Version:    Version,
		APIVersion: APIVersion,
		Timestamp:  now.UTC().Format(dateTimeFormat),
	}
}

// NewError builds an error body for status with the given detail.
func NewError(status int, message string) ErrorResponse {
	return ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	}
}
