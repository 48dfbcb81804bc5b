package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"dvdshop/internal/calculator"
)

func TestFromDetailsKeepsOrderAndEpisodes(t *testing.T) {
	details, err := calculator.New().CalculateWithDetails([]string{
		"Star Wars", "Back to the Future III", "Back to the Future", "Back to the Future II",
	})
	if err != nil {
		t.Fatalf("CalculateWithDetails: %v", err)
	}

	resp := FromDetails(details)
	if resp.Total != 56 || resp.Subtotal != 65 || resp.Discount != 9 {
		t.Fatalf("unexpected totals: %+v", resp)
	}
	if resp.TierDiscountPercentage != 20 || resp.DiscountRate != 0.2 {
		t.Fatalf("unexpected tier figures: %+v", resp)
	}
	if resp.DiscountPercentage != resp.EffectiveDiscountPercentage {
		t.Fatalf("discountPercentage should mirror the effective percentage: %+v", resp)
	}
	if resp.ItemCount != 4 || resp.UniqueEpisodes != 3 {
		t.Fatalf("unexpected counts: %+v", resp)
	}

	if len(resp.Movies) != 4 {
		t.Fatalf("expected 4 movies, got %d", len(resp.Movies))
	}
	first := resp.Movies[0]
	if first.Title != "Star Wars" || first.Type != "OTHER" || first.BasePrice != 20 || first.EpisodeNumber != nil {
		t.Fatalf("unexpected standard view: %+v", first)
	}
	second := resp.Movies[1]
	if second.Type != "BACK_TO_THE_FUTURE" || second.EpisodeNumber == nil || *second.EpisodeNumber != 3 {
		t.Fatalf("unexpected saga view: %+v", second)
	}
}

func TestFromDetailsEmptyCartEncodesEmptyMovies(t *testing.T) {
	details, err := calculator.New().CalculateWithDetails([]string{})
	if err != nil {
		t.Fatalf("CalculateWithDetails: %v", err)
	}
	data, err := json.Marshal(FromDetails(details))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"movies":[]`) {
		t.Fatalf("expected empty movies array, got %s", data)
	}
	if !strings.Contains(string(data), `"total":0`) {
		t.Fatalf("expected zero total, got %s", data)
	}
}

func TestSummaryOmitsMovies(t *testing.T) {
	details, _ := calculator.New().CalculateWithDetails([]string{"Back to the Future"})
	summary := Summary(details)
	if summary.Movies != nil {
		t.Fatalf("summary should not carry movies: %+v", summary.Movies)
	}
	if summary.Total != 15 {
		t.Fatalf("total = %v, want 15", summary.Total)
	}
}

func TestStandardMovieOmitsEpisodeNumber(t *testing.T) {
	details, _ := calculator.New().CalculateWithDetails([]string{"Amélie"})
	data, err := json.Marshal(MoviesFromItems(details.Items))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "episodeNumber") {
		t.Fatalf("standard movie should omit episodeNumber: %s", data)
	}
}

func TestHealthPayloads(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	health := NewHealth(now, 90*time.Second, &CacheHealth{Backend: "memory", Reachable: true})
	if health.Status != "ok" || health.Uptime != 90 {
		t.Fatalf("unexpected health: %+v", health)
	}
	if health.Timestamp != "2026-03-01T09:00:00.000Z" {
		t.Fatalf("timestamp = %q", health.Timestamp)
	}

	v1 := NewVersionedHealth(now)
	if v1.APIVersion != "v1" || v1.Version != Version || v1.Status != "ok" {
		t.Fatalf("unexpected v1 health: %+v", v1)
	}
}

func TestNewErrorUsesStatusText(t *testing.T) {
	body := NewError(http.StatusTooManyRequests, "slow down")
	if body.Error != "Too Many Requests" || body.Message != "slow down" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}
