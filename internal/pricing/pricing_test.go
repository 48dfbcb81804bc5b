package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"dvdshop/internal/movie"
	"dvdshop/internal/pricing"
)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func TestPriceScenarios(t *testing.T) {
	tests := []struct {
		name         string
		titles       []string
		wantTotal    string
		wantSubtotal string
		wantRate     string
		wantUnique   int
	}{
		{name: "empty", titles: nil, wantTotal: "0", wantSubtotal: "0", wantRate: "0", wantUnique: 0},
		{name: "single episode", titles: []string{"Back to the Future"}, wantTotal: "15", wantSubtotal: "15", wantRate: "0", wantUnique: 1},
		{name: "two episodes", titles: []string{"Back to the Future 1", "Back to the Future 2"}, wantTotal: "27", wantSubtotal: "30", wantRate: "0.1", wantUnique: 2},
		{name: "three episodes", titles: []string{"Back to the Future 1", "Back to the Future 2", "Back to the Future 3"}, wantTotal: "36", wantSubtotal: "45", wantRate: "0.2", wantUnique: 3},
		{name: "three episodes with duplicate", titles: []string{"Back to the Future 1", "Back to the Future 2", "Back to the Future 3", "Back to the Future 2"}, wantTotal: "48", wantSubtotal: "60", wantRate: "0.2", wantUnique: 3},
		{name: "roman numerals", titles: []string{"Back to the Future II", "Back to the Future III"}, wantTotal: "27", wantSubtotal: "30", wantRate: "0.1", wantUnique: 2},
		{name: "standard only", titles: []string{"Random Movie"}, wantTotal: "20", wantSubtotal: "20", wantRate: "0", wantUnique: 0},
		{name: "mixed", titles: []string{"Back to the Future 1", "Back to the Future 2", "Back to the Future 3", "La chèvre"}, wantTotal: "56", wantSubtotal: "65", wantRate: "0.2", wantUnique: 3},
		{name: "same episode repeated", titles: []string{"Back to the Future", "Back to the Future 1", "back to the future 1"}, wantTotal: "45", wantSubtotal: "45", wantRate: "0", wantUnique: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := pricing.Price(movie.ClassifyAll(tt.titles))
			if !cart.Total.Equal(dec(t, tt.wantTotal)) {
				t.Fatalf("Total = %s, want %s", cart.Total, tt.wantTotal)
			}
			if !cart.Subtotal.Equal(dec(t, tt.wantSubtotal)) {
				t.Fatalf("Subtotal = %s, want %s", cart.Subtotal, tt.wantSubtotal)
			}
			if !cart.DiscountRate.Equal(dec(t, tt.wantRate)) {
				t.Fatalf("DiscountRate = %s, want %s", cart.DiscountRate, tt.wantRate)
			}
			if cart.UniquePromotionalEpisodes != tt.wantUnique {
				t.Fatalf("UniquePromotionalEpisodes = %d, want %d", cart.UniquePromotionalEpisodes, tt.wantUnique)
			}
			if !cart.DiscountAmount.Equal(cart.Subtotal.Sub(cart.Total)) {
				t.Fatalf("DiscountAmount = %s, want subtotal - total", cart.DiscountAmount)
			}
			if cart.ItemCount() != len(tt.titles) {
				t.Fatalf("ItemCount = %d, want %d", cart.ItemCount(), len(tt.titles))
			}
		})
	}
}

func TestPriceMixedKindDilution(t *testing.T) {
	items := []movie.Record{
		movie.NewPromotional("promo#1", 1),
		movie.NewPromotional("promo#2", 2),
		movie.NewStandard("standard"),
		movie.NewStandard("standard"),
	}
	cart := pricing.Price(items)

	checks := map[string]struct {
		got  decimal.Decimal
		want string
	}{
		"PromotionalSubtotal": {cart.PromotionalSubtotal, "30"},
		"DiscountRate":        {cart.DiscountRate, "0.1"},
		"PromotionalTotal":    {cart.PromotionalTotal, "27"},
		"StandardSubtotal":    {cart.StandardSubtotal, "40"},
		"Total":               {cart.Total, "67"},
		"Subtotal":            {cart.Subtotal, "70"},
	}
	for name, check := range checks {
		if !check.got.Equal(dec(t, check.want)) {
			t.Errorf("%s = %s, want %s", name, check.got, check.want)
		}
	}

	b := cart.Breakdown()
	if b.EffectiveDiscountPercentage != 4.3 {
		t.Fatalf("EffectiveDiscountPercentage = %v, want 4.3", b.EffectiveDiscountPercentage)
	}
	if b.TierDiscountPercentage != 10 {
		t.Fatalf("TierDiscountPercentage = %v, want 10", b.TierDiscountPercentage)
	}
}

func TestPricePreservesItemOrder(t *testing.T) {
	items := movie.ClassifyAll([]string{"Random Movie", "Back to the Future 2", "Back to the Future 1"})
	cart := pricing.Price(items)
	for i, item := range cart.Items {
		if item != items[i] {
			t.Fatalf("item %d = %q, want %q", i, item.Title(), items[i].Title())
		}
	}

	items[0] = movie.NewStandard("mutated")
	if cart.Items[0].Title() != "Random Movie" {
		t.Fatal("expected priced cart to own a copy of its items")
	}
}

func TestPartitionIsStable(t *testing.T) {
	items := movie.ClassifyAll([]string{"A", "Back to the Future 3", "B", "Back to the Future 1"})
	promo, standard := pricing.Partition(items)
	if len(promo) != 2 || promo[0].Title() != "Back to the Future 3" || promo[1].Title() != "Back to the Future 1" {
		t.Fatalf("unexpected promotional partition: %v", promo)
	}
	if len(standard) != 2 || standard[0].Title() != "A" || standard[1].Title() != "B" {
		t.Fatalf("unexpected standard partition: %v", standard)
	}
}

func TestDiscountRateFor(t *testing.T) {
	tests := map[int]string{0: "0", 1: "0", 2: "0.1", 3: "0.2", 4: "0.2", 10: "0.2"}
	for unique, want := range tests {
		if got := pricing.DiscountRateFor(unique); !got.Equal(dec(t, want)) {
			t.Errorf("DiscountRateFor(%d) = %s, want %s", unique, got, want)
		}
	}
}

func TestBreakdownEmptyCart(t *testing.T) {
	b := pricing.Price(nil).Breakdown()
	if b != (pricing.Breakdown{}) {
		t.Fatalf("expected zero breakdown, got %+v", b)
	}
}

func TestBreakdownRounding(t *testing.T) {
	cart := pricing.Price(movie.ClassifyAll([]string{"Back to the Future 1", "Back to the Future 2", "Back to the Future 3"}))
	b := cart.Breakdown()
	if b.Total != 36 || b.Subtotal != 45 || b.Discount != 9 {
		t.Fatalf("unexpected totals: %+v", b)
	}
	if b.EffectiveDiscountPercentage != 20 || b.TierDiscountPercentage != 20 {
		t.Fatalf("unexpected percentages: %+v", b)
	}
	if b.DiscountRate != 0.2 {
		t.Fatalf("DiscountRate = %v, want 0.2", b.DiscountRate)
	}
	if b.ItemCount != 3 || b.UniqueEpisodes != 3 {
		t.Fatalf("unexpected counts: %+v", b)
	}
}
