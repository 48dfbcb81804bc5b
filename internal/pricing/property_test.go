package pricing_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"dvdshop/internal/movie"
	"dvdshop/internal/pricing"
)

func episodeCart(episodes []int, standard int) []movie.Record {
	items := make([]movie.Record, 0, len(episodes)+standard)
	for _, ep := range episodes {
		items = append(items, movie.NewPromotional(fmt.Sprintf("Back to the Future %d", ep), ep))
	}
	for i := 0; i < standard; i++ {
		items = append(items, movie.NewStandard(fmt.Sprintf("Standard %d", i)))
	}
	return items
}

func TestPricingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("copies of one episode are never discounted", prop.ForAll(
		func(episode, copies, standard int) bool {
			episodes := make([]int, copies)
			for i := range episodes {
				episodes[i] = episode
			}
			cart := pricing.Price(episodeCart(episodes, standard))
			want := decimal.NewFromInt(int64(15*copies + 20*standard))
			return cart.DiscountRate.IsZero() && cart.Total.Equal(want)
		},
		gen.IntRange(1, 9),
		gen.IntRange(1, 20),
		gen.IntRange(0, 5),
	))

	properties.Property("two distinct episodes earn ten percent on promotional items", prop.ForAll(
		func(first, extra, standard int) bool {
			episodes := []int{1, 2}
			for i := 0; i < extra; i++ {
				episodes = append(episodes, 1+(first+i)%2)
			}
			cart := pricing.Price(episodeCart(episodes, standard))
			promo := decimal.NewFromInt(int64(15 * len(episodes)))
			want := promo.Mul(decimal.RequireFromString("0.9")).Add(decimal.NewFromInt(int64(20 * standard)))
			return cart.UniquePromotionalEpisodes == 2 && cart.Total.Equal(want)
		},
		gen.IntRange(0, 1),
		gen.IntRange(0, 10),
		gen.IntRange(0, 5),
	))

	properties.Property("three or more distinct episodes earn twenty percent", prop.ForAll(
		func(distinct, repeats, standard int) bool {
			var episodes []int
			for ep := 1; ep <= distinct; ep++ {
				episodes = append(episodes, ep)
			}
			for i := 0; i < repeats; i++ {
				episodes = append(episodes, 1+i%distinct)
			}
			cart := pricing.Price(episodeCart(episodes, standard))
			promo := decimal.NewFromInt(int64(15 * len(episodes)))
			want := promo.Mul(decimal.RequireFromString("0.8")).Add(decimal.NewFromInt(int64(20 * standard)))
			return cart.UniquePromotionalEpisodes == distinct && cart.Total.Equal(want)
		},
		gen.IntRange(3, 8),
		gen.IntRange(0, 10),
		gen.IntRange(0, 5),
	))

	properties.Property("discount never exceeds twenty percent of the subtotal", prop.ForAll(
		func(episodes []int, standard int) bool {
			cart := pricing.Price(episodeCart(episodes, standard))
			if cart.Total.GreaterThan(cart.Subtotal) || cart.Total.IsNegative() {
				return false
			}
			return cart.EffectiveDiscountPercentage().LessThanOrEqual(decimal.NewFromInt(20))
		},
		gen.SliceOf(gen.IntRange(1, 6)),
		gen.IntRange(0, 6),
	))

	properties.Property("order of items does not change the total", prop.ForAll(
		func(episodes []int, standard int) bool {
			items := episodeCart(episodes, standard)
			reversed := make([]movie.Record, len(items))
			for i, item := range items {
				reversed[len(items)-1-i] = item
			}
			return pricing.Price(items).Total.Equal(pricing.Price(reversed).Total)
		},
		gen.SliceOf(gen.IntRange(1, 4)),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
