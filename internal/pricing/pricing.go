package pricing

import (
	"github.com/shopspring/decimal"

	"dvdshop/internal/movie"
)

var (
	tierTwoRate   = decimal.RequireFromString("0.10")
	tierThreeRate = decimal.RequireFromString("0.20")
	hundred       = decimal.NewFromInt(100)
)

// PricedCart is the result of pricing an ordered list of records.
type PricedCart struct {
	Items []movie.Record

	PromotionalSubtotal decimal.Decimal
	StandardSubtotal    decimal.Decimal
	Subtotal            decimal.Decimal
	PromotionalTotal    decimal.Decimal
	Total               decimal.Decimal
	DiscountAmount      decimal.Decimal

	// DiscountRate is the tier fraction applied to the promotional subtotal.
	DiscountRate              decimal.Decimal
	UniquePromotionalEpisodes int
}

// DiscountRateFor returns the tier rate for a count of distinct episodes.
func DiscountRateFor(uniqueEpisodes int) decimal.Decimal {
	switch {
	case uniqueEpisodes >= 3:
		return tierThreeRate
	case uniqueEpisodes == 2:
		return tierTwoRate
	default:
		return decimal.Zero
	}
}

// Price computes subtotal, discount and total for items. The input slice is
// copied; an empty or nil slice yields an all-zero cart.
func Price(items []movie.Record) PricedCart {
	promotional, standard := Partition(items)

	unique := CountUniqueEpisodes(promotional)
	rate := DiscountRateFor(unique)
	promoSubtotal := sumBasePrices(promotional)
	standardSubtotal := sumBasePrices(standard)
	subtotal := promoSubtotal.Add(standardSubtotal)
	promoTotal := promoSubtotal.Mul(decimal.NewFromInt(1).Sub(rate))
	total := promoTotal.Add(standardSubtotal)

	return PricedCart{
		Items:                     append([]movie.Record(nil), items...),
		PromotionalSubtotal:       promoSubtotal,
		StandardSubtotal:          standardSubtotal,
		Subtotal:                  subtotal,
		PromotionalTotal:          promoTotal,
		Total:                     total,
		DiscountAmount:            subtotal.Sub(total),
		DiscountRate:              rate,
		UniquePromotionalEpisodes: unique,
	}
}

// Partition splits items into promotional and standard subsets, keeping the
// relative order within each.
func Partition(items []movie.Record) (promotional, standard []movie.Record) {
	for _, item := range items {
		if item.IsPromotional() {
			promotional = append(promotional, item)
		} else {
			standard = append(standard, item)
		}
	}
	return promotional, standard
}

// CountUniqueEpisodes counts distinct episodes among promotional records.
// Standard records are ignored.
func CountUniqueEpisodes(items []movie.Record) int {
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if episode, ok := item.Episode(); ok {
			seen[episode] = struct{}{}
		}
	}
	return len(seen)
}

func sumBasePrices(items []movie.Record) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.BasePrice())
	}
	return sum
}

// ItemCount returns the number of priced items.
func (c PricedCart) ItemCount() int { return len(c.Items) }

// TierDiscountPercentage is DiscountRate expressed as a percentage (0, 10 or 20).
func (c PricedCart) TierDiscountPercentage() decimal.Decimal {
	return c.DiscountRate.Mul(hundred)
}

// EffectiveDiscountPercentage is the share of the whole subtotal removed by
// the discount. Standard items dilute it below the tier percentage. An empty
// cart yields zero.
func (c PricedCart) EffectiveDiscountPercentage() decimal.Decimal {
	if c.Subtotal.IsZero() {
		return decimal.Zero
	}
	return c.DiscountAmount.Div(c.Subtotal).Mul(hundred)
}
