package pricing

// Breakdown holds the rounded figures presented to callers.
type Breakdown struct {
	Total                       float64
	Subtotal                    float64
	Discount                    float64
	DiscountRate                float64
	TierDiscountPercentage      float64
	EffectiveDiscountPercentage float64
	ItemCount                   int
	UniqueEpisodes              int
}

// Breakdown rounds the cart for presentation: totals to whole units, the
// discount to cents and the effective percentage to one decimal place.
func (c PricedCart) Breakdown() Breakdown {
	return Breakdown{
		Total:                       c.Total.Round(0).InexactFloat64(),
		Subtotal:                    c.Subtotal.Round(0).InexactFloat64(),
		Discount:                    c.DiscountAmount.Round(2).InexactFloat64(),
		DiscountRate:                c.DiscountRate.InexactFloat64(),
		TierDiscountPercentage:      c.TierDiscountPercentage().Round(1).InexactFloat64(),
		EffectiveDiscountPercentage: c.EffectiveDiscountPercentage().Round(1).InexactFloat64(),
		ItemCount:                   c.ItemCount(),
		UniqueEpisodes:              c.UniquePromotionalEpisodes,
	}
}
