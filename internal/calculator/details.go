package calculator

import (
	"dvdshop/internal/movie"
	"dvdshop/internal/pricing"
)

// Item is the presentation view of a single priced title.
type Item struct {
	Title     string
	Kind      movie.Kind
	BasePrice float64
	// Episode is zero for standard titles.
	Episode int
}

// Details is a rounded price breakdown plus the items in input order.
type Details struct {
	pricing.Breakdown
	Items []Item
}

// CartInfo summarizes a cart without listing its items.
type CartInfo struct {
	Total          float64
	Subtotal       float64
	Discount       float64
	ItemCount      int
	UniqueEpisodes int
}

// DetailsFor builds Details from a priced cart.
func DetailsFor(priced pricing.PricedCart) Details {
	return Details{
		Breakdown: priced.Breakdown(),
		Items:     ItemsFor(priced.Items),
	}
}

// ItemsFor converts records into presentation items, keeping order.
func ItemsFor(records []movie.Record) []Item {
	items := make([]Item, len(records))
	for i, record := range records {
		episode, _ := record.Episode()
		items[i] = Item{
			Title:     record.Title(),
			Kind:      record.Kind(),
			BasePrice: record.BasePrice().InexactFloat64(),
			Episode:   episode,
		}
	}
	return items
}

func cartInfoFor(b pricing.Breakdown) CartInfo {
	return CartInfo{
		Total:          b.Total,
		Subtotal:       b.Subtotal,
		Discount:       b.Discount,
		ItemCount:      b.ItemCount,
		UniqueEpisodes: b.UniqueEpisodes,
	}
}
