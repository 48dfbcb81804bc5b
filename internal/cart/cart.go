// Package cart holds the immutable accumulator used by the SDK and the CLI
// to build up a list of titles before pricing.
package cart

import (
	"strings"

	"dvdshop/internal/movie"
	"dvdshop/internal/pricing"
)

// Cart is an ordered, immutable list of classified titles. The zero value is
// an empty cart. Every mutator returns a new Cart and leaves the receiver
// untouched.
type Cart struct {
	items []movie.Record
}

// New builds a cart from raw titles. Blank titles are skipped.
func New(titles ...string) Cart {
	return Cart{}.AddAll(titles)
}

// FromRecords builds a cart from already classified records.
func FromRecords(records []movie.Record) Cart {
	return Cart{items: append([]movie.Record(nil), records...)}
}

// Add appends a single title. Blank titles are ignored.
func (c Cart) Add(title string) Cart {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return c
	}
	next := c.clone(len(c.items) + 1)
	next.items = append(next.items, movie.Classify(trimmed))
	return next
}

// AddAll appends titles in order, skipping blanks.
func (c Cart) AddAll(titles []string) Cart {
	next := c.clone(len(c.items) + len(titles))
	for _, title := range titles {
		trimmed := strings.TrimSpace(title)
		if trimmed == "" {
			continue
		}
		next.items = append(next.items, movie.Classify(trimmed))
	}
	return next
}

// Remove drops the first item whose title equals the trimmed argument. The
// comparison is exact; a missing title returns the cart unchanged.
func (c Cart) Remove(title string) Cart {
	trimmed := strings.TrimSpace(title)
	for i, item := range c.items {
		if item.Title() != trimmed {
			continue
		}
		items := make([]movie.Record, 0, len(c.items)-1)
		items = append(items, c.items[:i]...)
		items = append(items, c.items[i+1:]...)
		return Cart{items: items}
	}
	return c
}

// Reset returns an empty cart.
func (c Cart) Reset() Cart { return Cart{} }

// Len reports the number of items.
func (c Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart holds no items.
func (c Cart) IsEmpty() bool { return len(c.items) == 0 }

// Items returns a copy of the cart contents in insertion order.
func (c Cart) Items() []movie.Record {
	return append([]movie.Record(nil), c.items...)
}

// Titles returns the item titles in insertion order.
func (c Cart) Titles() []string {
	titles := make([]string, len(c.items))
	for i, item := range c.items {
		titles[i] = item.Title()
	}
	return titles
}

// Price folds the cart through the pricing engine.
func (c Cart) Price() pricing.PricedCart {
	return pricing.Price(c.items)
}

func (c Cart) clone(capacity int) Cart {
	if capacity < len(c.items) {
		capacity = len(c.items)
	}
	items := make([]movie.Record, len(c.items), capacity)
	copy(items, c.items)
	return Cart{items: items}
}
