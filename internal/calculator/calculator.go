package calculator

import (
	"github.com/shopspring/decimal"

	"dvdshop/internal/cart"
	"dvdshop/internal/input"
	"dvdshop/internal/movie"
	"dvdshop/internal/services"
)

const titlesField = "movieTitles"

// Calculator is the SDK facade. The zero value is ready to use and holds an
// empty cart. Fluent methods return a new Calculator.
type Calculator struct {
	cart cart.Cart
}

// New returns an empty Calculator.
func New() Calculator { return Calculator{} }

// Calculate prices titles in one shot. A nil slice is rejected with an
// InvalidInputError; an empty slice yields zero.
func (c Calculator) Calculate(titles []string) (decimal.Decimal, error) {
	if titles == nil {
		return decimal.Zero, services.NullInput(titlesField)
	}
	return cart.New(input.FromSlice(titles)...).Price().Total, nil
}

// CalculateWithDetails prices titles and returns the full breakdown.
func (c Calculator) CalculateWithDetails(titles []string) (Details, error) {
	if titles == nil {
		return Details{}, services.NullInput(titlesField)
	}
	return DetailsFor(cart.New(input.FromSlice(titles)...).Price()), nil
}

// AddMovie returns a calculator with title appended to its cart.
func (c Calculator) AddMovie(title string) Calculator {
	return Calculator{cart: c.cart.Add(title)}
}

// AddMovies returns a calculator with titles appended in order.
func (c Calculator) AddMovies(titles []string) Calculator {
	return Calculator{cart: c.cart.AddAll(titles)}
}

// RemoveMovie drops the first item whose title matches exactly after trimming.
func (c Calculator) RemoveMovie(title string) Calculator {
	return Calculator{cart: c.cart.Remove(title)}
}

// Reset returns a calculator with an empty cart.
func (c Calculator) Reset() Calculator {
	return Calculator{cart: c.cart.Reset()}
}

// Total prices the accumulated cart.
func (c Calculator) Total() decimal.Decimal {
	return c.cart.Price().Total
}

// CartInfo summarizes the accumulated cart.
func (c Calculator) CartInfo() CartInfo {
	return cartInfoFor(c.cart.Price().Breakdown())
}

// Movies returns the accumulated items in insertion order.
func (c Calculator) Movies() []movie.Record {
	return c.cart.Items()
}
