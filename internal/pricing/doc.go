// Package pricing aggregates classified titles into a priced cart.
//
// Price is a pure fold over the records: promotional titles cost 15, standard
// titles 20, and the promotional subtotal is discounted by a tier keyed on the
// number of distinct promotional episodes (two episodes 10%, three or more
// 20%). Standard titles are never discounted.
//
// All amounts use exact decimal arithmetic. Rounding happens only in
// Breakdown, which produces the figures shown to API and CLI callers.
package pricing
