// Package calculator is the entry point used by the CLI, the HTTP server and
// library callers to price a list of DVD titles.
//
// Two faces are exposed:
//   - Service runs a raw input through an input.Parser, the classifier and
//     the pricing engine, and can write the total to any io.Writer.
//   - Calculator is an immutable SDK facade with one-shot helpers
//     (Calculate, CalculateWithDetails) and fluent cart operations
//     (AddMovie, RemoveMovie, Reset).
//
// Both produce Details, the rounded breakdown plus per-item views in input
// order.
package calculator
