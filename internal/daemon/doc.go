// Package daemon runs the pricing HTTP API as a long-lived process.
//
// It wires configuration, the result cache and the calculator into a single
// lifecycle with flock-based locking so only one server runs per state
// directory. Requests pass through a fixed middleware chain (request ID,
// access log, panic recovery, security headers, CORS, rate limiting,
// compression, bearer auth) before reaching the router.
//
// Keep pricing rules out of this package: handlers decode, delegate to the
// calculator and encode.
package daemon
