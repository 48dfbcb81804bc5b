// Package services defines shared utilities consumed by the calculator, the
// HTTP server and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request identifiers and operation names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that let transports map
//     failures to consistent responses (client error vs server error).
//   - InvalidInputError, the tagged error raised when caller input cannot be
//     priced.
package services
