// Package main hosts the dvdshop CLI entrypoint and command graph.
//
// The Cobra-based command tree prices carts read from files, pipes or the
// terminal, runs the pricing API in the foreground, reports readiness and
// operates the configured result cache. Configuration resolution and
// logger setup live in commandContext so subcommands stay declarative.
package main
