// Package cache stores priced calculation results keyed by a canonical hash
// of the requested titles.
//
// Two backends implement Cache: Memory, a mutex-guarded map with per-entry
// TTL, an optional size bound and a background janitor; and Redis, a thin
// go-redis wrapper with a key prefix. Values are JSON-encoded on write and
// never mutated afterwards. Backend failures are logged and degrade to cache
// misses; they never change a calculation result.
package cache
