package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/gowebpki/jcs"

	"dvdshop/internal/input"
)

// KeyPrefix namespaces calculation entries and carries the key schema version.
const KeyPrefix = "calculate:v1:"

// Key derives the cache key for a list of titles. Titles are trimmed, blanks
// dropped and the remainder sorted, so two requests for the same multiset of
// titles share an entry regardless of order.
func Key(titles []string) (string, error) {
	normalized := input.FromSlice(titles)
	slices.Sort(normalized)

	raw, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("encode titles: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize titles: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return KeyPrefix + hex.EncodeToString(sum[:]), nil
}
