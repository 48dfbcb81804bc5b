// Package input normalizes raw caller input into the list of titles fed to
// the classifier.
package input

import "strings"

// Parser turns raw input into normalized titles.
type Parser interface {
	Parse(raw string) []string
}

// ParseLines splits text on newlines, trims each line and drops blanks.
// Carriage returns are stripped by the trim, so CRLF input is accepted.
func ParseLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return FromSlice(strings.Split(text, "\n"))
}

// FromSlice trims each title and drops blanks. The result is always a fresh
// non-nil slice.
func FromSlice(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LineParser parses newline separated text.
type LineParser struct{}

// Parse implements Parser.
func (LineParser) Parse(raw string) []string { return ParseLines(raw) }

// SliceParser wraps a fixed list of titles so services that take a Parser
// can be driven from an array. The raw argument is ignored.
type SliceParser struct {
	Titles []string
}

// Parse implements Parser.
func (p SliceParser) Parse(string) []string { return FromSlice(p.Titles) }
