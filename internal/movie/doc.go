// Package movie turns free-text DVD titles into typed records.
//
// Classify is the only entry point. It recognises titles from the promotional
// "Back to the Future" franchise and extracts the episode number, either from
// trailing digits ("Back to the Future 2") or from a roman numeral suffix
// ("Back to the Future II"). Anything else is a standard title.
//
// Matching is substring based and case-insensitive. Titles that merely contain
// the franchise phrase are treated as promotional; callers rely on that
// heuristic staying stable, so do not tighten it.
package movie
