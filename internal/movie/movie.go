package movie

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind distinguishes discount-eligible titles from everything else.
type Kind int

const (
	KindStandard Kind = iota
	KindPromotional
)

// Wire names for Kind, shared with the HTTP API.
const (
	kindNamePromotional = "BACK_TO_THE_FUTURE"
	kindNameStandard    = "OTHER"
)

func (k Kind) String() string {
	if k == KindPromotional {
		return kindNamePromotional
	}
	return kindNameStandard
}

// ParseKind maps a wire name back to a Kind.
func ParseKind(value string) (Kind, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case kindNamePromotional:
		return KindPromotional, true
	case kindNameStandard:
		return KindStandard, true
	default:
		return KindStandard, false
	}
}

var (
	promotionalPrice = decimal.NewFromInt(15)
	standardPrice    = decimal.NewFromInt(20)
)

// Record is an immutable classified title.
type Record struct {
	title   string
	kind    Kind
	episode int
}

// NewPromotional builds a promotional record directly, bypassing title parsing.
func NewPromotional(title string, episode int) Record {
	return Record{title: strings.TrimSpace(title), kind: KindPromotional, episode: episode}
}

// NewStandard builds a standard record directly.
func NewStandard(title string) Record {
	return Record{title: strings.TrimSpace(title), kind: KindStandard}
}

// Title returns the trimmed title with its original casing.
func (r Record) Title() string { return r.title }

// Kind returns the classification.
func (r Record) Kind() Kind { return r.kind }

// Episode returns the installment number and whether one is defined. It is
// defined exactly when the record is promotional.
func (r Record) Episode() (int, bool) {
	if r.kind != KindPromotional {
		return 0, false
	}
	return r.episode, true
}

// IsPromotional reports whether the record belongs to the promotional franchise.
func (r Record) IsPromotional() bool { return r.kind == KindPromotional }

// BasePrice is the undiscounted unit price for the record's kind.
func (r Record) BasePrice() decimal.Decimal {
	if r.kind == KindPromotional {
		return promotionalPrice
	}
	return standardPrice
}

// SameEpisode reports whether both records are promotional and share an episode.
func (r Record) SameEpisode(other Record) bool {
	if !r.IsPromotional() || !other.IsPromotional() {
		return false
	}
	return r.episode == other.episode
}

const franchisePhrase = "back to the future"

var numberedPattern = regexp.MustCompile(`(?i)back to the future[\s\p{Zs}]+(\d+)`)

// Classify converts a title into a Record. It never fails: unrecognised titles
// are standard. Surrounding whitespace is trimmed; callers must drop blank
// titles before calling.
func Classify(title string) Record {
	trimmed := strings.TrimSpace(title)

	if match := numberedPattern.FindStringSubmatch(trimmed); match != nil {
		if episode, err := strconv.Atoi(match[1]); err == nil {
			return Record{title: trimmed, kind: KindPromotional, episode: episode}
		}
		// digit runs too long for an int fall through to the phrase rule
	}

	normalized := strings.ToLower(trimmed)
	idx := strings.Index(normalized, franchisePhrase)
	if idx < 0 {
		return Record{title: trimmed, kind: KindStandard}
	}

	// " iii" contains " ii", so the longer numeral is checked first.
	rest := normalized[idx+len(franchisePhrase):]
	episode := 1
	switch {
	case strings.Contains(rest, " iii"):
		episode = 3
	case strings.Contains(rest, " ii"):
		episode = 2
	}
	return Record{title: trimmed, kind: KindPromotional, episode: episode}
}

// ClassifyAll classifies each title in order.
func ClassifyAll(titles []string) []Record {
	records := make([]Record, 0, len(titles))
	for _, title := range titles {
		records = append(records, Classify(title))
	}
	return records
}
