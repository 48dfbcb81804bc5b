package input

import (
	"reflect"
	"testing"
)

func TestParseLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "only blanks", text: "\n  \n\t\n", want: []string{}},
		{name: "trims", text: "  Back to the Future 1 \nRandom Movie", want: []string{"Back to the Future 1", "Random Movie"}},
		{name: "crlf", text: "A\r\nB\r\n", want: []string{"A", "B"}},
		{name: "keeps duplicates", text: "A\nA\n", want: []string{"A", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLines(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseLines(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFromSlice(t *testing.T) {
	got := FromSlice([]string{" A ", "", "   ", "B"})
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("FromSlice = %#v", got)
	}
	if got := FromSlice(nil); got == nil || len(got) != 0 {
		t.Fatalf("FromSlice(nil) = %#v, want empty non-nil", got)
	}
}

func TestParsers(t *testing.T) {
	var p Parser = LineParser{}
	if got := p.Parse("A\nB"); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("LineParser = %#v", got)
	}
	p = SliceParser{Titles: []string{" C ", ""}}
	if got := p.Parse("ignored"); !reflect.DeepEqual(got, []string{"C"}) {
		t.Fatalf("SliceParser = %#v", got)
	}
}
