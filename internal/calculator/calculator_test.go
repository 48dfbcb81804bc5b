package calculator_test

import (
	"errors"
	"testing"

	"dvdshop/internal/calculator"
	"dvdshop/internal/movie"
	"dvdshop/internal/services"
)

func TestCalculateScenarios(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{"empty", []string{}, "0"},
		{"one", []string{"Back to the Future"}, "15"},
		{"two", []string{"Back to the Future", "Back to the Future II"}, "27"},
		{"three", []string{"Back to the Future", "Back to the Future II", "Back to the Future III"}, "36"},
		{"duplicate", []string{"Back to the Future 1", "Back to the Future 2", "Back to the Future 3", "Back to the Future 2"}, "48"},
		{"mixed", []string{"Back to the Future 1", "Back to the Future 2", "Back to the Future 3", "La chèvre"}, "56"},
		{"blanks", []string{"", "  ", "Back to the Future"}, "15"},
	}
	calc := calculator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Calculate(tt.titles)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("Calculate = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCalculateNilRejected(t *testing.T) {
	calc := calculator.New()
	if _, err := calc.Calculate(nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err := calc.CalculateWithDetails(nil)
	var invalid *services.InvalidInputError
	if !errors.As(err, &invalid) || invalid.Field != "movieTitles" {
		t.Fatalf("expected movieTitles invalid input, got %v", err)
	}
}

func TestCalculateWithDetails(t *testing.T) {
	details, err := calculator.New().CalculateWithDetails([]string{
		"Back to the Future 1", "Back to the Future 2", "Random", "Random",
	})
	if err != nil {
		t.Fatalf("CalculateWithDetails: %v", err)
	}
	if details.Total != 67 || details.Subtotal != 70 || details.Discount != 3 {
		t.Fatalf("unexpected totals: %+v", details.Breakdown)
	}
	if details.TierDiscountPercentage != 10 || details.EffectiveDiscountPercentage != 4.3 {
		t.Fatalf("unexpected percentages: %+v", details.Breakdown)
	}
	if details.ItemCount != 4 || details.UniqueEpisodes != 2 {
		t.Fatalf("unexpected counts: %+v", details.Breakdown)
	}
	if len(details.Items) != 4 {
		t.Fatalf("items = %d, want 4", len(details.Items))
	}
	first := details.Items[0]
	if first.Kind != movie.KindPromotional || first.Episode != 1 || first.BasePrice != 15 {
		t.Fatalf("unexpected first item: %+v", first)
	}
	last := details.Items[3]
	if last.Kind != movie.KindStandard || last.Episode != 0 || last.BasePrice != 20 {
		t.Fatalf("unexpected last item: %+v", last)
	}
}

func TestFluentOperations(t *testing.T) {
	base := calculator.New()
	calc := base.
		AddMovie("Back to the Future 1").
		AddMovie("Back to the Future 2").
		AddMovies([]string{"Back to the Future 3", "  "})

	if got := calc.Total().String(); got != "36" {
		t.Fatalf("total = %s, want 36", got)
	}
	if !base.Total().IsZero() {
		t.Fatal("fluent operation mutated the receiver")
	}

	removed := calc.RemoveMovie(" Back to the Future 2 ")
	if got := removed.Total().String(); got != "27" {
		t.Fatalf("total after remove = %s, want 27", got)
	}
	if len(removed.Movies()) != 2 {
		t.Fatalf("movies = %d, want 2", len(removed.Movies()))
	}

	info := calc.CartInfo()
	if info.Total != 36 || info.Subtotal != 45 || info.Discount != 9 || info.ItemCount != 3 || info.UniqueEpisodes != 3 {
		t.Fatalf("unexpected cart info: %+v", info)
	}

	if !calc.Reset().Total().IsZero() {
		t.Fatal("expected zero total after reset")
	}
}

func TestRemoveMovieMissingIsNoop(t *testing.T) {
	calc := calculator.New().AddMovie("A")
	if got := len(calc.RemoveMovie("B").Movies()); got != 1 {
		t.Fatalf("movies = %d, want 1", got)
	}
}
