package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"dvdshop/internal/api"
	"dvdshop/internal/calculator"
	"dvdshop/internal/input"
	"dvdshop/internal/movie"
)

const interactiveBanner = "DVD Shop Price Calculator\n" +
	"=========================\n" +
	"Enter movie titles (one per line).\n" +
	"Press Ctrl+D (Unix) or Ctrl+Z (Windows) when done.\n\n"

func newCalcCommand(ctx *commandContext) *cobra.Command {
	var details bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc [file|-]",
		Short: "Price a cart of movie titles, one per line",
		Long: "Price a cart of movie titles, one per line.\n\n" +
			"Titles are read from the named file, from piped stdin, or interactively\n" +
			"from the terminal until end of input. Pass - to force reading stdin.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: skipConfigLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readCalcInput(cmd, args)
			if err != nil {
				return err
			}

			service := calculator.NewService(input.LineParser{}, ctx.cliLogger())
			switch {
			case asJSON:
				return writeJSON(cmd, api.FromDetails(service.RunWithDetails(raw)))
			case details:
				_, err := fmt.Fprintln(cmd.OutOrStdout(), renderCalcDetails(service.RunWithDetails(raw)))
				return err
			default:
				return service.RunAndDisplay(cmd.OutOrStdout(), raw)
			}
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Show a per-title breakdown table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the breakdown as JSON")
	cmd.MarkFlagsMutuallyExclusive("details", "json")
	return cmd
}

func readCalcInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	stdin := cmd.InOrStdin()
	if !isTerminal(stdin) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), interactiveBanner); err != nil {
		return "", err
	}
	return readInteractive(stdin)
}

func readInteractive(r io.Reader) (string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderCalcDetails(details calculator.Details) string {
	rows := make([][]string, 0, len(details.Items))
	for _, item := range details.Items {
		episode := "-"
		if item.Kind == movie.KindPromotional {
			episode = strconv.Itoa(item.Episode)
		}
		rows = append(rows, []string{
			item.Title,
			kindLabel(item.Kind),
			episode,
			formatFloat(item.BasePrice),
		})
	}

	var b strings.Builder
	if len(rows) > 0 {
		b.WriteString(renderTable(
			[]string{"Title", "Type", "Episode", "Price"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
		))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Items:           %d\n", details.ItemCount)
	fmt.Fprintf(&b, "Unique episodes: %d\n", details.UniqueEpisodes)
	fmt.Fprintf(&b, "Subtotal:        %s\n", formatFloat(details.Subtotal))
	fmt.Fprintf(&b, "Discount:        %s (%s%%)\n", formatFloat(details.Discount), strconv.FormatFloat(details.EffectiveDiscountPercentage, 'f', -1, 64))
	fmt.Fprintf(&b, "Total:           %s", formatFloat(details.Total))
	return b.String()
}

// kindLabel turns BACK_TO_THE_FUTURE into "Back To The Future".
func kindLabel(kind movie.Kind) string {
	words := strings.ReplaceAll(strings.ToLower(kind.String()), "_", " ")
	return cases.Title(language.Und).String(words)
}

func formatFloat(value float64) string {
	return calculator.FormatAmount(decimal.NewFromFloat(value))
}
