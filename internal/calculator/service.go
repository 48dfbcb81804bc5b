package calculator

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"dvdshop/internal/cart"
	"dvdshop/internal/input"
	"dvdshop/internal/logging"
	"dvdshop/internal/pricing"
)

// Service prices raw input read through a Parser.
type Service struct {
	parser input.Parser
	logger *slog.Logger
}

// NewService builds a Service. A nil parser defaults to input.LineParser and
// a nil logger discards output.
func NewService(parser input.Parser, logger *slog.Logger) *Service {
	if parser == nil {
		parser = input.LineParser{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		parser: parser,
		logger: logging.NewComponentLogger(logger, "calculator"),
	}
}

// Price parses raw input and prices the resulting titles.
func (s *Service) Price(raw string) pricing.PricedCart {
	titles := s.parser.Parse(raw)
	priced := cart.New(titles...).Price()
	s.logger.Debug("cart priced",
		logging.Int("item_count", priced.ItemCount()),
		logging.Int("unique_episodes", priced.UniquePromotionalEpisodes),
		logging.String("total", priced.Total.String()),
	)
	return priced
}

// Run returns the discounted total for raw input.
func (s *Service) Run(raw string) decimal.Decimal {
	return s.Price(raw).Total
}

// RunWithDetails returns the full breakdown for raw input.
func (s *Service) RunWithDetails(raw string) Details {
	return DetailsFor(s.Price(raw))
}

// RunAndDisplay writes the formatted total for raw input to w, followed by a
// newline.
func (s *Service) RunAndDisplay(w io.Writer, raw string) error {
	if _, err := fmt.Fprintln(w, FormatAmount(s.Run(raw))); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	return nil
}
