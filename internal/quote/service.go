package quote

import (
	"context"
	"time"

	"github.com/adinKent/pharaoh/internal/models"
)

// Service implements the command layer's QuoteProvider, FlowProvider and
// NameResolver interfaces on top of Yahoo Finance, TWSE/TPEx and MOPS.
type Service struct {
	yahoo *yahooClient
	twse  *twseClient
	mops  *mopsResolver
}

func NewService(timeout time.Duration) *Service {
	return &Service{
		yahoo: newYahooClient(timeout),
		twse:  newTWSEClient(timeout),
		mops:  newMOPSResolver(timeout),
	}
}

// DomesticEquityQuote fetches a Taiwan symbol, trying the listed market
// first and falling back to OTC, and swaps in the exchange's Chinese short
// name when it has one.
func (s *Service) DomesticEquityQuote(ctx context.Context, symbol, period string) (*models.Quote, error) {
	market := "TW"
	q, err := s.yahoo.quote(ctx, symbol+".TW", period)
	if err != nil || q == nil {
		market = "TWO"
		q, err = s.yahoo.quote(ctx, symbol+".TWO", period)
	}
	if err != nil || q == nil {
		return nil, err
	}

	q.Symbol = symbol // drop the Yahoo market suffix in replies
	if q.Currency == "" {
		q.Currency = "TWD"
	}
	if name := s.twse.StockName(ctx, symbol, market); name != "" {
		q.Name = name
	}
	return q, nil
}

func (s *Service) ForeignEquityQuote(ctx context.Context, symbol, period string) (*models.Quote, error) {
	return s.yahoo.quote(ctx, symbol, period)
}

func (s *Service) IndexQuote(ctx context.Context, symbol, period string) (*models.Quote, error) {
	return s.yahoo.quote(ctx, symbol, period)
}

func (s *Service) FutureQuote(ctx context.Context, symbol, period string) (*models.Quote, error) {
	return s.yahoo.quote(ctx, symbol, period)
}

func (s *Service) SymbolFromCompanyName(ctx context.Context, name string) (string, error) {
	return s.mops.SymbolFromCompanyName(ctx, name)
}

func (s *Service) SymbolFlow(ctx context.Context, symbol string) (*models.InstitutionalFlow, error) {
	return s.twse.SymbolFlow(ctx, symbol)
}

func (s *Service) MarketFlow(ctx context.Context) ([]models.MarketFlowRow, error) {
	return s.twse.MarketFlow(ctx)
}
