// Package quote implements the external data providers the command engine
// calls into: Yahoo Finance quotes, TWSE names and institutional flows, the
// MOPS company-name resolver, and the Gemini narrative generator. Every
// fetch takes a context and returns (nil, err) on failure; the command layer
// logs and degrades to omission.
package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/adinKent/pharaoh/internal/format"
	"github.com/adinKent/pharaoh/internal/models"
)

const (
	yahooChartURL   = "https://query1.finance.yahoo.com/v8/finance/chart/%s?range=%s&interval=%s"
	yahooSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s?modules=summaryDetail"
)

// Browser-mimicking headers; the quote endpoints reject default Go clients.
const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const defaultHTTPTimeout = 10 * time.Second

// periodAnalysis mirrors the command layer's analysis period; a fetch with
// this period also pulls the valuation modules.
const periodAnalysis = "1y"

type yahooClient struct {
	httpClient *http.Client
}

func newYahooClient(timeout time.Duration) *yahooClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &yahooClient{httpClient: &http.Client{Timeout: timeout}}
}

func (c *yahooClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// interval picks the sampling interval for a range: minute bars for the
// intraday chart, daily bars otherwise.
func intervalFor(period string) string {
	if period == "1d" {
		return "1m"
	}
	return "1d"
}

// quote fetches one Yahoo symbol's snapshot plus its trailing close history.
// Returns (nil, nil) when the payload carries no price, which callers treat
// as "no data".
func (c *yahooClient) quote(ctx context.Context, symbol, period string) (*models.Quote, error) {
	if period == "" {
		period = "2d"
	}
	body, err := c.get(ctx, fmt.Sprintf(yahooChartURL, symbol, period, intervalFor(period)))
	if err != nil {
		return nil, err
	}

	q, err := parseChartPayload(symbol, body)
	if err != nil || q == nil {
		return nil, err
	}
	if period == periodAnalysis {
		c.attachValuation(ctx, symbol, q)
	}
	return q, nil
}

// parseChartPayload extracts a quote from a Yahoo v8 chart response.
func parseChartPayload(symbol string, body []byte) (*models.Quote, error) {
	root := gjson.ParseBytes(body)
	if errDesc := root.Get("chart.error.description"); errDesc.Exists() && errDesc.String() != "" {
		return nil, fmt.Errorf("yahoo chart error for %s: %s", symbol, errDesc.String())
	}
	meta := root.Get("chart.result.0.meta")
	if !meta.Exists() {
		return nil, nil
	}

	price := meta.Get("regularMarketPrice")
	if !price.Exists() {
		return nil, nil
	}
	prev := meta.Get("regularMarketPreviousClose")
	if !prev.Exists() {
		prev = meta.Get("chartPreviousClose")
	}

	name := meta.Get("shortName").String()
	if name == "" {
		name = meta.Get("longName").String()
	}
	if name == "" {
		name = "Stock " + symbol
	}

	q := &models.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         format.Round2(price.Float()),
		PreviousClose: format.Round2(prev.Float()),
		Currency:      meta.Get("currency").String(),
	}
	q.Direction = models.DirectionOf(q.Price, q.PreviousClose)

	for _, close := range root.Get("chart.result.0.indicators.quote.0.close").Array() {
		if close.Type == gjson.Null {
			continue // halted bars come back null
		}
		q.History = append(q.History, close.Float())
	}
	return q, nil
}

// attachValuation adds dividend yield and trailing P/E from the summary
// endpoint. Best effort: a failure leaves the fields zero and the formatter
// drops them.
func (c *yahooClient) attachValuation(ctx context.Context, symbol string, q *models.Quote) {
	body, err := c.get(ctx, fmt.Sprintf(yahooSummaryURL, symbol))
	if err != nil {
		return
	}
	applySummaryPayload(q, body)
}

// applySummaryPayload copies valuation fields out of a quoteSummary
// response.
func applySummaryPayload(q *models.Quote, body []byte) {
	detail := gjson.GetBytes(body, "quoteSummary.result.0.summaryDetail")
	if !detail.Exists() {
		return
	}
	if v := detail.Get("dividendYield.raw"); v.Exists() {
		q.DividendYieldPct = v.Float() * 100
	}
	if v := detail.Get("trailingPE.raw"); v.Exists() {
		q.TrailingPE = v.Float()
	}
}
