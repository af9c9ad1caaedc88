package quote

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/adinKent/pharaoh/internal/models"
)

const (
	twseCodeQueryURL  = "https://www.twse.com.tw/rwd/zh/company/codeQuery?STK_NO=%s"
	tpexStockInfoURL  = "https://info.tpex.org.tw/api/stkInfo?query=%s"
	tpexETFInfoURL    = "https://info.tpex.org.tw/api/etfProduct?query=%s"
	twseSymbolFlowURL = "https://www.twse.com.tw/fund/T86?response=csv&date=%s&selectType=ALLBUT0999"
	twseMarketFlowURL = "https://www.twse.com.tw/rwd/zh/fund/BFI82U?response=json&dayDate=%s&type=day"
)

// How many calendar days to walk back looking for the latest trading day.
const maxTradingDayLookback = 5

const twIndexName = "台灣加權指數"

type twseClient struct {
	httpClient *http.Client
	now        func() time.Time
}

func newTWSEClient(timeout time.Duration) *twseClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &twseClient{
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (c *twseClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}

// StockName resolves a domestic symbol's Chinese short name. market is "TW"
// for listed stocks and "TWO" for OTC; the index pseudo-symbol has a fixed
// name.
func (c *twseClient) StockName(ctx context.Context, symbol, market string) string {
	if symbol == "^TWII" {
		return twIndexName
	}
	switch market {
	case "TW":
		return c.nameFromTWSE(ctx, symbol)
	case "TWO":
		return c.nameFromTPEx(ctx, symbol)
	}
	return ""
}

func (c *twseClient) nameFromTWSE(ctx context.Context, symbol string) string {
	resp, err := c.get(ctx, fmt.Sprintf(twseCodeQueryURL, symbol))
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	body, err := readAll(resp)
	if err != nil {
		return ""
	}
	for _, item := range gjson.GetBytes(body, "suggestions").Array() {
		// Suggestions come back as "2330\t台積電".
		fields := strings.SplitN(item.String(), "\t", 2)
		if len(fields) == 2 && fields[0] == symbol {
			return fields[1]
		}
	}
	return ""
}

func (c *twseClient) nameFromTPEx(ctx context.Context, symbol string) string {
	url := fmt.Sprintf(tpexStockInfoURL, symbol)
	if len(symbol) > 4 {
		url = fmt.Sprintf(tpexETFInfoURL, symbol) // long codes are ETFs
	}
	resp, err := c.get(ctx, url)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	body, err := readAll(resp)
	if err != nil {
		return ""
	}
	if name := gjson.GetBytes(body, "info.shortName"); name.Exists() {
		return name.String()
	}
	return gjson.GetBytes(body, "shortName").String()
}

// SymbolFlow fetches one symbol's daily institutional buy/sell volumes from
// the T86 report. The CSV download is Big5-encoded, so the body runs through
// the traditional-Chinese decoder before parsing. Walks back over weekends
// and holidays until a report exists.
func (c *twseClient) SymbolFlow(ctx context.Context, symbol string) (*models.InstitutionalFlow, error) {
	day := c.now()
	var lastErr error
	for i := 0; i < maxTradingDayLookback; i++ {
		date := day.AddDate(0, 0, -i).Format("20060102")
		flow, err := c.symbolFlowOn(ctx, symbol, date)
		if err != nil {
			lastErr = err
			continue
		}
		if flow != nil {
			return flow, nil
		}
	}
	return nil, lastErr
}

// T86 CSV columns, after the two title lines.
const (
	t86ColSymbol          = 0
	t86ColName            = 1
	t86ColForeignBuy      = 2
	t86ColForeignSell     = 3
	t86ColForeignNet      = 4
	t86ColTrustBuy        = 8
	t86ColTrustSell       = 9
	t86ColTrustNet        = 10
	t86ColDealerSelfBuy   = 12
	t86ColDealerSelfSell  = 13
	t86ColDealerSelfNet   = 14
	t86ColDealerHedgeBuy  = 15
	t86ColDealerHedgeSell = 16
	t86ColDealerHedgeNet  = 17
	t86ColTotalNet        = 18
	t86ColumnCount        = 19
)

func (c *twseClient) symbolFlowOn(ctx context.Context, symbol, date string) (*models.InstitutionalFlow, error) {
	resp, err := c.get(ctx, fmt.Sprintf(twseSymbolFlowURL, date))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseT86(transform.NewReader(resp.Body, traditionalchinese.Big5.NewDecoder()), symbol, date)
}

// parseT86 scans a decoded T86 CSV report for one symbol's row.
func parseT86(r io.Reader, symbol, date string) (*models.InstitutionalFlow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // title and footer lines have odd shapes
	reader.LazyQuotes = true    // symbol cells come wrapped as ="2330"

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			continue // ragged title/footer line
		}
		if len(record) < t86ColumnCount {
			continue
		}
		if strings.TrimSpace(strings.Trim(record[t86ColSymbol], `="`)) != symbol {
			continue
		}
		return &models.InstitutionalFlow{
			Date:            date,
			Symbol:          symbol,
			Name:            strings.TrimSpace(record[t86ColName]),
			ForeignBuy:      record[t86ColForeignBuy],
			ForeignSell:     record[t86ColForeignSell],
			ForeignNet:      record[t86ColForeignNet],
			TrustBuy:        record[t86ColTrustBuy],
			TrustSell:       record[t86ColTrustSell],
			TrustNet:        record[t86ColTrustNet],
			DealerSelfBuy:   record[t86ColDealerSelfBuy],
			DealerSelfSell:  record[t86ColDealerSelfSell],
			DealerSelfNet:   record[t86ColDealerSelfNet],
			DealerHedgeBuy:  record[t86ColDealerHedgeBuy],
			DealerHedgeSell: record[t86ColDealerHedgeSell],
			DealerHedgeNet:  record[t86ColDealerHedgeNet],
			TotalNet:        record[t86ColTotalNet],
		}, nil
	}
}

// MarketFlow fetches the market-wide institutional buy/sell money amounts
// (BFI82U), one row per investor category, in declared report order.
func (c *twseClient) MarketFlow(ctx context.Context) ([]models.MarketFlowRow, error) {
	day := c.now()
	var lastErr error
	for i := 0; i < maxTradingDayLookback; i++ {
		date := day.AddDate(0, 0, -i).Format("20060102")
		rows, err := c.marketFlowOn(ctx, date)
		if err != nil {
			lastErr = err
			continue
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, lastErr
}

func (c *twseClient) marketFlowOn(ctx context.Context, date string) ([]models.MarketFlowRow, error) {
	resp, err := c.get(ctx, fmt.Sprintf(twseMarketFlowURL, date))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readAll(resp)
	if err != nil {
		return nil, err
	}
	return parseMarketFlowPayload(body)
}

// parseMarketFlowPayload extracts the BFI82U category rows in report order.
func parseMarketFlowPayload(body []byte) ([]models.MarketFlowRow, error) {
	root := gjson.ParseBytes(body)
	if root.Get("stat").String() != "OK" {
		return nil, nil // holiday or not-yet-published
	}

	var rows []models.MarketFlowRow
	for _, item := range root.Get("data").Array() {
		fields := item.Array()
		if len(fields) < 4 {
			continue
		}
		rows = append(rows, models.MarketFlowRow{
			Category: fields[0].String(),
			Buy:      fields[1].String(),
			Sell:     fields[2].String(),
			Net:      fields[3].String(),
		})
	}
	return rows, nil
}
