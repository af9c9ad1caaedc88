package quote

import (
	"testing"

	"github.com/adinKent/pharaoh/internal/models"
)

const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {
        "currency": "TWD",
        "symbol": "2330.TW",
        "shortName": "台積電",
        "regularMarketPrice": 525.0,
        "regularMarketPreviousClose": 510.0,
        "chartPreviousClose": 505.0
      },
      "indicators": {
        "quote": [{
          "close": [508.5, null, 512.0, 525.0]
        }]
      }
    }],
    "error": null
  }
}`

func TestParseChartPayload(t *testing.T) {
	q, err := parseChartPayload("2330.TW", []byte(chartPayload))
	if err != nil {
		t.Fatalf("parseChartPayload: %v", err)
	}
	if q == nil {
		t.Fatal("parseChartPayload returned nil quote")
	}
	if q.Name != "台積電" {
		t.Errorf("Name = %q", q.Name)
	}
	if q.Price != 525.0 || q.PreviousClose != 510.0 {
		t.Errorf("Price/PreviousClose = %v/%v, want 525/510", q.Price, q.PreviousClose)
	}
	if q.Currency != "TWD" {
		t.Errorf("Currency = %q", q.Currency)
	}
	if q.Direction != models.Up {
		t.Errorf("Direction = %v, want Up", q.Direction)
	}
	// Null bars (trading halts) are dropped, not zero-filled.
	if len(q.History) != 3 {
		t.Fatalf("History = %v, want 3 non-null closes", q.History)
	}
	if q.History[0] != 508.5 || q.History[2] != 525.0 {
		t.Errorf("History = %v", q.History)
	}
}

func TestParseChartPayloadPreviousCloseFallback(t *testing.T) {
	payload := `{"chart":{"result":[{"meta":{
	  "shortName":"x","regularMarketPrice":100.0,"chartPreviousClose":95.0
	}}]}}`
	q, err := parseChartPayload("X", []byte(payload))
	if err != nil || q == nil {
		t.Fatalf("parseChartPayload: %v, %v", q, err)
	}
	if q.PreviousClose != 95.0 {
		t.Errorf("PreviousClose = %v, want chartPreviousClose fallback 95", q.PreviousClose)
	}
}

func TestParseChartPayloadNameFallback(t *testing.T) {
	payload := `{"chart":{"result":[{"meta":{
	  "longName":"Long Name Inc","regularMarketPrice":1.0,"regularMarketPreviousClose":1.0
	}}]}}`
	q, err := parseChartPayload("X", []byte(payload))
	if err != nil || q == nil {
		t.Fatalf("parseChartPayload: %v, %v", q, err)
	}
	if q.Name != "Long Name Inc" {
		t.Errorf("Name = %q, want longName fallback", q.Name)
	}

	payload = `{"chart":{"result":[{"meta":{
	  "regularMarketPrice":1.0,"regularMarketPreviousClose":1.0
	}}]}}`
	q, err = parseChartPayload("X", []byte(payload))
	if err != nil || q == nil {
		t.Fatalf("parseChartPayload: %v, %v", q, err)
	}
	if q.Name != "Stock X" {
		t.Errorf("Name = %q, want placeholder", q.Name)
	}
}

func TestParseChartPayloadError(t *testing.T) {
	payload := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	if _, err := parseChartPayload("NOPE", []byte(payload)); err == nil {
		t.Error("service error payload must surface as error")
	}
}

func TestParseChartPayloadMissingData(t *testing.T) {
	for _, payload := range []string{
		`{}`,
		`{"chart":{"result":[]}}`,
		`{"chart":{"result":[{"meta":{"shortName":"x"}}]}}`,
	} {
		q, err := parseChartPayload("X", []byte(payload))
		if err != nil {
			t.Errorf("payload %s: unexpected error %v", payload, err)
		}
		if q != nil {
			t.Errorf("payload %s: got quote %+v, want nil", payload, q)
		}
	}
}

func TestApplySummaryPayload(t *testing.T) {
	q := &models.Quote{Symbol: "2330.TW"}
	payload := `{"quoteSummary":{"result":[{"summaryDetail":{
	  "dividendYield":{"raw":0.021,"fmt":"2.10%"},
	  "trailingPE":{"raw":18.3,"fmt":"18.30"}
	}}]}}`
	applySummaryPayload(q, []byte(payload))
	if q.DividendYieldPct < 2.09 || q.DividendYieldPct > 2.11 {
		t.Errorf("DividendYieldPct = %v, want ~2.1", q.DividendYieldPct)
	}
	if q.TrailingPE != 18.3 {
		t.Errorf("TrailingPE = %v", q.TrailingPE)
	}
}

func TestApplySummaryPayloadMissing(t *testing.T) {
	q := &models.Quote{Symbol: "^TWII"}
	applySummaryPayload(q, []byte(`{"quoteSummary":{"result":[]}}`))
	if q.DividendYieldPct != 0 || q.TrailingPE != 0 {
		t.Errorf("missing summary must leave fields zero: %+v", q)
	}
}

func TestIntervalFor(t *testing.T) {
	if got := intervalFor("1d"); got != "1m" {
		t.Errorf("intervalFor(1d) = %q, want 1m", got)
	}
	for _, period := range []string{"2d", "1y", ""} {
		if got := intervalFor(period); got != "1d" {
			t.Errorf("intervalFor(%q) = %q, want 1d", period, got)
		}
	}
}
