package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adinKent/pharaoh/internal/models"
)

// FlowNotFound is the reply when no institutional data exists for a symbol.
const FlowNotFound = "查無三大法人買賣超資料"

const (
	sharesPerLot   = 1000
	ntdPerHundredM = 100_000_000
	flowSeparator  = "----------------"
)

// GroupedInt parses a thousands-separated integer string like "1,000,000"
// or "-12,345". Whitespace is tolerated.
func GroupedInt(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	return strconv.ParseInt(s, 10, 64)
}

// lotsField converts a raw share-count string to lots (1000 shares each),
// right-justified in a fixed 8-rune field with the unit label.
func lotsField(raw string) string {
	n, err := GroupedInt(raw)
	if err != nil {
		return fmt.Sprintf("%8s 張", "-")
	}
	return fmt.Sprintf("%8d 張", n/sharesPerLot)
}

// SymbolFlowBlock renders one symbol's daily institutional buy/sell block:
// foreign investors, investment trusts, dealer proprietary, dealer hedge,
// then the grand total net, all in lots. A nil record yields the not-found
// message instead of erroring.
func SymbolFlowBlock(f *models.InstitutionalFlow) string {
	if f == nil {
		return FlowNotFound
	}

	header := fmt.Sprintf("%s (%s) 三大法人買賣超", f.Name, f.Symbol)
	if f.Date != "" {
		header += " " + f.Date
	}

	lines := []string{
		header,
		"外資買進:" + lotsField(f.ForeignBuy),
		"外資賣出:" + lotsField(f.ForeignSell),
		"外資買賣超:" + lotsField(f.ForeignNet),
		"投信買進:" + lotsField(f.TrustBuy),
		"投信賣出:" + lotsField(f.TrustSell),
		"投信買賣超:" + lotsField(f.TrustNet),
		"自營商(自行)買進:" + lotsField(f.DealerSelfBuy),
		"自營商(自行)賣出:" + lotsField(f.DealerSelfSell),
		"自營商(自行)買賣超:" + lotsField(f.DealerSelfNet),
		"自營商(避險)買進:" + lotsField(f.DealerHedgeBuy),
		"自營商(避險)賣出:" + lotsField(f.DealerHedgeSell),
		"自營商(避險)買賣超:" + lotsField(f.DealerHedgeNet),
		"三大法人買賣超:" + lotsField(f.TotalNet),
	}
	return strings.Join(lines, "\n")
}

// hundredMillionsField scales a raw NTD string down to 億元 at two decimals.
// Net fields carry the same sign prefixing as price deltas.
func hundredMillionsField(raw string, signed bool) string {
	n, err := GroupedInt(raw)
	if err != nil {
		return "-"
	}
	v := float64(n) / ntdPerHundredM
	if signed {
		return Signed(v)
	}
	return fmt.Sprintf("%.2f", v)
}

// MarketFlowBlock renders the market-wide institutional flow table: one
// section per investor category with buy, sell, and signed net in 億元,
// separated per category, with a trailing unit note. An empty row set yields
// an empty string (no reply).
func MarketFlowBlock(rows []models.MarketFlowRow) string {
	if len(rows) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, "三大法人買賣金額統計")
	for _, row := range rows {
		lines = append(lines,
			flowSeparator,
			row.Category,
			"買進金額: "+hundredMillionsField(row.Buy, false),
			"賣出金額: "+hundredMillionsField(row.Sell, false),
			"買賣差額: "+hundredMillionsField(row.Net, true),
		)
	}
	lines = append(lines, flowSeparator, "單位: 億元")
	return strings.Join(lines, "\n")
}
