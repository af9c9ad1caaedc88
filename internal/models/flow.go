package models

// InstitutionalFlow is one symbol's daily buy/sell volume by investor
// category. All volume fields are share counts as reported by the exchange:
// decimal strings with thousands separators (e.g. "1,000,000").
type InstitutionalFlow struct {
	Date            string
	Symbol          string
	Name            string
	ForeignBuy      string
	ForeignSell     string
	ForeignNet      string
	TrustBuy        string
	TrustSell       string
	TrustNet        string
	DealerSelfBuy   string
	DealerSelfSell  string
	DealerSelfNet   string
	DealerHedgeBuy  string
	DealerHedgeSell string
	DealerHedgeNet  string
	TotalNet        string
}

// MarketFlowRow is one investor category's aggregate market-level flow in
// NTD, again as thousands-separated strings straight from the exchange.
type MarketFlowRow struct {
	Category string
	Buy      string
	Sell     string
	Net      string
}
