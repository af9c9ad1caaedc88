package models

// MarketClass routes a symbol to the right quote provider and decides the
// symbol-suffix convention.
type MarketClass string

const (
	DomesticEquity MarketClass = "TW"  // Taiwan listed/OTC stocks and ETFs
	ForeignEquity  MarketClass = "US"  // US stocks
	Index          MarketClass = "IND" // market indices
	Future         MarketClass = "FUT" // futures, commodities, FX, crypto
)

// SymbolRef pairs a ticker symbol with its market class. Produced by
// classification or alias resolution, consumed by provider dispatch.
type SymbolRef struct {
	Symbol string
	Market MarketClass
}
