package models

// Direction of a price move versus the previous close.
type Direction int

const (
	Down Direction = -1
	Flat Direction = 0
	Up   Direction = 1
)

// DirectionOf compares the current price with the previous close.
func DirectionOf(price, previousClose float64) Direction {
	switch {
	case price > previousClose:
		return Up
	case price < previousClose:
		return Down
	default:
		return Flat
	}
}

// Quote is one symbol's price snapshot, built fresh per request from
// provider output. Price and PreviousClose are already rounded to 2
// decimals by the provider layer.
type Quote struct {
	Symbol        string
	Name          string
	Price         float64
	PreviousClose float64
	Currency      string
	Direction     Direction

	// Valuation fields for the technical-analysis block; zero means the
	// provider had no value.
	DividendYieldPct float64
	TrailingPE       float64

	// History holds trailing daily closes, oldest first. Empty outside the
	// analysis path.
	History []float64
}
