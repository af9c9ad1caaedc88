// Package format renders quote and flow records into reply text. Every
// function here is pure: records in, string out.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/adinKent/pharaoh/internal/models"
)

// Trend icons.
const (
	IconUp   = "📈"
	IconDown = "📉"
	IconFlat = "➖"
)

// Round2 rounds to 2 decimals. Prices round before any arithmetic so float
// noise cannot flip the direction at the rounding boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Price renders a price the way the bot displays it: two decimals with one
// trailing zero trimmed, so 525.00 prints as "525.0" and 510.55 stays
// "510.55".
func Price(v float64) string {
	s := fmt.Sprintf("%.2f", Round2(v))
	return strings.TrimSuffix(s, "0")
}

// Signed renders v at 2 decimals with an explicit + on positives.
func Signed(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// PriceLine renders one quote as
//
//	{name} ({symbol}): {price} {icon} {delta} ({pct}%)
//
// Positive delta and percent carry a +; a delta of exactly zero renders the
// flat icon and the literal "0" percent field. A zero previous close makes
// the percent fall back to zero instead of a division fault, still signed
// like the delta.
func PriceLine(q *models.Quote) string {
	price := Round2(q.Price)
	prev := Round2(q.PreviousClose)
	delta := Round2(price - prev)

	pct := 0.0
	if prev != 0 {
		pct = delta / prev * 100
	}

	icon := IconFlat
	deltaField := fmt.Sprintf("%.2f", delta)
	pctField := "0"
	switch {
	case delta > 0:
		icon = IconUp
		deltaField = Signed(delta)
		pctField = fmt.Sprintf("+%.2f", pct)
	case delta < 0:
		icon = IconDown
		pctField = fmt.Sprintf("%.2f", pct)
	}

	return fmt.Sprintf("%s (%s): %s %s %s (%s%%)", q.Name, q.Symbol, Price(price), icon, deltaField, pctField)
}

// MultiLine renders one price line per quote, in order, joined by newlines.
// Nil members (failed fetches) are omitted rather than erroring.
func MultiLine(quotes []*models.Quote) string {
	lines := make([]string, 0, len(quotes))
	for _, q := range quotes {
		if q == nil {
			continue
		}
		lines = append(lines, PriceLine(q))
	}
	return strings.Join(lines, "\n")
}
