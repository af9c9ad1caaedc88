package format

import (
	"fmt"
	"strings"

	"github.com/adinKent/pharaoh/internal/models"
)

// Moving-average windows, in trading days.
var maWindows = struct {
	short []int
	long  []int
}{
	short: []int{5, 20},
	long:  []int{60, 120, 240},
}

// MovingAverage returns the trailing mean of the last window closes. The
// second result is false when the history is shorter than the window.
func MovingAverage(history []float64, window int) (float64, bool) {
	if window <= 0 || len(history) < window {
		return 0, false
	}
	sum := 0.0
	for _, close := range history[len(history)-window:] {
		sum += close
	}
	return sum / float64(window), true
}

func maField(history []float64, window int) string {
	avg, ok := MovingAverage(history, window)
	if !ok {
		// Insufficient history is surfaced, not defaulted.
		return fmt.Sprintf("%dMA: N/A", window)
	}
	return fmt.Sprintf("%dMA: %.2f", window, avg)
}

func maLine(history []float64, windows []int) string {
	fields := make([]string, 0, len(windows))
	for _, w := range windows {
		fields = append(fields, maField(history, w))
	}
	return strings.Join(fields, " / ")
}

// AnalysisBlock renders the technical-analysis reply for one quote: the
// price line, an optional valuation line (dividend yield and trailing P/E at
// one decimal, included only when the provider had a non-zero value), and
// the short/long moving-average lines at two decimals.
func AnalysisBlock(q *models.Quote) string {
	lines := []string{PriceLine(q), ""}

	var valuation []string
	if q.DividendYieldPct != 0 {
		valuation = append(valuation, fmt.Sprintf("殖利率: %.1f%%", q.DividendYieldPct))
	}
	if q.TrailingPE != 0 {
		valuation = append(valuation, fmt.Sprintf("本益比: %.1f", q.TrailingPE))
	}
	if len(valuation) > 0 {
		lines = append(lines, strings.Join(valuation, "  "), "")
	}

	lines = append(lines,
		maLine(q.History, maWindows.short),
		maLine(q.History, maWindows.long),
	)
	return strings.Join(lines, "\n")
}
