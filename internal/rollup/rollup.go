// Package rollup buckets the daily variance history into the trailing
// monthly balance window.
package rollup

import (
	"time"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/ledger"
)

// MonthLabelLayout renders a calendar month as it appears on the summary
// sheet and the portal.
const MonthLabelLayout = "Jan-06"

// WindowMonths is the fixed width of the monthly balance window.
const WindowMonths = 3

// MonthlyWindow sums DailyVariance per calendar month and returns the
// window of exactly `months` entries ending at the latest date present in
// the history — not at `fallback` — so stale data never invents months with
// no backing records. A window month with no data yields 0, never an
// absence. `fallback` anchors the window only when no record date parses.
func MonthlyWindow(records []domain.DailyRecord, fallback time.Time, months int) []domain.MonthVariance {
	byMonth := make(map[string]float64)
	var anchor time.Time
	var anchored bool

	for _, r := range records {
		ts, ok := ledger.ParseDate(r.Date)
		if !ok {
			continue
		}
		byMonth[ts.Format(MonthLabelLayout)] += r.DailyVariance
		if !anchored || ts.After(anchor) {
			anchor = ts
			anchored = true
		}
	}
	if !anchored {
		anchor = fallback
	}

	window := make([]domain.MonthVariance, 0, months)
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	for i := 0; i < months; i++ {
		label := first.AddDate(0, i, 0).Format(MonthLabelLayout)
		window = append(window, domain.MonthVariance{Label: label, Variance: byMonth[label]})
	}
	return window
}
