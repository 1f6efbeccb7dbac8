// Package chart renders the daily behavior trend: total value and target on
// the primary axis, projected days-on-hand on the secondary axis.
package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/ledger"
)

const labelLayout = "02-Jan"

// Render draws the trend of the most recent `days` records as a PNG. The
// ledger arrives newest-first; the chart runs oldest to newest.
func Render(records []domain.DailyRecord, days int) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no behavior records to chart")
	}
	if days < 1 {
		days = 1
	}
	if len(records) > days {
		records = records[:days]
	}

	n := len(records)
	xs := make([]float64, 0, n)
	totals := make([]float64, 0, n)
	targets := make([]float64, 0, n)
	dohs := make([]float64, 0, n)
	ticks := make([]chart.Tick, 0, n)

	for i := n - 1; i >= 0; i-- {
		r := records[i]
		x := float64(n - 1 - i)
		xs = append(xs, x)
		totals = append(totals, r.TotalValue)
		targets = append(targets, r.Target)
		dohs = append(dohs, r.ProjectedDOH.Value())

		label := r.Date
		if ts, ok := ledger.ParseDate(r.Date); ok {
			label = ts.Format(labelLayout)
		}
		ticks = append(ticks, chart.Tick{Value: x, Label: label})
	}

	// go-chart cannot derive a range from a single point.
	if n == 1 {
		xs = append(xs, 1)
		totals = append(totals, totals[0])
		targets = append(targets, targets[0])
		dohs = append(dohs, dohs[0])
		ticks = append(ticks, chart.Tick{Value: 1, Label: ticks[0].Label})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Total Value, Target and DOH - last %d days", days),
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           "Total Value",
			ValueFormatter: moneyTickFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Projected DOH (days)",
			ValueFormatter: chart.FloatValueFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Total Value",
				XValues: xs,
				YValues: totals,
			},
			chart.ContinuousSeries{
				Name:    "Target",
				XValues: xs,
				YValues: targets,
				Style: chart.Style{
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
			chart.ContinuousSeries{
				Name:    "Projected DOH",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: dohs,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

// moneyTickFormatter compresses large currency ticks into $K / $M.
func moneyTickFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	switch {
	case f >= 1e6:
		return fmt.Sprintf("$%.0fM", f/1e6)
	case f >= 1e3:
		return fmt.Sprintf("$%.0fK", f/1e3)
	default:
		return fmt.Sprintf("$%.0f", f)
	}
}
