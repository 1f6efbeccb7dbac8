// Package ledger maintains the cross-run history inside the workbook: the
// daily behavior records and the per-category / per-warehouse wide history
// tables. It is the only part of the pipeline that reads yesterday's
// persisted rows to decide today's delta.
package ledger

import (
	"strings"
	"time"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/doh"
)

// Behavior sheet columns.
const (
	ColDate          = "Date"
	ColTotalValue    = "TotalValue"
	ColProjectedDOH  = "ProjectedDOH"
	ColTarget        = "Target"
	ColDailyVariance = "DailyVariance"
)

// DateLayout is the fixed display format every persisted Date cell is
// normalized to.
const DateLayout = "02/01/2006"

// parseLayouts covers the formats date cells arrive in before the
// normalization funnel has seen them.
var parseLayouts = []string{
	DateLayout,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2/1/2006",
}

// Behavior is the in-memory daily ledger, newest record first.
type Behavior struct {
	records []domain.DailyRecord
}

// ParseBehavior reads the persisted Behavior sheet. Row order is preserved;
// the sheet contract keeps it newest-first.
func ParseBehavior(t *extract.Table) *Behavior {
	b := &Behavior{}
	if t == nil {
		return b
	}
	for i := 0; i < t.Len(); i++ {
		b.records = append(b.records, domain.DailyRecord{
			Date:          t.Get(i, ColDate),
			TotalValue:    t.Float(i, ColTotalValue),
			ProjectedDOH:  domain.ParseAmount(t.Get(i, ColProjectedDOH)),
			Target:        t.Float(i, ColTarget),
			DailyVariance: t.Float(i, ColDailyVariance),
		})
	}
	return b
}

// Records returns the ledger newest-first.
func (b *Behavior) Records() []domain.DailyRecord {
	return b.records
}

// Len returns the number of records.
func (b *Behavior) Len() int {
	return len(b.records)
}

// Upsert applies today's figures. If a record for the date already exists
// the ledger is left untouched and the stored variance is returned, so a
// same-day re-run never duplicates history or recomputes the delta. A new
// date is prepended with variance against the most recent existing record
// (0 against an empty ledger).
func (b *Behavior) Upsert(date string, total float64, projectedDOH domain.Amount, target float64) (variance float64, inserted bool) {
	date = strings.TrimSpace(date)
	for _, r := range b.records {
		if strings.TrimSpace(r.Date) == date {
			return r.DailyVariance, false
		}
	}

	var previous float64
	if len(b.records) > 0 {
		previous = b.records[0].TotalValue
	}
	variance = total - previous

	record := domain.DailyRecord{
		Date:          date,
		TotalValue:    total,
		ProjectedDOH:  projectedDOH,
		Target:        target,
		DailyVariance: variance,
	}
	b.records = append([]domain.DailyRecord{record}, b.records...)
	return variance, true
}

// Table serializes the ledger for persistence, normalizing every Date cell
// to the fixed display format.
func (b *Behavior) Table() *extract.Table {
	t := extract.NewTable(ColDate, ColTotalValue, ColProjectedDOH, ColTarget, ColDailyVariance)
	for _, r := range b.records {
		t.AppendRow(
			NormalizeDate(r.Date),
			domain.FormatCell(r.TotalValue),
			r.ProjectedDOH.Cell(doh.NoSalesLabel),
			domain.FormatCell(r.Target),
			domain.FormatCell(r.DailyVariance),
		)
	}
	return t
}

// ParseDate reads a date cell in any of the accepted layouts.
func ParseDate(cell string) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	for _, layout := range parseLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate rewrites a date cell into the display format, leaving
// unparseable cells untouched.
func NormalizeDate(cell string) string {
	if ts, ok := ParseDate(cell); ok {
		return ts.Format(DateLayout)
	}
	return strings.TrimSpace(cell)
}
