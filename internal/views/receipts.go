package views

import (
	"sort"
	"strings"
	"time"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/ledger"
)

// Receipts extract columns.
const (
	ColIssueDate = "IssueDate"
	ColName      = "Name"
	// receipts reuse ColValue from overview.go
)

// TopReceipts ranks receipts by entity for the most recent extract date
// strictly before today ("the last operating day", which is not necessarily
// calendar yesterday), summing value per entity and keeping the top n.
func TopReceipts(rc *extract.Table, today time.Time, n int) ([]domain.ReceiptRank, error) {
	if missing := rc.MissingColumns(ColIssueDate, ColName, ColValue); len(missing) > 0 {
		return nil, &domain.SourceUnavailableError{Kind: extract.KindReceipts, Missing: missing}
	}

	lastDay, ok := lastDayBefore(rc, today)
	if !ok {
		return nil, nil
	}

	sums := make(map[string]float64)
	for i := 0; i < rc.Len(); i++ {
		ts, ok := ledger.ParseDate(rc.Get(i, ColIssueDate))
		if !ok || !sameDay(ts, lastDay) {
			continue
		}
		sums[strings.ToUpper(rc.Get(i, ColName))] += rc.Float(i, ColValue)
	}

	ranks := make([]domain.ReceiptRank, 0, len(sums))
	for name, value := range sums {
		ranks = append(ranks, domain.ReceiptRank{Name: name, Value: value})
	}
	sort.SliceStable(ranks, func(a, b int) bool {
		if ranks[a].Value != ranks[b].Value {
			return ranks[a].Value > ranks[b].Value
		}
		return ranks[a].Name < ranks[b].Name
	})
	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks, nil
}

// ReceiptPeriodSums returns the summed value of the last operating day
// before today and the month-to-date total up to and including today.
func ReceiptPeriodSums(rc *extract.Table, today time.Time) (lastDaySum, monthToDate float64, err error) {
	if missing := rc.MissingColumns(ColIssueDate, ColValue); len(missing) > 0 {
		return 0, 0, &domain.SourceUnavailableError{Kind: extract.KindReceipts, Missing: missing}
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastDay, haveLastDay := lastDayBefore(rc, today)

	for i := 0; i < rc.Len(); i++ {
		ts, ok := ledger.ParseDate(rc.Get(i, ColIssueDate))
		if !ok {
			continue
		}
		value := rc.Float(i, ColValue)
		if haveLastDay && sameDay(ts, lastDay) {
			lastDaySum += value
		}
		if !ts.Before(monthStart) && !dayAfter(ts, today) {
			monthToDate += value
		}
	}
	return lastDaySum, monthToDate, nil
}

// lastDayBefore finds the most recent issue date strictly before today.
func lastDayBefore(rc *extract.Table, today time.Time) (time.Time, bool) {
	var last time.Time
	var found bool
	for i := 0; i < rc.Len(); i++ {
		ts, ok := ledger.ParseDate(rc.Get(i, ColIssueDate))
		if !ok {
			continue
		}
		if dayBefore(ts, today) && (!found || ts.After(last)) {
			last = ts
			found = true
		}
	}
	return last, found
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func dayBefore(a, b time.Time) bool {
	return a.Year() < b.Year() || (a.Year() == b.Year() && a.YearDay() < b.YearDay())
}

func dayAfter(a, b time.Time) bool {
	return dayBefore(b, a)
}
