// Package valuation derives per-line monetary value from the inventory
// extract and aggregates it into the buckets the workbook sheets consume.
package valuation

import (
	"strings"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

// Inventory extract columns.
const (
	ColOnHand    = "OnHand"
	ColAvgCost   = "AvgCost"
	ColFxRate    = "FxRate"
	ColWarehouse = "Warehouse"
	ColCategory  = "Category"
	ColClass     = "ABCClass"
	ColValue     = "Value"
)

// NAValueLabel is the cell marker for lines without a usable value.
const NAValueLabel = "NULL"

// AddValueColumn appends the Value column: OnHand × AvgCost × FxRate, with
// zero or non-finite results stored as the NULL marker so downstream sums
// never mistake missing cost data for a real zero-value line.
func AddValueColumn(inv *extract.Table) error {
	required := []string{ColOnHand, ColAvgCost, ColFxRate}
	if missing := inv.MissingColumns(required...); len(missing) > 0 {
		return &domain.SourceUnavailableError{Kind: extract.KindInventory, Missing: missing}
	}

	inv.AddColumn(ColValue)
	for i := 0; i < inv.Len(); i++ {
		v := inv.Float(i, ColOnHand) * inv.Float(i, ColAvgCost) * inv.Float(i, ColFxRate)
		inv.Set(i, ColValue, domain.Valued(v).Cell(NAValueLabel))
	}
	return nil
}

// ValueAt reads a line's value back as an Amount.
func ValueAt(inv *extract.Table, row int) domain.Amount {
	return domain.ParseAmount(inv.Get(row, ColValue))
}

// TotalValue sums every valued line, skipping markers.
func TotalValue(inv *extract.Table) float64 {
	var total float64
	for i := 0; i < inv.Len(); i++ {
		if v, ok := ValueAt(inv, i).Float(); ok {
			total += v
		}
	}
	return total
}

// SumByWarehouse buckets valued lines by raw warehouse name.
func SumByWarehouse(inv *extract.Table) map[string]float64 {
	sums := make(map[string]float64)
	for i := 0; i < inv.Len(); i++ {
		if v, ok := ValueAt(inv, i).Float(); ok {
			sums[inv.Get(i, ColWarehouse)] += v
		}
	}
	return sums
}

// SumByCategory buckets valued lines by category, restricted to the given
// warehouse set (the principal warehouses feeding the history sheets).
func SumByCategory(inv *extract.Table, warehouses map[string]bool) map[string]float64 {
	sums := make(map[string]float64)
	for i := 0; i < inv.Len(); i++ {
		if !warehouses[inv.Get(i, ColWarehouse)] {
			continue
		}
		if v, ok := ValueAt(inv, i).Float(); ok {
			sums[inv.Get(i, ColCategory)] += v
		}
	}
	return sums
}

// SumByWarehouseClass buckets valued lines by normalized warehouse and ABC
// classification: warehouse → class → summed value.
func SumByWarehouseClass(inv *extract.Table) map[string]map[string]float64 {
	sums := make(map[string]map[string]float64)
	for i := 0; i < inv.Len(); i++ {
		v, ok := ValueAt(inv, i).Float()
		if !ok {
			continue
		}
		wh := NormalizeKey(inv.Get(i, ColWarehouse))
		class := NormalizeClass(inv.Get(i, ColClass))
		if sums[wh] == nil {
			sums[wh] = make(map[string]float64)
		}
		sums[wh][class] += v
	}
	return sums
}

// NormalizeKey upper-cases and trims a grouping key.
func NormalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeClass maps blank and textual-null classifications into the NULL
// bucket.
func NormalizeClass(s string) string {
	c := NormalizeKey(s)
	switch c {
	case "", "NAN", "NONE":
		return NAValueLabel
	}
	return c
}
