package ledger

import (
	"sort"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

// History sheet label columns.
const (
	ColCategory  = "Category"
	ColWarehouse = "Warehouse"
)

// ensureDateColumn lazily adds today's column directly after the label
// column on its first occurrence, zero-filled.
func ensureDateColumn(t *extract.Table, labelCol, dateCol string) {
	if t.ColumnIndex(dateCol) >= 0 {
		return
	}
	t.InsertColumn(dateCol, t.ColumnIndex(labelCol)+1, "0")
}

// UpdateCategoryHistory writes today's per-category sums into the wide
// category history: existing category rows are updated in place, unseen
// categories get a fresh zero-filled row, and rows are re-sorted descending
// by today's column. Re-running for the same date overwrites the same
// column instead of growing the table.
func UpdateCategoryHistory(t *extract.Table, date string, sums map[string]float64) {
	ensureDateColumn(t, ColCategory, date)

	index := make(map[string]int, t.Len())
	for i := 0; i < t.Len(); i++ {
		index[t.Get(i, ColCategory)] = i
	}

	for category, value := range sums {
		row, ok := index[category]
		if !ok {
			t.AppendRow()
			row = t.Len() - 1
			fillZero(t, row)
			t.Set(row, ColCategory, category)
		}
		t.Set(row, date, domain.FormatCell(value))
	}

	dateIdx := t.ColumnIndex(date)
	sort.SliceStable(t.Rows, func(a, b int) bool {
		return extract.Coerce(t.Rows[a][dateIdx]) > extract.Coerce(t.Rows[b][dateIdx])
	})
}

// UpdateWarehouseHistory writes today's per-warehouse sums into the wide
// warehouse history. Only warehouses already present in the sheet are
// tracked; a warehouse with no valued lines today records 0.
func UpdateWarehouseHistory(t *extract.Table, date string, sums map[string]float64) {
	ensureDateColumn(t, ColWarehouse, date)

	for i := 0; i < t.Len(); i++ {
		t.Set(i, date, domain.FormatCell(sums[t.Get(i, ColWarehouse)]))
	}
}

func fillZero(t *extract.Table, row int) {
	for _, col := range t.Header {
		t.Set(row, col, "0")
	}
}
