// Package store persists the multi-sheet workbook that serves as the
// system of record. The only update primitive is whole-sheet
// read → in-memory transform → whole-sheet overwrite; sheet name is the
// only addressing scheme.
package store

import "github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"

// Fixed sheet names of the workbook.
const (
	SheetOverview         = "Overview"
	SheetABC              = "ABC"
	SheetTransits         = "Transits"
	SheetDaysInventory    = "DaysInventory"
	SheetCategoryHistory  = "CategoryHistory"
	SheetWarehouseHistory = "WarehouseHistory"
	SheetBehavior         = "Behavior"
	SheetSummaryBalance   = "SummaryBalance"
	SheetSupplierPending  = "SupplierPending"
	SheetReceipts         = "Receipts"
)

// Sheets lists every sheet of a freshly bootstrapped workbook.
var Sheets = []string{
	SheetOverview, SheetABC, SheetTransits, SheetDaysInventory,
	SheetCategoryHistory, SheetWarehouseHistory, SheetBehavior,
	SheetSummaryBalance, SheetSupplierPending, SheetReceipts,
}

// TableStore abstracts the whole-sheet persistence primitive. There is no
// partial-row update; an implementation may later add row-level diffing
// behind the same contract.
type TableStore interface {
	ReadSheet(name string) (*extract.Table, error)
	WriteSheet(name string, t *extract.Table) error
}
