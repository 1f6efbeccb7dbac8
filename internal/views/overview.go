// Package views builds the derived cross-tab views of the workbook: the
// overview per-warehouse values, the ABC classification matrix, the
// supplier pending-orders pivot and the receipts rankings.
package views

import (
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/valuation"
)

// Overview sheet columns.
const (
	ColWarehouseType = "WarehouseType"
	ColWarehouse     = "Warehouse"
	ColValue         = "Value"
)

// PrincipalWarehouseTypes are the 3 warehouse categories whose value feeds
// the headline total and the history sheets.
var PrincipalWarehouseTypes = []string{"BILLING", "CONSIGNMENT", "BAD STOCK"}

// UpdateOverview maps today's per-warehouse summed value into the Overview
// sheet's Value column; warehouses with no valued lines record 0.
func UpdateOverview(sheet *extract.Table, sums map[string]float64) error {
	if missing := sheet.MissingColumns(ColWarehouseType, ColWarehouse, ColValue); len(missing) > 0 {
		return &domain.SourceUnavailableError{Kind: "Overview", Missing: missing}
	}
	for i := 0; i < sheet.Len(); i++ {
		sheet.Set(i, ColValue, domain.FormatCell(sums[sheet.Get(i, ColWarehouse)]))
	}
	return nil
}

// PrincipalWarehouses returns the warehouses whose type is one of the
// principal categories.
func PrincipalWarehouses(sheet *extract.Table) map[string]bool {
	principal := make(map[string]bool, len(PrincipalWarehouseTypes))
	for _, t := range PrincipalWarehouseTypes {
		principal[t] = true
	}

	warehouses := make(map[string]bool)
	for i := 0; i < sheet.Len(); i++ {
		if principal[valuation.NormalizeKey(sheet.Get(i, ColWarehouseType))] {
			warehouses[sheet.Get(i, ColWarehouse)] = true
		}
	}
	return warehouses
}

// PrincipalValue sums the Overview Value column across the principal
// warehouse types: today's filtered physical inventory value.
func PrincipalValue(sheet *extract.Table) float64 {
	principal := make(map[string]bool, len(PrincipalWarehouseTypes))
	for _, t := range PrincipalWarehouseTypes {
		principal[t] = true
	}

	var total float64
	for i := 0; i < sheet.Len(); i++ {
		if principal[valuation.NormalizeKey(sheet.Get(i, ColWarehouseType))] {
			total += sheet.Float(i, ColValue)
		}
	}
	return total
}
