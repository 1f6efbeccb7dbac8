package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

func overviewSheet() *extract.Table {
	t := extract.NewTable(ColWarehouseType, ColWarehouse, ColValue)
	t.AppendRow("BILLING", "MAIN", "")
	t.AppendRow("CONSIGNMENT", "DEPOT", "")
	t.AppendRow("SAMPLES", "SHOWROOM", "")
	t.AppendRow("BAD STOCK", "QUARANTINE", "")
	return t
}

func TestUpdateOverview(t *testing.T) {
	sheet := overviewSheet()
	require.NoError(t, UpdateOverview(sheet, map[string]float64{
		"MAIN":  700,
		"DEPOT": 200,
	}))

	assert.Equal(t, "700", sheet.Get(0, ColValue))
	assert.Equal(t, "200", sheet.Get(1, ColValue))
	assert.Equal(t, "0", sheet.Get(2, ColValue), "warehouse with no valued lines records 0")
}

func TestPrincipalWarehouses(t *testing.T) {
	warehouses := PrincipalWarehouses(overviewSheet())
	assert.True(t, warehouses["MAIN"])
	assert.True(t, warehouses["DEPOT"])
	assert.True(t, warehouses["QUARANTINE"])
	assert.False(t, warehouses["SHOWROOM"], "non-principal types are excluded")
}

func TestPrincipalValueExcludesOtherTypes(t *testing.T) {
	sheet := overviewSheet()
	require.NoError(t, UpdateOverview(sheet, map[string]float64{
		"MAIN":     700,
		"DEPOT":    200,
		"SHOWROOM": 999,
	}))

	assert.Equal(t, 900.0, PrincipalValue(sheet))
}

func TestUpdateOverviewMissingColumns(t *testing.T) {
	sheet := extract.NewTable(ColWarehouse)
	assert.Error(t, UpdateOverview(sheet, nil))
}
