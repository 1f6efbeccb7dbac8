package doh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

func dohTable() *extract.Table {
	t := extract.NewTable(ColWarehouse, ColAvailable, ColInTransit, ColSales, ColOnOrder, ColBackordered)
	t.AppendRow("MAIN", "120", "30", "360", "60", "10")
	t.AppendRow("IDLE", "50", "0", "0", "0", "0")
	return t
}

func TestEnrichDerivesCoverage(t *testing.T) {
	tbl := dohTable()
	totals, err := Enrich(tbl)
	require.NoError(t, err)

	// MAIN sorts first (largest available stock).
	main := 0
	assert.Equal(t, "MAIN", tbl.Get(main, ColWarehouse))
	assert.Equal(t, 30.0, tbl.Float(main, ColVelocity))
	assert.Equal(t, 200.0, tbl.Float(main, ColProjection))
	// (120+30+60-10) / (30*12/360) = 200
	assert.Equal(t, 200.0, tbl.Float(main, ColProjectedDOH))
	// (120+30)/30*30 = 150
	assert.Equal(t, 150.0, tbl.Float(main, ColImmediateDOH))

	require.True(t, totals.ProjectedDOH.Valid())
	require.True(t, totals.ImmediateDOH.Valid())
}

func TestEnrichZeroVelocitySentinel(t *testing.T) {
	tbl := dohTable()
	_, err := Enrich(tbl)
	require.NoError(t, err)

	idle := 1
	require.Equal(t, "IDLE", tbl.Get(idle, ColWarehouse))
	assert.Equal(t, NoSalesLabel, tbl.Get(idle, ColProjectedDOH))
	assert.Equal(t, NoSalesLabel, tbl.Get(idle, ColImmediateDOH))
	assert.Equal(t, NoSalesLabel, tbl.Get(idle, ColMonthsCover))
}

func TestEnrichTotalRowRecomputedFromSums(t *testing.T) {
	tbl := dohTable()
	_, err := Enrich(tbl)
	require.NoError(t, err)

	total := tbl.Len() - 1
	require.Equal(t, TotalLabel, tbl.Get(total, ColWarehouse))
	assert.Equal(t, 170.0, tbl.Float(total, ColAvailable))
	assert.Equal(t, 360.0, tbl.Float(total, ColSales))
	// Total coverage uses summed inputs: (170+30+60-10) / (30*12/360) = 250.
	// Summing the per-row ratios would give a different, wrong number.
	assert.Equal(t, 250.0, tbl.Float(total, ColProjectedDOH))
	// (170+30)/30*30 = 200
	assert.Equal(t, 200.0, tbl.Float(total, ColImmediateDOH))
}

func TestEnrichAllZeroSalesTotals(t *testing.T) {
	tbl := extract.NewTable(ColWarehouse, ColAvailable, ColInTransit, ColSales, ColOnOrder, ColBackordered)
	tbl.AppendRow("A", "10", "0", "0", "0", "0")

	totals, err := Enrich(tbl)
	require.NoError(t, err)
	assert.False(t, totals.ProjectedDOH.Valid())
	assert.False(t, totals.ImmediateDOH.Valid())

	total := tbl.Len() - 1
	assert.Equal(t, NoSalesLabel, tbl.Get(total, ColProjectedDOH))
}

func TestEnrichMissingColumns(t *testing.T) {
	tbl := extract.NewTable(ColWarehouse, ColAvailable)
	_, err := Enrich(tbl)
	assert.Error(t, err)
}
