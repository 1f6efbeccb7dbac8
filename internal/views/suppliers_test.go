package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

func poTable() *extract.Table {
	t := extract.NewTable(ColSupplierName, ColProject, ColPendingValue, ColFxRate)
	t.AppendRow("Acme", "Expansion", "100", "1")
	t.AppendRow("acme", "", "50", "1")
	t.AppendRow("Zeta", "expansion", "30", "2")
	return t
}

func TestBuildSupplierPendingPivot(t *testing.T) {
	out, err := BuildSupplierPending(poTable())
	require.NoError(t, err)

	// Two supplier rows plus the grand total.
	require.Equal(t, 3, out.Len())

	// ACME leads with 150 (100 assigned + 50 unassigned, names case-folded).
	assert.Equal(t, "ACME", out.Get(0, SupplierHeader))
	assert.Equal(t, "150", out.Get(0, PendingTotalHeader))
	assert.Equal(t, "100", out.Get(0, "expansion"))
	assert.Equal(t, "50", out.Get(0, UnassignedProject))

	assert.Equal(t, "ZETA", out.Get(1, SupplierHeader))
	assert.Equal(t, "60", out.Get(1, PendingTotalHeader), "home-currency value applies the fx rate")
}

func TestBuildSupplierPendingGrandTotalRow(t *testing.T) {
	out, err := BuildSupplierPending(poTable())
	require.NoError(t, err)

	total := out.Len() - 1
	assert.Equal(t, GrandTotalLabel, out.Get(total, SupplierHeader))
	assert.Equal(t, "210", out.Get(total, PendingTotalHeader))
	assert.Equal(t, "160", out.Get(total, "expansion"))
	assert.Equal(t, "50", out.Get(total, UnassignedProject))
}

func TestBuildSupplierPendingProjectColumnsSorted(t *testing.T) {
	out, err := BuildSupplierPending(poTable())
	require.NoError(t, err)

	assert.Equal(t, []string{SupplierHeader, PendingTotalHeader, "expansion", UnassignedProject}, out.Header)
}

func TestBuildSupplierPendingTieBreaksByName(t *testing.T) {
	po := extract.NewTable(ColSupplierName, ColProject, ColPendingValue, ColFxRate)
	po.AppendRow("Beta", "p", "100", "1")
	po.AppendRow("Alpha", "p", "100", "1")

	out, err := BuildSupplierPending(po)
	require.NoError(t, err)
	assert.Equal(t, "ALPHA", out.Get(0, SupplierHeader))
	assert.Equal(t, "BETA", out.Get(1, SupplierHeader))
}

func TestBuildSupplierPendingMissingColumns(t *testing.T) {
	po := extract.NewTable(ColSupplierName)
	_, err := BuildSupplierPending(po)
	assert.Error(t, err)
}
