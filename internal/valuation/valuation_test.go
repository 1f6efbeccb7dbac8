package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

func inventoryTable() *extract.Table {
	t := extract.NewTable(ColWarehouse, ColCategory, ColClass, ColOnHand, ColAvgCost, ColFxRate)
	t.AppendRow("MAIN", "TOOLS", "A", "10", "5", "1")
	t.AppendRow("MAIN", "TOOLS", "B", "4", "2.5", "2")
	t.AppendRow("DEPOT", "PARTS", "", "7", "0", "1") // no cost data
	t.AppendRow("DEPOT", "PARTS", "A", "1", "100", "1")
	return t
}

func TestAddValueColumn(t *testing.T) {
	inv := inventoryTable()
	require.NoError(t, AddValueColumn(inv))

	assert.Equal(t, "50", inv.Get(0, ColValue))
	assert.Equal(t, "20", inv.Get(1, ColValue))
	assert.Equal(t, NAValueLabel, inv.Get(2, ColValue), "zero product is recorded as the marker, not 0")
	assert.Equal(t, "100", inv.Get(3, ColValue))
}

func TestAddValueColumnMissingColumns(t *testing.T) {
	inv := extract.NewTable(ColOnHand, ColAvgCost)
	err := AddValueColumn(inv)
	require.Error(t, err)

	var src *domain.SourceUnavailableError
	require.ErrorAs(t, err, &src)
	assert.Equal(t, []string{ColFxRate}, src.Missing)
}

func TestTotalValueSkipsMarkers(t *testing.T) {
	inv := inventoryTable()
	require.NoError(t, AddValueColumn(inv))
	assert.Equal(t, 170.0, TotalValue(inv))
}

func TestSumByWarehouse(t *testing.T) {
	inv := inventoryTable()
	require.NoError(t, AddValueColumn(inv))

	sums := SumByWarehouse(inv)
	assert.Equal(t, 70.0, sums["MAIN"])
	assert.Equal(t, 100.0, sums["DEPOT"])
}

func TestSumByCategoryRestrictsWarehouses(t *testing.T) {
	inv := inventoryTable()
	require.NoError(t, AddValueColumn(inv))

	sums := SumByCategory(inv, map[string]bool{"MAIN": true})
	assert.Equal(t, 70.0, sums["TOOLS"])
	assert.NotContains(t, sums, "PARTS")
}

func TestSumByWarehouseClass(t *testing.T) {
	inv := inventoryTable()
	require.NoError(t, AddValueColumn(inv))

	sums := SumByWarehouseClass(inv)
	assert.Equal(t, 50.0, sums["MAIN"]["A"])
	assert.Equal(t, 20.0, sums["MAIN"]["B"])
	assert.Equal(t, 100.0, sums["DEPOT"]["A"])
	// the zero-value line never reaches any bucket
	assert.NotContains(t, sums["DEPOT"], NAValueLabel)
}

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", "A"},
		{" b ", "B"},
		{"", "NULL"},
		{"nan", "NULL"},
		{"None", "NULL"},
		{"X", "X"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeClass(tt.in))
		})
	}
}
