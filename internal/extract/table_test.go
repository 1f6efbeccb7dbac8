package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnIndexTrimsHeader(t *testing.T) {
	tbl := NewTable(" Warehouse ", "Value")
	assert.Equal(t, 0, tbl.ColumnIndex("Warehouse"))
	assert.Equal(t, 1, tbl.ColumnIndex("Value"))
	assert.Equal(t, -1, tbl.ColumnIndex("Missing"))
}

func TestAppendRowPadsToHeaderWidth(t *testing.T) {
	tbl := NewTable("A", "B", "C")
	tbl.AppendRow("1")
	assert.Len(t, tbl.Rows[0], 3)
	assert.Equal(t, "", tbl.Get(0, "C"))

	tbl.AppendRow("1", "2", "3", "overflow")
	assert.Len(t, tbl.Rows[1], 3)
}

func TestAddColumnPadsExistingRows(t *testing.T) {
	tbl := NewTable("A")
	tbl.AppendRow("x")
	idx := tbl.AddColumn("B")
	assert.Equal(t, 1, idx)
	assert.Len(t, tbl.Rows[0], 2)

	// adding again is a no-op
	assert.Equal(t, 1, tbl.AddColumn("B"))
	assert.Len(t, tbl.Header, 2)
}

func TestInsertColumn(t *testing.T) {
	tbl := NewTable("Category", "01/02/2026")
	tbl.AppendRow("TOOLS", "100")
	tbl.InsertColumn("02/02/2026", 1, "0")

	assert.Equal(t, []string{"Category", "02/02/2026", "01/02/2026"}, tbl.Header)
	assert.Equal(t, "0", tbl.Get(0, "02/02/2026"))
	assert.Equal(t, "100", tbl.Get(0, "01/02/2026"))
}

func TestMissingColumns(t *testing.T) {
	tbl := NewTable("OnHand", "AvgCost")
	assert.Nil(t, tbl.MissingColumns("OnHand", "AvgCost"))
	assert.Equal(t, []string{"FxRate"}, tbl.MissingColumns("OnHand", "FxRate"))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		cell string
		want float64
	}{
		{"100", 100},
		{"1,234.5", 1234.5},
		{" 42 ", 42},
		{"", 0},
		{"NULL", 0},
		{"No Sales", 0},
		{"-3.25", -3.25},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.cell))
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := NewTable("A")
	tbl.AppendRow("original")

	clone := tbl.Clone()
	clone.Set(0, "A", "changed")
	clone.AddColumn("B")

	assert.Equal(t, "original", tbl.Get(0, "A"))
	assert.Equal(t, -1, tbl.ColumnIndex("B"))
}
