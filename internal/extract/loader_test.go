package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindExtractExactMatch(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "Inventory 20260206.csv", "OnHand\n1\n")

	got, err := FindExtract(dir, "Inventory", "20260206")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindExtractPrefersKnownExtensionOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Inventory 20260206.csv", "a\n")
	want := writeFile(t, dir, "Inventory 20260206.xlsx", "not really xlsx")

	got, err := FindExtract(dir, "Inventory", "20260206")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindExtractGlobFallback(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "Inventory 20260206 (1).csv", "a\n")
	writeFile(t, dir, "Inventory 20260206 (2).csv", "b\n")

	got, err := FindExtract(dir, "Inventory", "20260206")
	require.NoError(t, err)
	assert.Equal(t, want, got, "first lexicographic match wins")
}

func TestFindExtractMissingFile(t *testing.T) {
	got, err := FindExtract(t.TempDir(), "Inventory", "20260206")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindExtractInaccessibleDir(t *testing.T) {
	_, err := FindExtract(filepath.Join(t.TempDir(), "nope"), "Inventory", "20260206")
	assert.Error(t, err)
}

func TestLoadTableCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Inventory 20260206.csv",
		"OnHand,AvgCost,FxRate\n10,5,1\n3,2.5,1\n")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"OnHand", "AvgCost", "FxRate"}, tbl.Header)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 10.0, tbl.Float(0, "OnHand"))
	assert.Equal(t, 2.5, tbl.Float(1, "AvgCost"))
}

func TestLoadTableCSVRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "DOH 20260206.csv",
		"Warehouse,Available,Sales\nMAIN,100\n")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "", tbl.Get(0, "Sales"))
}

func TestLoadAllReportsMissingKindsAsNil(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Inventory 20260206.csv", "OnHand,AvgCost,FxRate\n10,5,1\n")

	tables, err := LoadAll(context.Background(), dir, "20260206")
	require.NoError(t, err)
	require.Len(t, tables, len(Kinds))
	assert.NotNil(t, tables[KindInventory])
	assert.Nil(t, tables[KindTransits])
	assert.Nil(t, tables[KindDOH])
	assert.Nil(t, tables[KindPurchaseOrders])
	assert.Nil(t, tables[KindReceipts])
}

func TestLoadAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadAll(ctx, t.TempDir(), "20260206")
	assert.ErrorIs(t, err, context.Canceled)
}
