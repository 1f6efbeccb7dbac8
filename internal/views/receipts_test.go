package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

func receiptsTable() *extract.Table {
	t := extract.NewTable(ColIssueDate, ColName, ColValue)
	// Friday 06/02 is "today"; 04/02 is the last operating day (no 05/02 rows).
	t.AppendRow("04/02/2026", "Supplier A", "300")
	t.AppendRow("04/02/2026", "supplier a", "100")
	t.AppendRow("04/02/2026", "Supplier B", "250")
	t.AppendRow("02/02/2026", "Supplier C", "999")
	t.AppendRow("06/02/2026", "Supplier D", "50")
	t.AppendRow("31/01/2026", "Supplier E", "10")
	return t
}

func today() time.Time {
	return time.Date(2026, 2, 6, 10, 0, 0, 0, time.UTC)
}

func TestTopReceiptsLastOperatingDay(t *testing.T) {
	ranks, err := TopReceipts(receiptsTable(), today(), 10)
	require.NoError(t, err)

	require.Len(t, ranks, 2, "only the last operating day counts, not the whole history")
	assert.Equal(t, "SUPPLIER A", ranks[0].Name, "same entity different casing sums into one rank")
	assert.Equal(t, 400.0, ranks[0].Value)
	assert.Equal(t, "SUPPLIER B", ranks[1].Name)
	assert.Equal(t, 250.0, ranks[1].Value)
}

func TestTopReceiptsTruncatesToN(t *testing.T) {
	rc := extract.NewTable(ColIssueDate, ColName, ColValue)
	for _, name := range []string{"A", "B", "C"} {
		rc.AppendRow("05/02/2026", name, "100")
	}

	ranks, err := TopReceipts(rc, today(), 2)
	require.NoError(t, err)
	assert.Len(t, ranks, 2)
}

func TestTopReceiptsNoHistoryBeforeToday(t *testing.T) {
	rc := extract.NewTable(ColIssueDate, ColName, ColValue)
	rc.AppendRow("06/02/2026", "Supplier D", "50")

	ranks, err := TopReceipts(rc, today(), 10)
	require.NoError(t, err)
	assert.Empty(t, ranks)
}

func TestReceiptPeriodSums(t *testing.T) {
	lastDay, monthToDate, err := ReceiptPeriodSums(receiptsTable(), today())
	require.NoError(t, err)

	assert.Equal(t, 650.0, lastDay, "04/02 rows only")
	// Month-to-date includes today but not January.
	assert.Equal(t, 1699.0, monthToDate)
}

func TestReceiptPeriodSumsSkipsUnparseableDates(t *testing.T) {
	rc := extract.NewTable(ColIssueDate, ColName, ColValue)
	rc.AppendRow("not a date", "X", "500")
	rc.AppendRow("05/02/2026", "Y", "100")

	lastDay, monthToDate, err := ReceiptPeriodSums(rc, today())
	require.NoError(t, err)
	assert.Equal(t, 100.0, lastDay)
	assert.Equal(t, 100.0, monthToDate)
}
