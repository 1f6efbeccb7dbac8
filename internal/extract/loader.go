package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/pkg/logger"
)

// Extract kinds and their filename prefixes. One file per kind per day,
// named "<prefix> <yyyymmdd>" with a tabular extension.
const (
	KindInventory      = "Inventory"
	KindTransits       = "PendingTransits"
	KindDOH            = "DOH"
	KindPurchaseOrders = "PendingPO"
	KindReceipts       = "PlannedReceipts"
)

// Kinds lists every extract kind in load order.
var Kinds = []string{KindInventory, KindTransits, KindDOH, KindPurchaseOrders, KindReceipts}

var extensions = []string{".xlsx", ".xls", ".csv"}

// FindExtract locates the day's file for one kind: an exact
// "<prefix> <date><ext>" match first, else the first lexicographic
// "<prefix> <date>*" match. Returns "" when the kind is unavailable and an
// error only when the source directory itself is inaccessible.
func FindExtract(dir, prefix, dateStr string) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("source directory %s inaccessible: %w", dir, &domain.SourceUnavailableError{Kind: prefix})
	}

	base := fmt.Sprintf("%s %s", prefix, dateStr)
	for _, ext := range extensions {
		candidate := filepath.Join(dir, base+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, base+"*"))
	if err != nil {
		return "", fmt.Errorf("globbing %s: %w", base, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}

// LoadTable parses a tabular file into a Table. The first row is the header;
// shorter rows are padded to the header width.
func LoadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	default:
		return loadXLSX(path)
	}
}

// LoadAll discovers and parses every extract kind for the given date.
// Missing kinds are reported as nil entries; downstream steps guard
// independently against each missing table.
func LoadAll(ctx context.Context, dir, dateStr string) (map[string]*Table, error) {
	tables := make(map[string]*Table, len(Kinds))
	for _, kind := range Kinds {
		if err := ctx.Err(); err != nil {
			return tables, err
		}

		path, err := FindExtract(dir, kind, dateStr)
		if err != nil {
			return tables, err
		}
		if path == "" {
			logger.Log.Warn().Str("kind", kind).Str("date", dateStr).Msg("extract not found")
			tables[kind] = nil
			continue
		}

		t, err := LoadTable(path)
		if err != nil {
			logger.Log.Error().Err(err).Str("kind", kind).Str("path", path).Msg("failed to parse extract")
			tables[kind] = nil
			continue
		}
		logger.Log.Info().Str("kind", kind).Str("path", path).Int("rows", t.Len()).Msg("extract loaded")
		tables[kind] = t
	}
	return tables, nil
}

func loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", path)
	}

	t := NewTable(records[0]...)
	for _, rec := range records[1:] {
		t.AppendRow(rec...)
	}
	return t, nil
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file %s has no sheets", path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	var t *Table
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", path, err)
		}
		if t == nil {
			t = NewTable(record...)
			continue
		}
		t.AppendRow(record...)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}
	if t == nil {
		return nil, fmt.Errorf("xlsx file %s is empty", path)
	}
	return t, nil
}
