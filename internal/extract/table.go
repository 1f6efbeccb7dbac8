package extract

import (
	"strconv"
	"strings"
)

// Table is the normalized in-memory form of an extract or a workbook sheet:
// an ordered header and rows of string cells. Rows are padded to the header
// width on ingestion, so positional access is always safe.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable creates an empty table with the given header.
func NewTable(header ...string) *Table {
	h := make([]string, len(header))
	copy(h, header)
	return &Table{Header: h}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, -1 if absent.
// Header cells are compared trimmed.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// MissingColumns returns the subset of names not present in the header.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if t.ColumnIndex(n) < 0 {
			missing = append(missing, n)
		}
	}
	return missing
}

// AddColumn appends a column and pads every row, returning its index.
// If the column already exists its index is returned unchanged.
func (t *Table) AddColumn(name string) int {
	if i := t.ColumnIndex(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// InsertColumn inserts a column at pos, shifting the rest right and filling
// cells with fill.
func (t *Table) InsertColumn(name string, pos int, fill string) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(t.Header) {
		pos = len(t.Header)
	}
	t.Header = append(t.Header, "")
	copy(t.Header[pos+1:], t.Header[pos:])
	t.Header[pos] = name
	for i, row := range t.Rows {
		row = append(row, "")
		copy(row[pos+1:], row[pos:])
		row[pos] = fill
		t.Rows[i] = row
	}
}

// AppendRow adds a row, padding or truncating it to the header width.
func (t *Table) AppendRow(cells ...string) {
	row := make([]string, len(t.Header))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Get returns the trimmed cell under the named column, "" when the column is
// absent.
func (t *Table) Get(row int, name string) string {
	i := t.ColumnIndex(name)
	if i < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Set writes a cell under the named column, adding the column if needed.
func (t *Table) Set(row int, name, value string) {
	i := t.AddColumn(name)
	if row >= 0 && row < len(t.Rows) {
		t.Rows[row][i] = value
	}
}

// Float coerces the cell under the named column to a number; anything that
// does not parse (including sentinel text) is 0.
func (t *Table) Float(row int, name string) float64 {
	return Coerce(t.Get(row, name))
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable(t.Header...)
	c.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		c.Rows[i] = r
	}
	return c
}

// Coerce parses a cell as a number, treating blanks, text and thousand
// separators the way the extracts deliver them. Invalid input is 0.
func Coerce(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
