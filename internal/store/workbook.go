package store

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

// SummaryBalance fixed cell layout. Reports built on top of the workbook
// reference these addresses directly, so they must not move.
const (
	cellDate          = "B3"
	cellTransitValue  = "B5"
	cellPhysicalValue = "B6"
	cellTotalValue    = "B7"
	cellTarget        = "B8"
	cellProjectedDOH  = "B9"
	cellImmediateDOH  = "B10"

	monthWindowFirstRow = 14
	monthWindowLastRow  = 25

	topReceiptsFirstRow = 21
	topReceiptsLastRow  = 30

	cellYesterdayReceipts = "B32"
	cellMonthReceipts     = "B34"

	chartAnchor = "D3"
)

const (
	currencyFormat = `"$"#,##0.00`
	ratioFormat    = "0.00"
)

// Workbook is the excelize-backed TableStore. It holds only the file path:
// every operation is open → mutate → save, matching the original's
// multiple-saves-per-run failure mode (a crash between saves leaves some
// sheets updated and others stale).
type Workbook struct {
	path string
}

// NewWorkbook points at an existing workbook file.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// Path returns the workbook file location.
func (w *Workbook) Path() string {
	return w.path
}

// Bootstrap creates the workbook with every standard sheet if the file does
// not exist yet.
func Bootstrap(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	f := excelize.NewFile()
	defer f.Close()
	for _, name := range Sheets {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func (w *Workbook) withFile(sheet, op string, fn func(f *excelize.File) error) error {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return &domain.PersistenceError{Sheet: sheet, Op: op, Err: err}
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return &domain.PersistenceError{Sheet: sheet, Op: op, Err: err}
	}
	if err := f.Save(); err != nil {
		return &domain.PersistenceError{Sheet: sheet, Op: op, Err: err}
	}
	return nil
}

// ReadSheet loads a whole sheet into a Table. A missing sheet is a
// persistence failure, not an empty table.
func (w *Workbook) ReadSheet(name string) (*extract.Table, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, &domain.PersistenceError{Sheet: name, Op: "read", Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, &domain.PersistenceError{Sheet: name, Op: "read", Err: err}
	}
	if len(rows) == 0 {
		return extract.NewTable(), nil
	}

	t := extract.NewTable(rows[0]...)
	for _, row := range rows[1:] {
		t.AppendRow(row...)
	}
	return t, nil
}

// WriteSheet replaces a whole sheet with the table contents. Numeric cells
// are written as numbers so spreadsheet consumers can keep aggregating.
func (w *Workbook) WriteSheet(name string, t *extract.Table) error {
	return w.withFile(name, "write", func(f *excelize.File) error {
		if err := f.DeleteSheet(name); err != nil {
			return err
		}
		if _, err := f.NewSheet(name); err != nil {
			return err
		}

		header := make([]interface{}, len(t.Header))
		for i, h := range t.Header {
			header[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}

		for i, row := range t.Rows {
			cells := make([]interface{}, len(row))
			for j, cell := range row {
				cells[j] = sheetCell(cell)
			}
			anchor, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, anchor, &cells); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSummary writes today's date and the headline metrics into the fixed
// summary cells, with the two-decimal currency format on the value cells.
func (w *Workbook) WriteSummary(m domain.RunMetrics) error {
	return w.withFile(SheetSummaryBalance, "summary", func(f *excelize.File) error {
		currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
		if err != nil {
			return err
		}
		ratio, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(ratioFormat)})
		if err != nil {
			return err
		}

		if err := f.SetCellValue(SheetSummaryBalance, cellDate, m.DisplayDate); err != nil {
			return err
		}

		for cell, value := range map[string]float64{
			cellTransitValue:  m.TransitValue,
			cellPhysicalValue: m.PhysicalValue,
			cellTotalValue:    m.TotalValue,
			cellTarget:        m.Target,
		} {
			if err := f.SetCellValue(SheetSummaryBalance, cell, value); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetSummaryBalance, cell, cell, currency); err != nil {
				return err
			}
		}

		for cell, amount := range map[string]domain.Amount{
			cellProjectedDOH: m.ProjectedDOH,
			cellImmediateDOH: m.ImmediateDOH,
		} {
			if v, ok := amount.Float(); ok {
				if err := f.SetCellValue(SheetSummaryBalance, cell, v); err != nil {
					return err
				}
				if err := f.SetCellStyle(SheetSummaryBalance, cell, cell, ratio); err != nil {
					return err
				}
			} else if err := f.SetCellValue(SheetSummaryBalance, cell, "N/A"); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteMonthWindow clears the monthly balance range and writes the trailing
// window into its fixed rows.
func (w *Workbook) WriteMonthWindow(months []domain.MonthVariance) error {
	return w.withFile(SheetSummaryBalance, "month window", func(f *excelize.File) error {
		currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
		if err != nil {
			return err
		}
		if err := clearRange(f, SheetSummaryBalance, monthWindowFirstRow, monthWindowLastRow); err != nil {
			return err
		}
		for i, m := range months {
			row := monthWindowFirstRow + i
			if err := f.SetCellValue(SheetSummaryBalance, fmt.Sprintf("A%d", row), m.Label); err != nil {
				return err
			}
			cell := fmt.Sprintf("B%d", row)
			if err := f.SetCellValue(SheetSummaryBalance, cell, m.Variance); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetSummaryBalance, cell, cell, currency); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteTopReceipts clears the top-10 range and writes the ranking.
func (w *Workbook) WriteTopReceipts(ranks []domain.ReceiptRank) error {
	return w.withFile(SheetSummaryBalance, "top receipts", func(f *excelize.File) error {
		currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
		if err != nil {
			return err
		}
		if err := clearRange(f, SheetSummaryBalance, topReceiptsFirstRow, topReceiptsLastRow); err != nil {
			return err
		}
		for i, r := range ranks {
			row := topReceiptsFirstRow + i
			if row > topReceiptsLastRow {
				break
			}
			if err := f.SetCellValue(SheetSummaryBalance, fmt.Sprintf("A%d", row), strings.ToUpper(r.Name)); err != nil {
				return err
			}
			cell := fmt.Sprintf("B%d", row)
			if err := f.SetCellValue(SheetSummaryBalance, cell, r.Value); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetSummaryBalance, cell, cell, currency); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteReceiptPeriodSums writes the last-operating-day and month-to-date
// receipt totals into their fixed cells.
func (w *Workbook) WriteReceiptPeriodSums(lastDay, monthToDate float64) error {
	return w.withFile(SheetSummaryBalance, "receipt sums", func(f *excelize.File) error {
		currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
		if err != nil {
			return err
		}
		for cell, v := range map[string]float64{
			cellYesterdayReceipts: lastDay,
			cellMonthReceipts:     monthToDate,
		} {
			if err := f.SetCellValue(SheetSummaryBalance, cell, v); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetSummaryBalance, cell, cell, currency); err != nil {
				return err
			}
		}
		return nil
	})
}

// EmbedChart places the rendered trend chart on the summary sheet.
func (w *Workbook) EmbedChart(png []byte) error {
	return w.withFile(SheetSummaryBalance, "chart", func(f *excelize.File) error {
		// Replace any previous day's image at the anchor.
		_ = f.DeletePicture(SheetSummaryBalance, chartAnchor)
		return f.AddPictureFromBytes(SheetSummaryBalance, chartAnchor, &excelize.Picture{
			Extension: ".png",
			File:      png,
			Format: &excelize.GraphicOptions{
				ScaleX: 0.75,
				ScaleY: 0.75,
			},
		})
	})
}

func clearRange(f *excelize.File, sheet string, firstRow, lastRow int) error {
	for row := firstRow; row <= lastRow; row++ {
		for _, col := range []string{"A", "B"} {
			if err := f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetCell maps a table cell onto a typed spreadsheet value: numbers stay
// numbers, everything else (dates, labels, sentinels) stays text.
func sheetCell(cell string) interface{} {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return cell
}

func strPtr(s string) *string {
	return &s
}

var _ TableStore = (*Workbook)(nil)
