package views

import (
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/valuation"
)

// Classifications is the fixed ABC code set, including the NULL bucket for
// unclassified lines.
var Classifications = []string{"NULL", "A", "B", "C", "D", "E", "I", "N", "X"}

// TotalLabel names both the synthetic TOTAL warehouse row and the TOTAL
// column of the ABC matrix.
const TotalLabel = "TOTAL"

// UpdateABC fills the ABC matrix sheet from the normalized
// warehouse × classification sums. Every classification cell of every real
// warehouse row is written (0 when the bucket is absent); the TOTAL row and
// TOTAL column are recomputed as sums, never pulled from source, so the
// grand total reconciles both ways.
func UpdateABC(sheet *extract.Table, sums map[string]map[string]float64) error {
	if missing := sheet.MissingColumns(ColWarehouse); len(missing) > 0 {
		return &domain.SourceUnavailableError{Kind: "ABC", Missing: missing}
	}
	for _, class := range Classifications {
		sheet.AddColumn(class)
	}
	sheet.AddColumn(TotalLabel)

	columnSums := make(map[string]float64, len(Classifications))

	for i := 0; i < sheet.Len(); i++ {
		warehouse := valuation.NormalizeKey(sheet.Get(i, ColWarehouse))
		if warehouse == TotalLabel {
			continue
		}
		var rowTotal float64
		for _, class := range Classifications {
			value := sums[warehouse][class]
			sheet.Set(i, class, domain.FormatCell(value))
			columnSums[class] += value
			rowTotal += value
		}
		sheet.Set(i, TotalLabel, domain.FormatCell(rowTotal))
	}

	for i := 0; i < sheet.Len(); i++ {
		if valuation.NormalizeKey(sheet.Get(i, ColWarehouse)) != TotalLabel {
			continue
		}
		var grand float64
		for _, class := range Classifications {
			sheet.Set(i, class, domain.FormatCell(columnSums[class]))
			grand += columnSums[class]
		}
		sheet.Set(i, TotalLabel, domain.FormatCell(grand))
	}
	return nil
}
