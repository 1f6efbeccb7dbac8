package valuation

import (
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

// Transit extract columns.
const (
	ColMovement    = "Movement"
	ColMovementID  = "MovementID"
	ColStatus      = "Status"
	ColIssueDate   = "IssueDate"
	ColItem        = "Item"
	ColDescription = "Description"
	ColQuantity    = "Quantity"
	ColFromWh      = "FromWarehouse"
	ColToWh        = "ToWarehouse"
	ColCost        = "Cost"
	ColNotes       = "Notes"
	ColPendingQty  = "PendingQuantity"
	ColProject     = "Project"
)

// TransitMovement is the movement type that counts as in-transit stock.
const TransitMovement = "TRANSIT"

// transitColumns is the fixed column set of the Transits sheet, in order.
var transitColumns = []string{
	ColMovement, ColMovementID, ColStatus, ColIssueDate, ColItem, ColDescription,
	ColQuantity, ColFromWh, ColToWh, ColCost, ColNotes, ColPendingQty, ColProject, ColValue,
}

// PrepareTransits filters the transit extract down to TRANSIT movements,
// values each line as PendingQuantity × Cost, adds the (empty) Project
// column and projects the fixed column set. It returns the resulting sheet
// table and the summed transit value.
func PrepareTransits(t *extract.Table) (*extract.Table, float64, error) {
	required := []string{ColMovement, ColPendingQty, ColCost}
	if missing := t.MissingColumns(required...); len(missing) > 0 {
		return nil, 0, &domain.SourceUnavailableError{Kind: extract.KindTransits, Missing: missing}
	}

	t.AddColumn(ColProject)
	t.AddColumn(ColValue)

	var header []string
	for _, col := range transitColumns {
		if t.ColumnIndex(col) >= 0 {
			header = append(header, col)
		}
	}

	out := extract.NewTable(header...)
	var total float64
	for i := 0; i < t.Len(); i++ {
		if NormalizeKey(t.Get(i, ColMovement)) != TransitMovement {
			continue
		}
		value := t.Float(i, ColPendingQty) * t.Float(i, ColCost)
		t.Set(i, ColValue, domain.FormatCell(value))
		total += value

		out.AppendRow()
		row := out.Len() - 1
		for _, col := range header {
			out.Set(row, col, t.Get(i, col))
		}
	}
	return out, total, nil
}
