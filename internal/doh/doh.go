// Package doh derives inventory-coverage metrics per warehouse from the
// days-on-hand source extract.
package doh

import (
	"sort"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

// DOH source columns. Sales is the trailing yearly sales figure.
const (
	ColWarehouse   = "Warehouse"
	ColAvailable   = "Available"
	ColInTransit   = "InTransit"
	ColSales       = "Sales"
	ColOnOrder     = "OnOrder"
	ColBackordered = "Backordered"

	ColVelocity     = "MonthlyVelocity"
	ColProjection   = "Projection"
	ColProjectedDOH = "ProjectedDOH"
	ColImmediateDOH = "ImmediateDOH"
	ColMonthsCover  = "MonthsCover"

	// TotalLabel names the synthetic row recomputed from summed inputs.
	TotalLabel = "TOTAL"
)

// NoSalesLabel is the sentinel for warehouses with zero monthly velocity.
// A coverage ratio over zero consumption is not 0 days, it is undefined.
const NoSalesLabel = "No Sales"

// Totals carries the aggregate coverage figures the summary sheet and the
// behavior ledger consume.
type Totals struct {
	ProjectedDOH domain.Amount
	ImmediateDOH domain.Amount
}

// Enrich appends the derived coverage columns, sorts warehouses by available
// stock descending and appends the TOTAL row. The TOTAL ratios are
// recomputed from the summed inputs, never summed from per-row ratios.
func Enrich(t *extract.Table) (Totals, error) {
	required := []string{ColWarehouse, ColAvailable, ColInTransit, ColSales, ColOnOrder, ColBackordered}
	if missing := t.MissingColumns(required...); len(missing) > 0 {
		return Totals{}, &domain.SourceUnavailableError{Kind: extract.KindDOH, Missing: missing}
	}

	for _, col := range []string{ColVelocity, ColProjection, ColProjectedDOH, ColImmediateDOH, ColMonthsCover} {
		t.AddColumn(col)
	}

	var sums struct {
		available, inTransit, sales, onOrder, backordered, velocity, projection float64
	}

	for i := 0; i < t.Len(); i++ {
		available := t.Float(i, ColAvailable)
		inTransit := t.Float(i, ColInTransit)
		sales := t.Float(i, ColSales)
		onOrder := t.Float(i, ColOnOrder)
		backordered := t.Float(i, ColBackordered)

		velocity := sales / 12
		projection := available + inTransit + onOrder - backordered

		projected, immediate := coverage(velocity, available, inTransit, onOrder, backordered)

		t.Set(i, ColVelocity, domain.FormatCell(velocity))
		t.Set(i, ColProjection, domain.FormatCell(projection))
		t.Set(i, ColProjectedDOH, projected.Cell(NoSalesLabel))
		t.Set(i, ColImmediateDOH, immediate.Cell(NoSalesLabel))
		t.Set(i, ColMonthsCover, monthsCover(projected).Cell(NoSalesLabel))

		sums.available += available
		sums.inTransit += inTransit
		sums.sales += sales
		sums.onOrder += onOrder
		sums.backordered += backordered
		sums.velocity += velocity
		sums.projection += projection
	}

	availableIdx := t.ColumnIndex(ColAvailable)
	sort.SliceStable(t.Rows, func(a, b int) bool {
		return extract.Coerce(t.Rows[a][availableIdx]) > extract.Coerce(t.Rows[b][availableIdx])
	})

	totalProjected, totalImmediate := coverage(sums.velocity, sums.available, sums.inTransit, sums.onOrder, sums.backordered)

	t.AppendRow()
	total := t.Len() - 1
	t.Set(total, ColWarehouse, TotalLabel)
	t.Set(total, ColAvailable, domain.FormatCell(sums.available))
	t.Set(total, ColInTransit, domain.FormatCell(sums.inTransit))
	t.Set(total, ColSales, domain.FormatCell(sums.sales))
	t.Set(total, ColOnOrder, domain.FormatCell(sums.onOrder))
	t.Set(total, ColBackordered, domain.FormatCell(sums.backordered))
	t.Set(total, ColVelocity, domain.FormatCell(sums.velocity))
	t.Set(total, ColProjection, domain.FormatCell(sums.projection))
	t.Set(total, ColProjectedDOH, totalProjected.Cell(NoSalesLabel))
	t.Set(total, ColImmediateDOH, totalImmediate.Cell(NoSalesLabel))
	t.Set(total, ColMonthsCover, monthsCover(totalProjected).Cell(NoSalesLabel))

	return Totals{ProjectedDOH: totalProjected, ImmediateDOH: totalImmediate}, nil
}

// coverage computes the projected and immediate days-on-hand for one set of
// inputs. Projected nets purchase orders and backorders; immediate does not.
func coverage(velocity, available, inTransit, onOrder, backordered float64) (projected, immediate domain.Amount) {
	if velocity == 0 {
		return domain.NA(), domain.NA()
	}
	projected = domain.Num((available + inTransit + onOrder - backordered) / (velocity * 12 / 360))
	immediate = domain.Num((available + inTransit) / velocity * 30)
	return projected, immediate
}

func monthsCover(projected domain.Amount) domain.Amount {
	v, ok := projected.Float()
	if !ok {
		return domain.NA()
	}
	return domain.Num(v / 30)
}
