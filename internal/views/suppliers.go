package views

import (
	"sort"
	"strings"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
)

// Purchase order extract columns.
const (
	ColSupplierName = "SupplierName"
	ColProject      = "Project"
	ColPendingValue = "PendingValue"
	ColFxRate       = "FxRate"
)

// SupplierPending sheet fixed columns.
const (
	SupplierHeader     = "SUPPLIER"
	PendingTotalHeader = "PENDING VALUE"
	GrandTotalLabel    = "TOTAL GENERAL"
)

// UnassignedProject is the bucket for orders without a project.
const UnassignedProject = "unassigned"

// BuildSupplierPending pivots pending purchase orders by supplier and
// project: home-currency value (PendingValue × FxRate), projects
// lower-cased with blanks folded into the unassigned bucket, a per-row
// total column, rows descending by total with upper-cased supplier names,
// and a closing TOTAL GENERAL row.
func BuildSupplierPending(po *extract.Table) (*extract.Table, error) {
	required := []string{ColSupplierName, ColProject, ColPendingValue, ColFxRate}
	if missing := po.MissingColumns(required...); len(missing) > 0 {
		return nil, &domain.SourceUnavailableError{Kind: extract.KindPurchaseOrders, Missing: missing}
	}

	pivot := make(map[string]map[string]float64)
	projectSet := make(map[string]bool)
	for i := 0; i < po.Len(); i++ {
		supplier := strings.ToUpper(strings.TrimSpace(po.Get(i, ColSupplierName)))
		project := strings.ToLower(strings.TrimSpace(po.Get(i, ColProject)))
		if project == "" {
			project = UnassignedProject
		}
		value := po.Float(i, ColPendingValue) * po.Float(i, ColFxRate)

		if pivot[supplier] == nil {
			pivot[supplier] = make(map[string]float64)
		}
		pivot[supplier][project] += value
		projectSet[project] = true
	}

	projects := make([]string, 0, len(projectSet))
	for p := range projectSet {
		projects = append(projects, p)
	}
	sort.Strings(projects)

	header := append([]string{SupplierHeader, PendingTotalHeader}, projects...)
	out := extract.NewTable(header...)

	type supplierRow struct {
		name  string
		total float64
	}
	rows := make([]supplierRow, 0, len(pivot))
	for name, byProject := range pivot {
		var total float64
		for _, v := range byProject {
			total += v
		}
		rows = append(rows, supplierRow{name: name, total: total})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].total != rows[b].total {
			return rows[a].total > rows[b].total
		}
		return rows[a].name < rows[b].name
	})

	columnTotals := make(map[string]float64, len(projects))
	var grandTotal float64
	for _, r := range rows {
		out.AppendRow()
		row := out.Len() - 1
		out.Set(row, SupplierHeader, r.name)
		out.Set(row, PendingTotalHeader, domain.FormatCell(r.total))
		for _, p := range projects {
			v := pivot[r.name][p]
			out.Set(row, p, domain.FormatCell(v))
			columnTotals[p] += v
		}
		grandTotal += r.total
	}

	out.AppendRow()
	totalRow := out.Len() - 1
	out.Set(totalRow, SupplierHeader, GrandTotalLabel)
	out.Set(totalRow, PendingTotalHeader, domain.FormatCell(grandTotal))
	for _, p := range projects {
		out.Set(totalRow, p, domain.FormatCell(columnTotals[p]))
	}

	return out, nil
}
