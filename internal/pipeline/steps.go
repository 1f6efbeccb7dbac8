package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/chart"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/doh"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/ledger"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/portal"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/rollup"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/store"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/valuation"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/views"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/pkg/logger"
)

func (r *Runner) loadExtracts(ctx context.Context, s *runState) error {
	tables, err := extract.LoadAll(ctx, r.cfg.Source.Dir, s.fileDate)
	s.extracts = tables
	return err
}

func (r *Runner) valueInventory(_ context.Context, s *runState) error {
	inv := s.extracts[extract.KindInventory]
	if inv == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindInventory}
	}
	if err := valuation.AddValueColumn(inv); err != nil {
		return err
	}
	s.inventory = inv
	logger.Log.Info().Float64("total", valuation.TotalValue(inv)).Msg("inventory valued")
	return nil
}

func (r *Runner) updateOverview(_ context.Context, s *runState) error {
	if s.inventory == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindInventory}
	}
	sheet, err := r.store.ReadSheet(store.SheetOverview)
	if err != nil {
		return err
	}
	if err := views.UpdateOverview(sheet, valuation.SumByWarehouse(s.inventory)); err != nil {
		return err
	}
	return r.store.WriteSheet(store.SheetOverview, sheet)
}

func (r *Runner) updateABC(_ context.Context, s *runState) error {
	if s.inventory == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindInventory}
	}
	sheet, err := r.store.ReadSheet(store.SheetABC)
	if err != nil {
		return err
	}
	if err := views.UpdateABC(sheet, valuation.SumByWarehouseClass(s.inventory)); err != nil {
		return err
	}
	return r.store.WriteSheet(store.SheetABC, sheet)
}

func (r *Runner) updateTransits(_ context.Context, s *runState) error {
	transits := s.extracts[extract.KindTransits]
	if transits == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindTransits}
	}
	sheet, total, err := valuation.PrepareTransits(transits)
	if err != nil {
		return err
	}
	s.metrics.TransitValue = total
	return r.store.WriteSheet(store.SheetTransits, sheet)
}

func (r *Runner) updateDaysInventory(_ context.Context, s *runState) error {
	src := s.extracts[extract.KindDOH]
	if src == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindDOH}
	}
	sheet := src.Clone()
	totals, err := doh.Enrich(sheet)
	if err != nil {
		return err
	}
	s.dohTotals = totals
	s.metrics.ProjectedDOH = totals.ProjectedDOH
	s.metrics.ImmediateDOH = totals.ImmediateDOH
	return r.store.WriteSheet(store.SheetDaysInventory, sheet)
}

func (r *Runner) updateCategoryHistory(_ context.Context, s *runState) error {
	if s.inventory == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindInventory}
	}
	overview, err := r.store.ReadSheet(store.SheetOverview)
	if err != nil {
		return err
	}
	sums := valuation.SumByCategory(s.inventory, views.PrincipalWarehouses(overview))

	history, err := r.store.ReadSheet(store.SheetCategoryHistory)
	if err != nil {
		return err
	}
	if history.ColumnIndex(ledger.ColCategory) < 0 {
		history.AddColumn(ledger.ColCategory)
	}
	ledger.UpdateCategoryHistory(history, s.displayDate, sums)
	return r.store.WriteSheet(store.SheetCategoryHistory, history)
}

func (r *Runner) updateWarehouseHistory(_ context.Context, s *runState) error {
	if s.inventory == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindInventory}
	}
	history, err := r.store.ReadSheet(store.SheetWarehouseHistory)
	if err != nil {
		return err
	}
	if history.ColumnIndex(ledger.ColWarehouse) < 0 {
		history.AddColumn(ledger.ColWarehouse)
	}
	ledger.UpdateWarehouseHistory(history, s.displayDate, valuation.SumByWarehouse(s.inventory))
	return r.store.WriteSheet(store.SheetWarehouseHistory, history)
}

// updateBehavior is the ledger state machine: compute today's total from the
// principal warehouses plus transits, check for a duplicate date, prepend or
// skip, persist with normalized dates.
func (r *Runner) updateBehavior(_ context.Context, s *runState) error {
	overview, err := r.store.ReadSheet(store.SheetOverview)
	if err != nil {
		return err
	}
	s.metrics.PhysicalValue = views.PrincipalValue(overview)
	s.metrics.TotalValue = s.metrics.PhysicalValue + s.metrics.TransitValue

	sheet, err := r.store.ReadSheet(store.SheetBehavior)
	if err != nil {
		return err
	}
	behavior := ledger.ParseBehavior(sheet)

	variance, inserted := behavior.Upsert(s.displayDate, s.metrics.TotalValue, s.dohTotals.ProjectedDOH, r.cfg.Run.TargetValue)
	s.metrics.DailyVariance = variance
	s.behavior = behavior

	if !inserted {
		logger.Log.Info().Str("date", s.displayDate).Msg("behavior record already exists, keeping stored variance")
		return nil
	}
	return r.store.WriteSheet(store.SheetBehavior, behavior.Table())
}

func (r *Runner) renderChart(_ context.Context, s *runState) error {
	if s.behavior == nil {
		return fmt.Errorf("behavior ledger unavailable, nothing to chart")
	}
	png, err := chart.Render(s.behavior.Records(), r.cfg.Run.ChartDays)
	if err != nil {
		return err
	}
	s.chartPNG = png

	path := filepath.Join(r.cfg.Dest.Dir, r.cfg.Dest.ChartName)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	logger.Log.Info().Str("path", path).Msg("trend chart rendered")
	return nil
}

func (r *Runner) writeSummary(_ context.Context, s *runState) error {
	return r.store.WriteSummary(s.metrics)
}

func (r *Runner) updateMonthlyBalance(_ context.Context, s *runState) error {
	if s.behavior == nil {
		return fmt.Errorf("behavior ledger unavailable, cannot build monthly window")
	}
	s.metrics.Months = rollup.MonthlyWindow(s.behavior.Records(), s.date, rollup.WindowMonths)
	if err := r.store.WriteMonthWindow(s.metrics.Months); err != nil {
		return err
	}
	if s.chartPNG != nil {
		return r.store.EmbedChart(s.chartPNG)
	}
	return nil
}

func (r *Runner) updateSupplierPending(_ context.Context, s *runState) error {
	po := s.extracts[extract.KindPurchaseOrders]
	if po == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindPurchaseOrders}
	}
	sheet, err := views.BuildSupplierPending(po)
	if err != nil {
		return err
	}
	return r.store.WriteSheet(store.SheetSupplierPending, sheet)
}

func (r *Runner) mirrorReceipts(_ context.Context, s *runState) error {
	rc := s.extracts[extract.KindReceipts]
	if rc == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindReceipts}
	}
	return r.store.WriteSheet(store.SheetReceipts, rc)
}

func (r *Runner) updateReceiptsSummary(_ context.Context, s *runState) error {
	rc := s.extracts[extract.KindReceipts]
	if rc == nil {
		return &domain.SourceUnavailableError{Kind: extract.KindReceipts}
	}

	top, err := views.TopReceipts(rc, s.date, 10)
	if err != nil {
		return err
	}
	lastDay, monthToDate, err := views.ReceiptPeriodSums(rc, s.date)
	if err != nil {
		return err
	}
	s.metrics.TopReceipts = top
	s.metrics.YesterdayReceipts = lastDay
	s.metrics.MonthReceipts = monthToDate

	if err := r.store.WriteTopReceipts(top); err != nil {
		return err
	}
	return r.store.WriteReceiptPeriodSums(lastDay, monthToDate)
}

func (r *Runner) renderPortal(ctx context.Context, s *runState) error {
	pagePath := filepath.Join(r.cfg.Dest.Dir, r.cfg.Dest.PortalName)
	if err := portal.Render(r.cfg.Dest.TemplateDir, pagePath, s.metrics); err != nil {
		return err
	}
	if err := portal.CopyAssets(r.cfg.Dest.TemplateDir, r.cfg.Dest.Dir); err != nil {
		return err
	}

	if r.publisher == nil {
		return nil
	}
	uploads := []struct {
		key, path, contentType string
	}{
		{r.cfg.Dest.PortalName, pagePath, "text/html"},
		{r.cfg.Dest.ChartName, filepath.Join(r.cfg.Dest.Dir, r.cfg.Dest.ChartName), "image/png"},
		{r.cfg.Dest.WorkbookName, r.store.Path(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	}
	for _, u := range uploads {
		if _, err := os.Stat(u.path); err != nil {
			continue
		}
		if err := r.publisher.UploadFile(ctx, u.key, u.path, u.contentType); err != nil {
			return err
		}
		logger.Log.Info().Str("key", u.key).Msg("artifact published")
	}
	return nil
}
