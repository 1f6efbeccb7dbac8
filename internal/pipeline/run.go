package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/config"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/doh"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/extract"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/ledger"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/storage"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/store"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/pkg/logger"
)

// fileDateLayout names extract files: "<prefix> <yyyymmdd>.<ext>".
const fileDateLayout = "20060102"

// Runner executes the daily pipeline against one workbook.
type Runner struct {
	cfg       *config.Config
	store     *store.Workbook
	publisher storage.ObjectStorage // nil when publication is not configured
	now       func() time.Time
}

// NewRunner wires a pipeline run. publisher may be nil.
func NewRunner(cfg *config.Config, wb *store.Workbook, publisher storage.ObjectStorage) *Runner {
	return &Runner{
		cfg:       cfg,
		store:     wb,
		publisher: publisher,
		now:       time.Now,
	}
}

// runState is the run-scoped context assembled incrementally by the steps.
// A step only reads fields filled in by earlier steps and only writes its
// own; once a step completes its fields are never mutated again.
type runState struct {
	date        time.Time
	fileDate    string
	displayDate string

	extracts  map[string]*extract.Table
	inventory *extract.Table // valued inventory lines
	behavior  *ledger.Behavior
	dohTotals doh.Totals
	chartPNG  []byte

	metrics domain.RunMetrics
}

// Run executes all update steps in order and returns the run report. The
// returned error is non-nil only for fatal conditions (inaccessible
// destination root, held run lock) that abort before any write.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	if _, err := os.Stat(r.cfg.Dest.Dir); err != nil {
		return nil, &domain.FatalConfigError{Path: r.cfg.Dest.Dir, Err: err}
	}

	release, err := acquireRunLock(r.cfg.Dest.Dir)
	if err != nil {
		return nil, err
	}
	defer release()

	date := r.now()
	if r.cfg.Run.DemoMode {
		if frozen, err := time.Parse(fileDateLayout, r.cfg.Run.DemoDate); err == nil {
			date = frozen
			logger.Log.Info().Str("date", r.cfg.Run.DemoDate).Msg("demo mode: clock frozen for data consistency")
		}
	}

	s := &runState{
		date:        date,
		fileDate:    date.Format(fileDateLayout),
		displayDate: date.Format(ledger.DateLayout),
	}
	s.metrics.Date = date
	s.metrics.DisplayDate = s.displayDate
	s.metrics.Target = r.cfg.Run.TargetValue

	steps := []struct {
		name string
		fn   func(context.Context, *runState) error
	}{
		{"load-extracts", r.loadExtracts},
		{"value-inventory", r.valueInventory},
		{"update-overview", r.updateOverview},
		{"update-abc", r.updateABC},
		{"update-transits", r.updateTransits},
		{"update-days-inventory", r.updateDaysInventory},
		{"update-category-history", r.updateCategoryHistory},
		{"update-warehouse-history", r.updateWarehouseHistory},
		{"update-behavior", r.updateBehavior},
		{"render-chart", r.renderChart},
		{"write-summary", r.writeSummary},
		{"update-monthly-balance", r.updateMonthlyBalance},
		{"update-supplier-pending", r.updateSupplierPending},
		{"mirror-receipts", r.mirrorReceipts},
		{"update-receipts-summary", r.updateReceiptsSummary},
		{"render-portal", r.renderPortal},
	}

	report := make(Report, 0, len(steps))
	for _, step := range steps {
		err := step.fn(ctx, s)
		if err != nil {
			logger.Log.Error().Err(err).Str("step", step.name).Msg("step failed")
		} else {
			logger.Log.Info().Str("step", step.name).Msg("step completed")
		}
		report = append(report, StepResult{Name: step.name, Err: err})
	}

	logger.Log.Info().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Str("date", s.displayDate).
		Msg("run finished")
	return report, nil
}
