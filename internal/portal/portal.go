// Package portal renders the static web page that republishes the day's
// headline metrics, and stages its sibling assets.
package portal

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/doh"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/internal/domain"
	"github.com/Gabriel123-aka/valor-inventario-pipeline/pkg/logger"
)

// TemplateName is the page template expected inside the template directory.
const TemplateName = "index.html.tmpl"

// Row is one pre-formatted table line.
type Row struct {
	Label string
	Value string
}

// Data is the view model consumed by the page template. All numbers arrive
// pre-formatted so the template stays free of logic.
type Data struct {
	Date              string
	TotalValue        string
	PhysicalValue     string
	TransitValue      string
	DOH               string
	DailyVariance     string
	YesterdayReceipts string
	MonthReceipts     string
	TopReceipts       []Row
	Months            []Row
}

// BuildData formats the run metrics for the page.
func BuildData(m domain.RunMetrics) Data {
	d := Data{
		Date:              m.DisplayDate,
		TotalValue:        money(m.TotalValue),
		PhysicalValue:     money(m.PhysicalValue),
		TransitValue:      money(m.TransitValue),
		DOH:               doh.NoSalesLabel,
		DailyVariance:     money(m.DailyVariance),
		YesterdayReceipts: money(m.YesterdayReceipts),
		MonthReceipts:     money(m.MonthReceipts),
	}
	if v, ok := m.ProjectedDOH.Float(); ok {
		d.DOH = humanize.CommafWithDigits(v, 2)
	}
	for _, r := range m.TopReceipts {
		d.TopReceipts = append(d.TopReceipts, Row{Label: strings.ToUpper(r.Name), Value: "$" + money(r.Value)})
	}
	for _, mv := range m.Months {
		d.Months = append(d.Months, Row{Label: mv.Label, Value: "$" + money(mv.Variance)})
	}
	return d
}

// Render substitutes the run metrics into the page template and writes the
// final page at destPath.
func Render(templateDir, destPath string, m domain.RunMetrics) error {
	tmplPath := filepath.Join(templateDir, TemplateName)
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to parse portal template %s: %w", tmplPath, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create portal page %s: %w", destPath, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, BuildData(m)); err != nil {
		return fmt.Errorf("failed to render portal page: %w", err)
	}
	return nil
}

// CopyAssets stages every non-template file of the template directory next
// to the rendered page. A missing asset directory is not an error.
func CopyAssets(templateDir, destDir string) error {
	entries, err := os.ReadDir(templateDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read asset directory %s: %w", templateDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}
		if err := copyFile(filepath.Join(templateDir, entry.Name()), filepath.Join(destDir, entry.Name())); err != nil {
			return err
		}
		logger.Log.Debug().Str("asset", entry.Name()).Msg("portal asset staged")
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open asset %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create asset %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy asset %s: %w", src, err)
	}
	return nil
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 0)
}
