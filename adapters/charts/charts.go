package charts

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dataprof/domain/dataset"
	"dataprof/domain/profile"
	"dataprof/internal/errors"
	"dataprof/internal/logx"
)

// Renderer draws the PNG charts of a profiling run: a missingness bar
// chart, a histogram and boxplot per numeric column, and a top-N category
// bar chart per categorical column.
type Renderer struct {
	Bins int
	TopN int
	log  *logx.Logger
}

// NewRenderer creates a chart renderer.
func NewRenderer(bins, topN int, log *logx.Logger) *Renderer {
	return &Renderer{Bins: bins, TopN: topN, log: log}
}

// RenderAll draws every chart into outDir. Chart jobs are independent and
// run concurrently; the first failure cancels the rest. Columns with no
// drawable data are skipped with a warning rather than failing the run.
func (r *Renderer) RenderAll(ctx context.Context, outDir string, table *dataset.Table, report *profile.Report) error {
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(4)

	group.Go(func() error {
		return r.missingnessBar(filepath.Join(outDir, "missingness_bar.png"), report.Missingness)
	})

	for _, col := range table.Columns() {
		col := col
		switch col.Kind {
		case dataset.KindNumeric:
			sample := col.NonMissingFloats()
			if len(sample) == 0 {
				r.log.Warn("skipping charts for %s: no non-missing values", col.Name)
				continue
			}
			group.Go(func() error {
				return r.histogram(filepath.Join(outDir, "hist_"+col.Name+".png"), col.Name, sample)
			})
			group.Go(func() error {
				return r.boxplot(filepath.Join(outDir, "box_"+col.Name+".png"), col.Name, sample)
			})
		default:
			ft := findFrequency(report.Frequencies, col.Name)
			if ft == nil || len(ft.Entries) == 0 {
				continue
			}
			group.Go(func() error {
				return r.categoryBar(filepath.Join(outDir, "bar_"+col.Name+".png"), col.Name, *ft)
			})
		}
	}

	return group.Wait()
}

func (r *Renderer) missingnessBar(path string, entries []profile.MissingnessEntry) error {
	labels := make([]string, len(entries))
	values := make(plotter.Values, len(entries))
	for i, e := range entries {
		labels[i] = e.Column
		values[i] = e.MissingPct
	}
	return saveBar(path, "Percent Missing by Column", "Column", "Percent Missing", labels, values)
}

func (r *Renderer) histogram(path, column string, sample []float64) error {
	p := plot.New()
	p.Title.Text = "Histogram - " + column
	p.X.Label.Text = column
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(sample), r.Bins)
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	p.Add(h)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

func (r *Renderer) boxplot(path, column string, sample []float64) error {
	p := plot.New()
	p.Title.Text = "Boxplot - " + column
	p.Y.Label.Text = column

	b, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(sample))
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	p.Add(b)
	p.NominalX(column)

	if err := p.Save(4*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

func (r *Renderer) categoryBar(path, column string, ft profile.FrequencyTable) error {
	top := ft.Entries
	if len(top) > r.TopN {
		top = top[:r.TopN]
	}

	labels := make([]string, len(top))
	values := make(plotter.Values, len(top))
	for i, e := range top {
		labels[i] = e.Label
		values[i] = float64(e.Count)
	}

	title := fmt.Sprintf("Top %d Categories - %s", len(top), column)
	return saveBar(path, title, column, "Count", labels, values)
}

func saveBar(path, title, xlabel, ylabel string, labels []string, values plotter.Values) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 0.785 // 45 degrees, long labels overlap otherwise
	p.X.Tick.Label.XAlign = -0.9
	p.X.Tick.Label.YAlign = -0.5

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

func findFrequency(tables []profile.FrequencyTable, column string) *profile.FrequencyTable {
	for i := range tables {
		if tables[i].Column == column {
			return &tables[i]
		}
	}
	return nil
}
