package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataprof/adapters/charts"
	"dataprof/adapters/csvfile"
	"dataprof/adapters/excel"
	"dataprof/adapters/markdownreport"
	"dataprof/domain/calendar"
	"dataprof/domain/core"
	"dataprof/domain/dataset"
	"dataprof/domain/profile"
	"dataprof/internal/analysis"
	"dataprof/internal/coerce"
	"dataprof/internal/config"
	"dataprof/internal/enrich"
	"dataprof/internal/errors"
	"dataprof/internal/logx"
	"dataprof/ports"
)

// ProfileService runs the end-to-end profiling pipeline: load, coerce,
// enrich with calendar features, summarize, export, record history.
type ProfileService struct {
	reader  ports.TableReader
	history ports.HistoryRepository // nil disables run history
	cfg     *config.Config
	log     *logx.Logger
}

// NewProfileService creates the service. history may be nil.
func NewProfileService(reader ports.TableReader, history ports.HistoryRepository, cfg *config.Config, log *logx.Logger) *ProfileService {
	return &ProfileService{reader: reader, history: history, cfg: cfg, log: log}
}

// ProfileRequest describes one profiling run.
type ProfileRequest struct {
	SourceFile string
	OutputDir  string
}

// Run executes the pipeline and returns the complete report. The report's
// manifest lists every expected output file with its on-disk status, so a
// partially failed export is visible rather than silent.
func (s *ProfileService) Run(ctx context.Context, req ProfileRequest) (*profile.Report, error) {
	startedAt := time.Now()

	raw, err := s.reader.Read()
	if err != nil {
		return nil, err
	}

	dateColumn := dataset.DetectDateColumn(raw.Headers)
	s.log.Debug("using %q as the date column", dateColumn)

	coercer := coerce.New(s.cfg.Coercion)
	table := coercer.ResolveTable(raw, dateColumn)

	cal := calendar.Build(enrich.DistinctYears(table.Column(dateColumn)))
	enrich.DeriveCalendarFeatures(table, dateColumn, cal)

	report := s.computeReport(table)
	report.Manifest = profile.Manifest{
		RunID:       core.NewRunID(),
		SourceFile:  req.SourceFile,
		RowCount:    table.RowCount(),
		ColumnCount: table.ColumnCount(),
		StartedAt:   startedAt,
	}

	if len(report.Numeric) == 0 {
		s.log.Warn("%s: no numeric columns found", errors.CodeNoNumericColumns)
	}

	if err := s.export(ctx, req, table, report); err != nil {
		return nil, err
	}

	report.Manifest.Duration = time.Since(startedAt)
	report.Manifest.Files = statFiles(s.expectedFiles(req, table, report))

	if s.history != nil {
		if err := s.history.SaveRun(ctx, report.Manifest, report.Numeric); err != nil {
			// History is bookkeeping, not the product of the run.
			s.log.Warn("failed to record run history: %v", err)
		}
	}

	return report, nil
}

// computeReport derives every summary table from the enriched dataset.
func (s *ProfileService) computeReport(table *dataset.Table) *profile.Report {
	report := &profile.Report{}
	total := table.RowCount()

	for _, col := range table.Columns() {
		report.Types = append(report.Types, profile.ColumnType{Variable: col.Name, Kind: col.Kind})
	}

	report.Missingness = analysis.Missingness(table)

	for _, col := range table.Columns() {
		col := col
		switch col.Kind {
		case dataset.KindNumeric:
			report.Numeric = append(report.Numeric, analysis.SummarizeNumeric(col.Name, col.Values, total))
			if sample := col.NonMissingFloats(); len(sample) > 0 {
				report.Shapes = append(report.Shapes, analysis.Shape(col.Name, sample))
			}
		default:
			// Timestamp and categorical columns both get frequency tables;
			// the date column's distinct dates are categories like any other.
			report.Frequencies = append(report.Frequencies, analysis.Tabulate(&col, total))
		}
	}

	return report
}

func (s *ProfileService) export(ctx context.Context, req ProfileRequest, table *dataset.Table, report *profile.Report) error {
	outDir := req.OutputDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.ExportFailed(outDir, err)
	}

	if err := csvfile.WriteEnriched(filepath.Join(outDir, enrichedName(req.SourceFile)), table); err != nil {
		return err
	}
	if err := csvfile.WriteMissingness(filepath.Join(outDir, "missingness_summary.csv"), report.Missingness); err != nil {
		return err
	}
	if err := csvfile.WriteNumericSummaries(filepath.Join(outDir, "numeric_summary_iqr.csv"), report.Numeric); err != nil {
		return err
	}
	for _, ft := range report.Frequencies {
		if err := csvfile.WriteFrequencyTable(filepath.Join(outDir, "freq_"+ft.Column+".csv"), ft); err != nil {
			return err
		}
	}

	if s.cfg.Output.Charts {
		renderer := charts.NewRenderer(s.cfg.Output.HistogramBins, s.cfg.Output.TopNCategories, s.log)
		if err := renderer.RenderAll(ctx, outDir, table, report); err != nil {
			return err
		}
	}

	if err := markdownreport.NewWriter().Write(filepath.Join(outDir, "profile_report.md"), report); err != nil {
		return err
	}
	if err := excel.NewWorkbookWriter().Write(filepath.Join(outDir, "profile_report.xlsx"), report); err != nil {
		return err
	}

	return nil
}

// expectedFiles lists every file the run should have produced, in a stable
// order, for the manifest.
func (s *ProfileService) expectedFiles(req ProfileRequest, table *dataset.Table, report *profile.Report) []string {
	outDir := req.OutputDir
	files := []string{
		filepath.Join(outDir, enrichedName(req.SourceFile)),
		filepath.Join(outDir, "missingness_summary.csv"),
		filepath.Join(outDir, "numeric_summary_iqr.csv"),
	}
	for _, ft := range report.Frequencies {
		files = append(files, filepath.Join(outDir, "freq_"+ft.Column+".csv"))
	}
	if s.cfg.Output.Charts {
		files = append(files, filepath.Join(outDir, "missingness_bar.png"))
		for _, col := range table.Columns() {
			if col.Kind == dataset.KindNumeric {
				files = append(files,
					filepath.Join(outDir, "hist_"+col.Name+".png"),
					filepath.Join(outDir, "box_"+col.Name+".png"))
			}
		}
		for _, ft := range report.Frequencies {
			files = append(files, filepath.Join(outDir, "bar_"+ft.Column+".png"))
		}
	}
	files = append(files,
		filepath.Join(outDir, "profile_report.md"),
		filepath.Join(outDir, "profile_report.xlsx"))
	return files
}

func statFiles(paths []string) []profile.FileEntry {
	entries := make([]profile.FileEntry, len(paths))
	for i, p := range paths {
		_, err := os.Stat(p)
		entries[i] = profile.FileEntry{Path: p, Created: err == nil}
	}
	return entries
}

// enrichedName derives the enriched-copy filename from the source file,
// e.g. visits.csv -> visits_enriched.csv.
func enrichedName(sourceFile string) string {
	base := filepath.Base(sourceFile)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_enriched.csv"
}
