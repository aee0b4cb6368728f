package markdownreport

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/nao1215/markdown"

	"dataprof/domain/profile"
	"dataprof/internal/errors"
)

// Writer renders a profile report as a single Markdown document, suitable
// for sharing or for the built-in report viewer.
type Writer struct{}

// NewWriter creates a report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the report to the given path.
func (w *Writer) Write(path string, report *profile.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	defer file.Close()

	md := markdown.NewMarkdown(file)

	w.writeHeader(md, report)
	w.writeTypes(md, report)
	w.writeMissingness(md, report)
	w.writeNumeric(md, report)
	w.writeShapes(md, report)
	w.writeFrequencies(md, report)
	w.writeFiles(md, report)

	if err := md.Build(); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

func (w *Writer) writeHeader(md *markdown.Markdown, report *profile.Report) {
	m := report.Manifest
	md.H1("Data Profile Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", m.RunID.String()},
			{"Source", "`" + m.SourceFile + "`"},
			{"Rows", strconv.Itoa(m.RowCount)},
			{"Columns", strconv.Itoa(m.ColumnCount)},
			{"Started", m.StartedAt.Format("2006-01-02 15:04:05")},
			{"Duration", m.Duration.String()},
		},
	})
	md.PlainText("")
}

func (w *Writer) writeTypes(md *markdown.Markdown, report *profile.Report) {
	md.H2("Variable Types")
	md.PlainText("")
	rows := make([][]string, 0, len(report.Types))
	for _, t := range report.Types {
		rows = append(rows, []string{t.Variable, string(t.Kind)})
	}
	md.Table(markdown.TableSet{Header: []string{"Variable", "Kind"}, Rows: rows})
	md.PlainText("")
}

func (w *Writer) writeMissingness(md *markdown.Markdown, report *profile.Report) {
	md.H2("Missingness")
	md.PlainText("")
	rows := make([][]string, 0, len(report.Missingness))
	for _, e := range report.Missingness {
		rows = append(rows, []string{e.Column, strconv.Itoa(e.MissingCount), cell(e.MissingPct)})
	}
	md.Table(markdown.TableSet{Header: []string{"Column", "Missing", "Missing %"}, Rows: rows})
	md.PlainText("")
}

func (w *Writer) writeNumeric(md *markdown.Markdown, report *profile.Report) {
	md.H2("Numeric Summary and IQR Fences")
	md.PlainText("")
	if len(report.Numeric) == 0 {
		md.PlainText("No numeric columns.")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(report.Numeric))
	for _, s := range report.Numeric {
		rows = append(rows, []string{
			s.Variable, strconv.Itoa(s.Count), cell(s.Mean), cell(s.Std),
			cell(s.Min), cell(s.Q1), cell(s.Median), cell(s.Q3), cell(s.Max),
			cell(s.IQR), cell(s.LowerFence), cell(s.UpperFence), cell(s.OutlierPct),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Variable", "Count", "Mean", "Std", "Min", "Q1", "Median", "Q3", "Max", "IQR", "Lower Fence", "Upper Fence", "Outlier %"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *Writer) writeShapes(md *markdown.Markdown, report *profile.Report) {
	if len(report.Shapes) == 0 {
		return
	}
	md.H2("Distribution Shape")
	md.PlainText("")
	rows := make([][]string, 0, len(report.Shapes))
	for _, s := range report.Shapes {
		rows = append(rows, []string{
			s.Variable,
			fmt.Sprintf("%.3f", s.Skewness),
			fmt.Sprintf("%.3f", s.Kurtosis),
			fmt.Sprintf("%.4f", s.ShapiroP),
			strconv.FormatBool(s.IsNormal),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Variable", "Skewness", "Kurtosis", "Approx. p", "Normal?"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *Writer) writeFrequencies(md *markdown.Markdown, report *profile.Report) {
	md.H2("Frequency Tables")
	md.PlainText("")
	items := make([]string, 0, len(report.Frequencies))
	for _, ft := range report.Frequencies {
		items = append(items, fmt.Sprintf("%s: %d categories (see `freq_%s.csv`)", ft.Column, len(ft.Entries), ft.Column))
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (w *Writer) writeFiles(md *markdown.Markdown, report *profile.Report) {
	md.H2("Files Saved")
	md.PlainText("")
	items := make([]string, 0, len(report.Manifest.Files))
	for _, f := range report.Manifest.Files {
		status := "created"
		if !f.Created {
			status = "not found"
		}
		items = append(items, fmt.Sprintf("`%s` (%s)", f.Path, status))
	}
	md.BulletList(items...)
	md.PlainText("")
}

func cell(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
