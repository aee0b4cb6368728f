package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dataprof/adapters/csvfile"
	"dataprof/adapters/sqlite"
	"dataprof/app"
	"dataprof/domain/profile"
	"dataprof/internal/config"
	"dataprof/internal/logx"
	"dataprof/ports"
	"dataprof/ui"
)

var version = "dev"

func main() {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "dataprof",
		Short: "CSV profiling with calendar enrichment and IQR outlier fences",
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newHistoryCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProfileCmd() *cobra.Command {
	var outDir string
	var topN int
	var bins int
	var noCharts bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "profile [csv-file]",
		Short: "Profile a CSV file and write summaries, charts and an enriched copy",
		Long: `Profile a CSV file: infer column types, derive day_of_week, is_holiday
and is_weekend from the date column, compute missingness, frequency tables
and numeric summaries with Tukey IQR fences, and export everything as CSVs,
PNG charts, a Markdown report and an XLSX workbook.

Example: dataprof profile clinic_visits.csv --out ./profile`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Output.Dir = outDir
			}
			if cmd.Flags().Changed("top-n") {
				cfg.Output.TopNCategories = topN
			}
			if cmd.Flags().Changed("bins") {
				cfg.Output.HistogramBins = bins
			}
			if noCharts {
				cfg.Output.Charts = false
			}
			if noHistory {
				cfg.History.Enabled = false
			}
			return runProfile(cmd, args[0], cfg)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory for all artifacts")
	cmd.Flags().IntVar(&topN, "top-n", 12, "Categories shown per bar chart")
	cmd.Flags().IntVar(&bins, "bins", 20, "Histogram bin count")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "Skip PNG chart rendering")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording the run in the history database")

	return cmd
}

func runProfile(cmd *cobra.Command, sourceFile string, cfg *config.Config) error {
	log := logx.NewDefaultLogger()

	var history ports.HistoryRepository
	if cfg.History.Enabled {
		dbPath := cfg.History.DBPath
		if dbPath == "" {
			dbPath = filepath.Join(cfg.Output.Dir, "profile_history.db")
		}
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return err
		}
		repo, err := sqlite.Open(dbPath)
		if err != nil {
			log.Warn("run history disabled: %v", err)
		} else {
			history = repo
			defer repo.Close()
		}
	}

	reader := csvfile.NewReader(sourceFile, log)
	service := app.NewProfileService(reader, history, cfg, log)

	report, err := service.Run(cmd.Context(), app.ProfileRequest{
		SourceFile: sourceFile,
		OutputDir:  cfg.Output.Dir,
	})
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent profiling runs from the history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dbPath := cfg.History.DBPath
			if dbPath == "" {
				dbPath = filepath.Join(cfg.Output.Dir, "profile_history.db")
			}

			repo, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			runs, err := repo.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			fmt.Printf("%-38s %-30s %8s %8s %10s %-20s\n", "RUN ID", "SOURCE", "ROWS", "COLS", "DURATION", "CREATED")
			for _, r := range runs {
				fmt.Printf("%-38s %-30s %8d %8d %8dms %-20s\n",
					r.RunID, filepath.Base(r.SourceFile), r.RowCount, r.ColumnCount,
					r.DurationMs, r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to list")

	return cmd
}

func newServeCmd() *cobra.Command {
	var dir string
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Markdown report and output files over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = cfg.Output.Dir
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			return ui.NewServer(dir, logx.NewDefaultLogger()).Start(port)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory to serve")
	cmd.Flags().StringVar(&port, "port", "8080", "HTTP port")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dataprof version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("dataprof", version)
		},
	}
}

// printReport mirrors the report on the console: types, missingness, a
// preview of the numeric summaries, category counts and the file manifest.
func printReport(report *profile.Report) {
	fmt.Println("=== VARIABLE NAMES AND TYPES ===")
	for _, t := range report.Types {
		fmt.Printf("%-24s %s\n", t.Variable, t.Kind)
	}

	fmt.Println()
	fmt.Println("=== MISSING DATA SUMMARY ===")
	fmt.Printf("%-24s %8s %10s\n", "COLUMN", "MISSING", "PCT")
	for _, e := range report.Missingness {
		fmt.Printf("%-24s %8d %10s\n", e.Column, e.MissingCount, num(e.MissingPct))
	}

	fmt.Println()
	fmt.Println("=== NUMERIC SUMMARY (IQR FENCES) ===")
	if len(report.Numeric) == 0 {
		fmt.Println("No numeric columns.")
	} else {
		preview := report.Numeric
		if len(preview) > 5 {
			preview = preview[:5]
		}
		fmt.Printf("%-20s %6s %10s %10s %10s %10s %10s %10s %10s\n",
			"VARIABLE", "COUNT", "MEAN", "Q1", "MEDIAN", "Q3", "LO FENCE", "HI FENCE", "OUTLIER%")
		for _, s := range preview {
			fmt.Printf("%-20s %6d %10s %10s %10s %10s %10s %10s %10s\n",
				s.Variable, s.Count, num(s.Mean), num(s.Q1), num(s.Median),
				num(s.Q3), num(s.LowerFence), num(s.UpperFence), num(s.OutlierPct))
		}
		if rest := len(report.Numeric) - len(preview); rest > 0 {
			fmt.Printf("... and %d more (see numeric_summary_iqr.csv)\n", rest)
		}
	}

	if len(report.Shapes) > 0 {
		fmt.Println()
		fmt.Println("=== DISTRIBUTION SHAPE ===")
		fmt.Printf("%-20s %10s %10s %10s %8s\n", "VARIABLE", "SKEW", "KURTOSIS", "APPROX P", "NORMAL?")
		for _, s := range report.Shapes {
			fmt.Printf("%-20s %10.3f %10.3f %10.4f %8t\n",
				s.Variable, s.Skewness, s.Kurtosis, s.ShapiroP, s.IsNormal)
		}
	}

	fmt.Println()
	fmt.Println("=== FREQUENCY TABLES ===")
	for _, ft := range report.Frequencies {
		fmt.Printf("%-24s %d categories\n", ft.Column, len(ft.Entries))
	}

	fmt.Println()
	fmt.Println("=== FILES SAVED ===")
	for _, f := range report.Manifest.Files {
		status := "created"
		if !f.Created {
			status = "NOT FOUND"
		}
		fmt.Printf("%-60s %s\n", f.Path, status)
	}

	fmt.Println()
	fmt.Printf("Profiled %d rows x %d columns in %s (run %s)\n",
		report.Manifest.RowCount, report.Manifest.ColumnCount,
		report.Manifest.Duration.Round(time.Millisecond), report.Manifest.RunID)
}

func num(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
