package ui

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"dataprof/internal/logx"
)

// Server serves a profiling run's output directory in the browser: the
// rendered Markdown report at / and the raw artifacts (CSVs, charts,
// workbook) under /files/.
type Server struct {
	dir    string
	log    *logx.Logger
	router chi.Router
}

// NewServer creates a viewer for the given output directory.
func NewServer(dir string, log *logx.Logger) *Server {
	s := &Server{dir: dir, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleReport)
	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(dir))))
	s.router = r

	return s
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port string) error {
	s.log.Info("report viewer listening on http://localhost:%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	source, err := os.ReadFile(filepath.Join(s.dir, "profile_report.md"))
	if err != nil {
		http.Error(w, "no profile_report.md in "+s.dir+"; run a profile first", http.StatusNotFound)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	body := markdown.ToHTML(source, p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, pageTemplate, body)
}

// pageTemplate wraps the rendered report with minimal styling so tables
// are readable without any static assets.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Data Profile Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #cbd5e1; padding: 0.35rem 0.7rem; text-align: left; }
th { background: #f1f5f9; }
code { background: #f1f5f9; padding: 0.1rem 0.3rem; border-radius: 3px; }
a { color: #2563eb; }
</style>
</head>
<body>
%s
<hr>
<p><a href="/files/">Browse raw output files</a></p>
</body>
</html>
`
