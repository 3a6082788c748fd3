// Package report projects an analysis result into its output forms: a
// plain-text summary, a machine-readable JSON document, and an HTML view
// with chart images. Renderers never mutate the result; each projection is
// independent of the others.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/enablerdao/shardx-perf/pkg/analysis"
	"github.com/enablerdao/shardx-perf/pkg/config"
)

// Report output filenames inside the output directory
const (
	TextReportName = "bottleneck_analysis.txt"
	JSONReportName = "bottleneck_analysis.json"
	HTMLReportName = "bottleneck_analysis.html"
)

// Generator writes the requested report formats for one analysis result.
type Generator struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(cfg *config.Config, logger zerolog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Generate renders every requested format against the read-only result and
// returns the paths written. Chart failures degrade to a missing image;
// a report file that cannot be written is a run-level failure, though the
// remaining formats are still attempted.
func (g *Generator) Generate(result *analysis.Result) ([]string, error) {
	generatedAt := time.Now()

	var charts []Chart
	if g.cfg.Output.Charts {
		var failures []error
		charts, failures = RenderCharts(result, g.cfg.Output.Dir)
		for _, err := range failures {
			g.logger.Warn().Err(err).Msg("Chart rendering failed")
		}
	}

	type rendered struct {
		format string
		path   string
		err    error
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		outputs = make(map[string]rendered)
	)

	render := func(format string, fn func() (string, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path, err := fn()
			mu.Lock()
			outputs[format] = rendered{format: format, path: path, err: err}
			mu.Unlock()
		}()
	}

	if g.cfg.HasFormat("text") {
		render("text", func() (string, error) { return g.writeText(result, generatedAt) })
	}
	if g.cfg.HasFormat("json") {
		render("json", func() (string, error) { return g.writeJSON(result, charts, generatedAt) })
	}
	if g.cfg.HasFormat("html") {
		render("html", func() (string, error) { return g.writeHTML(result, charts, generatedAt) })
	}

	wg.Wait()

	var paths []string
	var errs []error
	for _, format := range []string{"text", "json", "html"} {
		output, ok := outputs[format]
		if !ok {
			continue
		}
		if output.err != nil {
			g.logger.Error().Err(output.err).Str("format", format).Msg("Report generation failed")
			errs = append(errs, output.err)
			continue
		}
		g.logger.Info().Str("format", format).Str("path", output.path).Msg("Report written")
		paths = append(paths, output.path)
	}

	return paths, errors.Join(errs...)
}

func (g *Generator) writeText(result *analysis.Result, generatedAt time.Time) (string, error) {
	path := filepath.Join(g.cfg.Output.Dir, TextReportName)
	if err := os.WriteFile(path, []byte(renderText(result, generatedAt)), 0644); err != nil {
		return "", fmt.Errorf("failed to write text report: %w", err)
	}
	return path, nil
}

func (g *Generator) writeJSON(result *analysis.Result, charts []Chart, generatedAt time.Time) (string, error) {
	data, err := renderJSON(result, charts, generatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON report: %w", err)
	}

	path := filepath.Join(g.cfg.Output.Dir, JSONReportName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON report: %w", err)
	}
	return path, nil
}

func (g *Generator) writeHTML(result *analysis.Result, charts []Chart, generatedAt time.Time) (string, error) {
	var buf bytes.Buffer
	if err := renderHTML(&buf, result, charts, generatedAt); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}

	path := filepath.Join(g.cfg.Output.Dir, HTMLReportName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write HTML report: %w", err)
	}
	return path, nil
}
