package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/enablerdao/shardx-perf/pkg/analysis"
)

// Chart is a rendering directive for one generated chart image. Path is
// relative to the output directory so HTML reports can reference it.
type Chart struct {
	Title       string `json:"title"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// RenderCharts draws one throughput chart per facet with data, one
// scalability chart per facet with at least one scalability sample, and a
// bottleneck summary chart. Charts are derived fresh from the result on
// every call. A facet without data is simply omitted; a failed render
// drops that single chart.
func RenderCharts(result *analysis.Result, outputDir string) ([]Chart, []error) {
	charts := []Chart{}
	var failures []error

	for _, facet := range result.Facets() {
		if facet.Analysis == nil || len(facet.Analysis.Samples) == 0 {
			continue
		}

		name := facet.Name + "_throughput.png"
		if err := renderThroughputChart(facet, filepath.Join(outputDir, name)); err != nil {
			failures = append(failures, fmt.Errorf("throughput chart for %s: %w", facet.Name, err))
		} else {
			charts = append(charts, Chart{
				Title:       facet.Title,
				Path:        name,
				Description: fmt.Sprintf("Throughput (%s) as the workload size grows.", facet.Unit),
			})
		}

		if len(facet.Analysis.Scalability) == 0 {
			continue
		}

		name = facet.Name + "_scalability.png"
		if err := renderScalabilityChart(facet, filepath.Join(outputDir, name)); err != nil {
			failures = append(failures, fmt.Errorf("scalability chart for %s: %w", facet.Name, err))
		} else {
			charts = append(charts, Chart{
				Title:       facet.Title + " Scalability",
				Path:        name,
				Description: "Scaling efficiency per workload step. Values close to 1.0 are ideal.",
			})
		}
	}

	if len(result.Bottlenecks) > 0 {
		name := "bottleneck_summary.png"
		if err := renderBottleneckSummaryChart(result, filepath.Join(outputDir, name)); err != nil {
			failures = append(failures, fmt.Errorf("bottleneck summary chart: %w", err))
		} else {
			charts = append(charts, Chart{
				Title:       "Bottleneck Summary",
				Path:        name,
				Description: "Number of detected bottlenecks per type.",
			})
		}
	}

	return charts, failures
}

func renderThroughputChart(facet analysis.Facet, path string) error {
	p := plot.New()
	p.Title.Text = facet.Title
	p.X.Label.Text = "Workload size"
	p.Y.Label.Text = fmt.Sprintf("Throughput (%s)", facet.Unit)
	p.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(facet.Analysis.Samples))
	for i, sample := range facet.Analysis.Samples {
		points[i].X = float64(sample.WorkloadSize)
		points[i].Y = sample.Throughput
	}

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return err
	}
	p.Add(line, scatter)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

func renderScalabilityChart(facet analysis.Facet, path string) error {
	p := plot.New()
	p.Title.Text = facet.Title + " Scalability"
	p.X.Label.Text = "Workload size step"
	p.Y.Label.Text = "Scaling efficiency"
	p.Add(plotter.NewGrid())

	values := make(plotter.Values, len(facet.Analysis.Scalability))
	labels := make([]string, len(facet.Analysis.Scalability))
	for i, sample := range facet.Analysis.Scalability {
		values[i] = sample.Efficiency
		labels[i] = fmt.Sprintf("%d-%d", sample.FromSize, sample.ToSize)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)

	// Reference line marking ideal linear scaling
	ideal := plotter.XYs{
		{X: -0.5, Y: 1.0},
		{X: float64(len(values)) - 0.5, Y: 1.0},
	}
	idealLine, err := plotter.NewLine(ideal)
	if err != nil {
		return err
	}
	p.Add(idealLine)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

func renderBottleneckSummaryChart(result *analysis.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Bottleneck Summary"
	p.X.Label.Text = "Bottleneck type"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	counts := result.CountByType()

	// Stable bar order: first appearance in the bottleneck sequence
	var types []analysis.BottleneckType
	seen := make(map[analysis.BottleneckType]bool)
	for _, bottleneck := range result.Bottlenecks {
		if !seen[bottleneck.Type] {
			seen[bottleneck.Type] = true
			types = append(types, bottleneck.Type)
		}
	}

	values := make(plotter.Values, len(types))
	labels := make([]string, len(types))
	for i, bottleneckType := range types {
		values[i] = float64(counts[bottleneckType])
		labels[i] = string(bottleneckType)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}
