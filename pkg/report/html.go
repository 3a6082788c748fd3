package report

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/enablerdao/shardx-perf/pkg/analysis"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>ShardX Performance Bottleneck Analysis Report</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 20px; line-height: 1.6; }
    h1, h2, h3 { color: #333; }
    .container { max-width: 1200px; margin: 0 auto; }
    .summary { background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
    .bottleneck { margin-bottom: 15px; padding: 10px; border-left: 4px solid #ccc; }
    .bottleneck.high { border-color: #d9534f; background-color: #f9e6e6; }
    .bottleneck.medium { border-color: #f0ad4e; background-color: #fcf8e3; }
    .bottleneck.low { border-color: #5bc0de; background-color: #e8f4f8; }
    .chart { margin-bottom: 30px; }
    .chart img { max-width: 100%; height: auto; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
    th, td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; }
    th { background-color: #f2f2f2; }
  </style>
</head>
<body>
  <div class="container">
    <h1>ShardX Performance Bottleneck Analysis Report</h1>
    <p>Generated: {{.GeneratedAt}} (run {{.RunID}})</p>

    <div class="summary">
{{- if .Bottlenecks}}
      <h2>Detected bottlenecks: {{len .Bottlenecks}}</h2>
      <ul>
        <li>High severity: {{.HighCount}}</li>
        <li>Medium severity: {{.MediumCount}}</li>
        <li>Low severity: {{.LowCount}}</li>
      </ul>
{{- else}}
      <h2>No bottlenecks were detected</h2>
      <p>Current performance looks good. Keep monitoring regularly.</p>
{{- end}}
    </div>
{{- if .Charts}}

    <h2>Performance Charts</h2>
{{- range .Charts}}
    <div class="chart">
      <h3>{{.Title}}</h3>
      <img src="{{.Path}}" alt="{{.Title}}">
      <p>{{.Description}}</p>
    </div>
{{- end}}
{{- end}}
{{- if .Bottlenecks}}

    <h2>Bottleneck Details</h2>
{{- range .Bottlenecks}}
    <div class="bottleneck {{.Severity}}">
      <h3>{{.Type}}</h3>
      <p><strong>Severity:</strong> {{.Severity}}</p>
      <p><strong>Description:</strong> {{.Description}}</p>
      <p><strong>Recommendation:</strong> {{.Recommendation}}</p>
    </div>
{{- end}}
{{- end}}
{{- range .Facets}}

    <h2>{{.Title}} Analysis</h2>
    <table>
      <tr><th>Metric</th><th>Value</th></tr>
      <tr><td>Min throughput</td><td>{{printf "%.2f" .Min}} {{.Unit}}</td></tr>
      <tr><td>Max throughput</td><td>{{printf "%.2f" .Max}} {{.Unit}}</td></tr>
      <tr><td>Avg throughput</td><td>{{printf "%.2f" .Avg}} {{.Unit}}</td></tr>
    </table>
{{- if .Scalability}}
    <h3>Scalability</h3>
    <table>
      <tr><th>Workload range</th><th>Efficiency</th><th>Grade</th></tr>
{{- range .Scalability}}
      <tr><td>{{.Range}}</td><td>{{printf "%.2f" .Efficiency}}</td><td>{{.Grade}}</td></tr>
{{- end}}
    </table>
{{- end}}
{{- end}}

    <h2>Recommendations</h2>
    <ul>
{{- if .Bottlenecks}}
{{- range .Bottlenecks}}
      <li>{{.Recommendation}}</li>
{{- end}}
{{- else}}
      <li>Current performance looks good. Keep monitoring regularly.</li>
{{- end}}
    </ul>
  </div>
</body>
</html>
`

var htmlReportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

type htmlFacet struct {
	Title       string
	Unit        string
	Min         float64
	Max         float64
	Avg         float64
	Scalability []htmlScalabilityRow
}

type htmlScalabilityRow struct {
	Range      string
	Efficiency float64
	Grade      string
}

type htmlData struct {
	GeneratedAt string
	RunID       string
	Bottlenecks []analysis.Bottleneck
	HighCount   int
	MediumCount int
	LowCount    int
	Charts      []Chart
	Facets      []htmlFacet
}

// renderHTML writes the HTML report body. Absent facets and missing charts
// simply drop their sections.
func renderHTML(w io.Writer, result *analysis.Result, charts []Chart, generatedAt time.Time) error {
	counts := result.CountBySeverity()
	data := htmlData{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		RunID:       result.RunID,
		Bottlenecks: result.Bottlenecks,
		HighCount:   counts[analysis.SeverityHigh],
		MediumCount: counts[analysis.SeverityMedium],
		LowCount:    counts[analysis.SeverityLow],
		Charts:      charts,
	}

	for _, facet := range result.Facets() {
		if facet.Analysis == nil {
			continue
		}

		view := htmlFacet{
			Title: facet.Title,
			Unit:  facet.Unit,
			Min:   facet.Analysis.Min,
			Max:   facet.Analysis.Max,
			Avg:   facet.Analysis.Avg,
		}
		for _, sample := range facet.Analysis.Scalability {
			view.Scalability = append(view.Scalability, htmlScalabilityRow{
				Range:      fmt.Sprintf("%d → %d", sample.FromSize, sample.ToSize),
				Efficiency: sample.Efficiency,
				Grade:      gradeEfficiency(sample.Efficiency),
			})
		}
		data.Facets = append(data.Facets, view)
	}

	return htmlReportTemplate.Execute(w, data)
}
