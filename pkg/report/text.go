package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/enablerdao/shardx-perf/pkg/analysis"
)

const divider = "--------------------------------------------------"

// gradeEfficiency maps a scaling efficiency onto a human-readable grade.
func gradeEfficiency(efficiency float64) string {
	switch {
	case efficiency >= 0.9:
		return "good"
	case efficiency >= 0.7:
		return "acceptable"
	default:
		return "needs improvement"
	}
}

// renderText builds the plain-text report body.
func renderText(result *analysis.Result, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("ShardX Performance Bottleneck Analysis Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n\n", result.RunID)

	if len(result.Bottlenecks) > 0 {
		counts := result.CountBySeverity()
		fmt.Fprintf(&b, "Detected bottlenecks: %d\n\n", len(result.Bottlenecks))
		fmt.Fprintf(&b, "High severity: %d\n", counts[analysis.SeverityHigh])
		fmt.Fprintf(&b, "Medium severity: %d\n", counts[analysis.SeverityMedium])
		fmt.Fprintf(&b, "Low severity: %d\n\n", counts[analysis.SeverityLow])

		b.WriteString("Bottleneck Details\n")
		b.WriteString(divider + "\n\n")
		for i, bottleneck := range result.Bottlenecks {
			fmt.Fprintf(&b, "Bottleneck #%d (%s)\n", i+1, bottleneck.Severity)
			fmt.Fprintf(&b, "Type: %s\n", bottleneck.Type)
			fmt.Fprintf(&b, "Description: %s\n", bottleneck.Description)
			fmt.Fprintf(&b, "Recommendation: %s\n\n", bottleneck.Recommendation)
		}
	} else {
		b.WriteString("No bottlenecks were detected.\n\n")
	}

	for _, facet := range result.Facets() {
		if facet.Analysis == nil {
			continue
		}

		fmt.Fprintf(&b, "%s Analysis\n", facet.Title)
		b.WriteString(divider + "\n\n")
		fmt.Fprintf(&b, "Min throughput: %.2f %s\n", facet.Analysis.Min, facet.Unit)
		fmt.Fprintf(&b, "Max throughput: %.2f %s\n", facet.Analysis.Max, facet.Unit)
		fmt.Fprintf(&b, "Avg throughput: %.2f %s\n\n", facet.Analysis.Avg, facet.Unit)

		if len(facet.Analysis.Scalability) > 0 {
			b.WriteString("Scalability:\n")
			for _, sample := range facet.Analysis.Scalability {
				fmt.Fprintf(&b, "  %d -> %d: efficiency = %.2f (%s)\n",
					sample.FromSize, sample.ToSize, sample.Efficiency, gradeEfficiency(sample.Efficiency))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("Recommendations\n")
	b.WriteString(divider + "\n\n")
	if len(result.Bottlenecks) > 0 {
		for _, bottleneck := range result.Bottlenecks {
			fmt.Fprintf(&b, "- %s\n", bottleneck.Recommendation)
		}
	} else {
		b.WriteString("Current performance looks good. Keep monitoring regularly.\n")
	}

	return b.String()
}
