package report

import (
	"encoding/json"
	"time"

	"github.com/enablerdao/shardx-perf/pkg/analysis"
)

// jsonReport is the analysis result serialized verbatim plus a generation
// timestamp and the rendered chart directives. Embedding keeps the result
// fields flat at the top level so the document round-trips losslessly.
type jsonReport struct {
	analysis.Result
	Charts      []Chart   `json:"charts"`
	GeneratedAt time.Time `json:"timestamp"`
}

// renderJSON serializes the result for machine consumption.
func renderJSON(result *analysis.Result, charts []Chart, generatedAt time.Time) ([]byte, error) {
	if charts == nil {
		charts = []Chart{}
	}
	doc := jsonReport{
		Result:      *result,
		Charts:      charts,
		GeneratedAt: generatedAt,
	}
	return json.MarshalIndent(doc, "", "  ")
}
