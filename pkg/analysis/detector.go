package analysis

import (
	"fmt"
)

// Remediation texts surfaced verbatim in every report format
const (
	recommendTransaction   = "Consider optimizing parallel processing, introducing batch processing, or reducing resource contention."
	recommendShardCreation = "Consider parallelizing shard creation and optimizing metadata management."
	recommendCrossShard    = "Consider optimizing cross-shard communication, introducing batch processing, or improving the shard placement algorithm."
	recommendCPUHotspot    = "Consider optimizing this function's algorithm, leveraging caching, or introducing parallel processing."
	recommendMemoryLeak    = "Review resource management and verify that all allocated memory is released."
	recommendMemoryHotspot = "Review this function's memory management and verify that all resources are released."
)

// scalabilityRule binds one facet to its bottleneck type and the noun used
// in finding descriptions.
type scalabilityRule struct {
	bottleneckType BottleneckType
	subject        string
	recommendation string
}

var scalabilityRules = map[string]scalabilityRule{
	"transaction":    {TypeTransactionScalability, "transaction count", recommendTransaction},
	"shard_creation": {TypeShardCreationScalability, "shard count", recommendShardCreation},
	"cross_shard":    {TypeCrossShardScalability, "cross-shard transaction count", recommendCrossShard},
}

// DetectBottlenecks evaluates the threshold rules over an analysis result
// and returns the findings in detection order: scalability per facet, then
// CPU hotspots, then the heap leak check, then memory hotspots. All
// applicable rules fire; nothing short-circuits. Absent data skips its
// rule step silently.
//
// thresholdPercent is the degradation tolerance in percent (10.0 means a
// scalability efficiency below 0.9 is flagged). hotspotLimit caps how many
// profiler hotspots are examined, in file-encounter order.
func DetectBottlenecks(result *Result, thresholdPercent float64, hotspotLimit int) []Bottleneck {
	bottlenecks := []Bottleneck{}

	// Scalability rules, facet by facet
	for _, facet := range result.Facets() {
		if facet.Analysis == nil {
			continue
		}
		rule := scalabilityRules[facet.Name]

		for _, sample := range facet.Analysis.Scalability {
			if sample.Efficiency >= 1.0-thresholdPercent/100 {
				continue
			}

			severity := SeverityMedium
			if sample.Efficiency < 0.5 {
				severity = SeverityHigh
			}

			bottlenecks = append(bottlenecks, Bottleneck{
				Type:     rule.bottleneckType,
				Severity: severity,
				Description: fmt.Sprintf("Scalability degraded when the %s grew from %d to %d (efficiency: %.2f)",
					rule.subject, sample.FromSize, sample.ToSize, sample.Efficiency),
				Recommendation: rule.recommendation,
			})
		}
	}

	// CPU hotspots, capped in encounter order
	if result.CPUProfile != nil {
		hotspots := result.CPUProfile.Hotspots
		if len(hotspots) > hotspotLimit {
			hotspots = hotspots[:hotspotLimit]
		}

		for _, hotspot := range hotspots {
			if hotspot.OverheadPercent <= thresholdPercent {
				continue
			}

			severity := SeverityLow
			switch {
			case hotspot.OverheadPercent > 30:
				severity = SeverityHigh
			case hotspot.OverheadPercent > 15:
				severity = SeverityMedium
			}

			bottlenecks = append(bottlenecks, Bottleneck{
				Type:     TypeCPUHotspot,
				Severity: severity,
				Description: fmt.Sprintf("%.1f%% of CPU time is concentrated in function '%s'",
					hotspot.OverheadPercent, hotspot.Function),
				Recommendation: recommendCPUHotspot,
			})
		}
	}

	// Heap leak ratio; no leak signal without allocations
	if result.MemoryProfile != nil && result.MemoryProfile.HeapSummary != nil {
		heap := result.MemoryProfile.HeapSummary
		if heap.TotalAllocations > 0 {
			leakCount := heap.LeakCount()
			leakRatio := float64(leakCount) / float64(heap.TotalAllocations)
			if leakCount > 0 && leakRatio > thresholdPercent/100 {
				bottlenecks = append(bottlenecks, Bottleneck{
					Type:     TypeMemoryLeak,
					Severity: SeverityHigh,
					Description: fmt.Sprintf("Possible memory leak: %d allocations (%.1f%% of the total) were never freed",
						leakCount, leakRatio*100),
					Recommendation: recommendMemoryLeak,
				})
			}
		}
	}

	// Memory hotspots are reported unconditionally, capped in encounter order
	if result.MemoryProfile != nil {
		hotspots := result.MemoryProfile.Hotspots
		if len(hotspots) > hotspotLimit {
			hotspots = hotspots[:hotspotLimit]
		}

		for _, hotspot := range hotspots {
			bottlenecks = append(bottlenecks, Bottleneck{
				Type:     TypeMemoryHotspot,
				Severity: SeverityMedium,
				Description: fmt.Sprintf("%d bytes of memory lost in function '%s'",
					hotspot.BytesLost, hotspot.Function),
				Recommendation: recommendMemoryHotspot,
			})
		}
	}

	return bottlenecks
}
