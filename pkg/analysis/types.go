package analysis

import (
	"github.com/enablerdao/shardx-perf/pkg/profile"
)

// BottleneckType classifies a detected bottleneck
type BottleneckType string

const (
	TypeTransactionScalability   BottleneckType = "transaction_scalability"
	TypeShardCreationScalability BottleneckType = "shard_creation_scalability"
	TypeCrossShardScalability    BottleneckType = "cross_shard_scalability"
	TypeCPUHotspot               BottleneckType = "cpu_hotspot"
	TypeMemoryLeak               BottleneckType = "memory_leak"
	TypeMemoryHotspot            BottleneckType = "memory_hotspot"
)

// Severity grades how badly a bottleneck hurts
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ThroughputSample is one (workload size, throughput) measurement taken
// from a benchmark artifact. Samples keep the order of the source series.
type ThroughputSample struct {
	WorkloadSize int     `json:"workload_size"`
	Throughput   float64 `json:"throughput"`
}

// ScalabilitySample is the scaling efficiency between two consecutive
// throughput measurements. An efficiency near 1.0 is ideal linear scaling;
// below 1.0 is sub-linear; above 1.0 is super-linear (rare, but legal).
type ScalabilitySample struct {
	FromSize       int     `json:"from_size"`
	ToSize         int     `json:"to_size"`
	FromThroughput float64 `json:"from_throughput"`
	ToThroughput   float64 `json:"to_throughput"`
	Efficiency     float64 `json:"efficiency"`
}

// ThroughputAnalysis holds the derived metrics for one benchmark facet.
// It is never mutated after construction.
type ThroughputAnalysis struct {
	Samples     []ThroughputSample  `json:"samples"`
	Scalability []ScalabilitySample `json:"scalability"`
	Min         float64             `json:"min"`
	Max         float64             `json:"max"`
	Avg         float64             `json:"avg"`
}

// Bottleneck is one finding produced by the detector, with remediation
// text the report renderers surface as-is.
type Bottleneck struct {
	Type           BottleneckType `json:"type"`
	Severity       Severity       `json:"severity"`
	Description    string         `json:"description"`
	Recommendation string         `json:"recommendation"`
}

// Result is the root aggregate of one analysis run. It owns all derived
// data by composition and is read-only once the detector has run.
type Result struct {
	RunID         string                 `json:"run_id"`
	Transaction   *ThroughputAnalysis    `json:"transaction_analysis,omitempty"`
	ShardCreation *ThroughputAnalysis    `json:"shard_creation_analysis,omitempty"`
	CrossShard    *ThroughputAnalysis    `json:"cross_shard_analysis,omitempty"`
	CPUProfile    *profile.CPUProfile    `json:"cpu_profile,omitempty"`
	MemoryProfile *profile.MemoryProfile `json:"memory_profile,omitempty"`
	Bottlenecks   []Bottleneck           `json:"bottlenecks"`
}

// Facet names one benchmark facet and its analysis, if present.
type Facet struct {
	Name     string
	Title    string
	Unit     string
	Analysis *ThroughputAnalysis
}

// Facets returns the per-facet analyses in their canonical order. Facets
// without data carry a nil Analysis.
func (r *Result) Facets() []Facet {
	return []Facet{
		{Name: "transaction", Title: "Transaction Throughput", Unit: "TPS", Analysis: r.Transaction},
		{Name: "shard_creation", Title: "Shard Creation", Unit: "shards/s", Analysis: r.ShardCreation},
		{Name: "cross_shard", Title: "Cross-Shard Transactions", Unit: "TPS", Analysis: r.CrossShard},
	}
}

// CountBySeverity tallies the detected bottlenecks per severity level.
func (r *Result) CountBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, bottleneck := range r.Bottlenecks {
		counts[bottleneck.Severity]++
	}
	return counts
}

// CountByType tallies the detected bottlenecks per bottleneck type.
func (r *Result) CountByType() map[BottleneckType]int {
	counts := make(map[BottleneckType]int)
	for _, bottleneck := range r.Bottlenecks {
		counts[bottleneck.Type]++
	}
	return counts
}
