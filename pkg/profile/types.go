package profile

// CPUHotspot is a function carrying a disproportionate share of CPU time.
type CPUHotspot struct {
	Function        string  `json:"function"`
	OverheadPercent float64 `json:"overhead_percent"`
}

// CPUProfile is the decoded form of a CPU profiler report. Hotspots are
// retained in the order they appear in the source file.
type CPUProfile struct {
	Hotspots []CPUHotspot `json:"hotspots"`
}

// HeapSummary holds the aggregate heap counters of a memory profiler run.
type HeapSummary struct {
	TotalAllocations int64 `json:"total_allocations"`
	TotalFrees       int64 `json:"total_frees"`
	TotalBytes       int64 `json:"total_bytes"`
}

// LeakCount returns the number of allocations never freed.
func (h *HeapSummary) LeakCount() int64 {
	return h.TotalAllocations - h.TotalFrees
}

// MemoryHotspot is an allocation site whose memory was never released,
// reduced to the first frame of its leak call-stack.
type MemoryHotspot struct {
	Function  string `json:"function"`
	BytesLost int64  `json:"bytes_lost"`
}

// MemoryProfile is the decoded form of a memory profiler report.
type MemoryProfile struct {
	HeapSummary *HeapSummary    `json:"heap_summary,omitempty"`
	Hotspots    []MemoryHotspot `json:"memory_hotspots"`
}
