// Package profile extracts hotspot and heap data from profiler tool
// output. Profiler reports are an inherently fragile integration surface;
// each tool format lives behind its own adapter so new formats can be
// added without touching the bottleneck detector.
package profile

import (
	"fmt"
	"os"
)

// CPUAdapter decodes one CPU profiler report format into a CPUProfile.
// Adapters are best-effort: entries that do not parse cleanly are skipped
// without error.
type CPUAdapter interface {
	// Name identifies the tool format, e.g. "perf".
	Name() string
	// Parse extracts hotspots from raw report text.
	Parse(content []byte) *CPUProfile
}

// MemoryAdapter decodes one memory profiler report format into a
// MemoryProfile. Same tolerant-skip policy as CPUAdapter.
type MemoryAdapter interface {
	Name() string
	Parse(content []byte) *MemoryProfile
}

// ParseCPUFile reads path and decodes it with the given adapter. Only the
// file read can fail; extraction itself never errors.
func ParseCPUFile(path string, adapter CPUAdapter) (*CPUProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CPU profile %s: %w", path, err)
	}
	return adapter.Parse(content), nil
}

// ParseMemoryFile reads path and decodes it with the given adapter.
func ParseMemoryFile(path string, adapter MemoryAdapter) (*MemoryProfile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory profile %s: %w", path, err)
	}
	return adapter.Parse(content), nil
}
