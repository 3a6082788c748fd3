package profile

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// PerfReportAdapter parses the textual output of `perf report`. It locates
// the overhead table by its "# Overhead" header line and consumes entries
// until the first blank line or end of input. Hotspots keep their
// file-encounter order; callers that cap to the first N entries get the
// table's own ordering, not a re-sort by magnitude.
type PerfReportAdapter struct{}

// NewPerfReportAdapter creates a perf report adapter.
func NewPerfReportAdapter() *PerfReportAdapter {
	return &PerfReportAdapter{}
}

// Name identifies the tool format.
func (a *PerfReportAdapter) Name() string {
	return "perf"
}

// Parse extracts the overhead table. Lines that do not split into at least
// five columns with a leading percentage are skipped silently.
func (a *PerfReportAdapter) Parse(content []byte) *CPUProfile {
	cpuProfile := &CPUProfile{Hotspots: []CPUHotspot{}}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	inTable := false
	for scanner.Scan() {
		line := scanner.Text()

		if !inTable {
			if strings.HasPrefix(line, "# Overhead") {
				inTable = true
			}
			continue
		}

		// The table ends at the first blank line
		if strings.TrimSpace(line) == "" {
			break
		}

		// Separator and comment lines inside the table
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}

		overhead, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
		if err != nil || overhead < 0 {
			continue
		}

		cpuProfile.Hotspots = append(cpuProfile.Hotspots, CPUHotspot{
			Function:        fields[len(fields)-1],
			OverheadPercent: overhead,
		})
	}

	return cpuProfile
}
