package profile

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

var (
	heapTotalPattern = regexp.MustCompile(`total heap usage:\s+([\d,]+)\s+allocs,\s+([\d,]+)\s+frees,\s+([\d,]+)\s+bytes allocated`)
	lostBlockPattern = regexp.MustCompile(`==\d+==\s+([\d,]+)\s+bytes in\s+[\d,]+\s+blocks are definitely lost`)
	// The "at" frame is the allocator itself; the first "by" frame is
	// the call site worth reporting.
	framePattern = regexp.MustCompile(`==\d+==\s+by\s+0x[0-9A-Fa-f]+:\s+([^(]+)`)
)

// ValgrindAdapter parses valgrind memcheck output: the heap summary's
// aggregate counters and the "definitely lost" leak blocks, each reduced
// to the bytes lost and the first resolvable stack frame.
type ValgrindAdapter struct{}

// NewValgrindAdapter creates a valgrind memcheck adapter.
func NewValgrindAdapter() *ValgrindAdapter {
	return &ValgrindAdapter{}
}

// Name identifies the tool format.
func (a *ValgrindAdapter) Name() string {
	return "valgrind"
}

// Parse extracts the heap summary and leak hotspots. Blocks or counters
// that do not match are skipped silently.
func (a *ValgrindAdapter) Parse(content []byte) *MemoryProfile {
	memProfile := &MemoryProfile{Hotspots: []MemoryHotspot{}}

	if match := heapTotalPattern.FindSubmatch(content); match != nil {
		allocs, errA := parseGroupedInt(string(match[1]))
		frees, errF := parseGroupedInt(string(match[2]))
		total, errB := parseGroupedInt(string(match[3]))
		if errA == nil && errF == nil && errB == nil {
			memProfile.HeapSummary = &HeapSummary{
				TotalAllocations: allocs,
				TotalFrees:       frees,
				TotalBytes:       total,
			}
		}
	}

	// Each "definitely lost" line opens a leak block whose call-stack
	// follows on the next lines. The first resolvable frame names the
	// hotspot; a block with no such frame is attributed to "Unknown".
	scanner := bufio.NewScanner(bytes.NewReader(content))
	var pendingBytes int64
	inBlock := false
	for scanner.Scan() {
		line := scanner.Text()

		if match := lostBlockPattern.FindStringSubmatch(line); match != nil {
			if inBlock {
				memProfile.Hotspots = append(memProfile.Hotspots, MemoryHotspot{
					Function:  "Unknown",
					BytesLost: pendingBytes,
				})
			}
			bytesLost, err := parseGroupedInt(match[1])
			if err != nil {
				inBlock = false
				continue
			}
			pendingBytes = bytesLost
			inBlock = true
			continue
		}

		if !inBlock {
			continue
		}

		if match := framePattern.FindStringSubmatch(line); match != nil {
			memProfile.Hotspots = append(memProfile.Hotspots, MemoryHotspot{
				Function:  strings.TrimSpace(match[1]),
				BytesLost: pendingBytes,
			})
			inBlock = false
		}
	}

	if inBlock {
		memProfile.Hotspots = append(memProfile.Hotspots, MemoryHotspot{
			Function:  "Unknown",
			BytesLost: pendingBytes,
		})
	}

	return memProfile
}

func parseGroupedInt(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}
