package artifact

import (
	"os"
	"path/filepath"
	"time"
)

// Benchmark categories produced by the ShardX benchmark runners
const (
	CategoryTransaction = "transaction"
	CategorySharding    = "sharding"
	CategoryStorage     = "storage"
	CategoryNetwork     = "network"
)

// Categories lists all benchmark categories in their canonical order.
var Categories = []string{
	CategoryTransaction,
	CategorySharding,
	CategoryStorage,
	CategoryNetwork,
}

// Profiler report filename conventions in the profile directory
const (
	PatternCPUProfile    = "cpu_report_*.txt"
	PatternMemoryProfile = "memory_profile_*.txt"
)

// filenamePatterns maps a benchmark category to the timestamped filename
// convention its runner writes into the benchmark directory.
var filenamePatterns = map[string]string{
	CategoryTransaction: "transaction_benchmark_*.json",
	CategorySharding:    "sharding_benchmark_*.json",
	CategoryStorage:     "storage_benchmark_*.json",
	CategoryNetwork:     "network_benchmark_*.json",
}

// PatternForCategory returns the filename glob for a benchmark category.
func PatternForCategory(category string) (string, bool) {
	pattern, ok := filenamePatterns[category]
	return pattern, ok
}

// FindLatest returns the path of the most recently modified file matching
// pattern under dir. It returns ErrNoArtifact when nothing matches; an
// empty or missing directory is treated as a normal miss, not a failure.
func FindLatest(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		// Only a malformed pattern reaches here
		return "", err
	}

	var latest string
	var latestTime time.Time
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			// Candidate vanished or is not a regular file
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = match
			latestTime = info.ModTime()
		}
	}

	if latest == "" {
		return "", ErrNoArtifact
	}
	return latest, nil
}
