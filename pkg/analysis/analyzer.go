package analysis

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/enablerdao/shardx-perf/pkg/artifact"
	"github.com/enablerdao/shardx-perf/pkg/config"
	"github.com/enablerdao/shardx-perf/pkg/profile"
)

// Analyzer runs the full diagnosis pipeline: locate artifacts, parse them,
// derive scalability metrics, and detect bottlenecks. Every input is
// optional; a missing or malformed artifact degrades its facet only.
type Analyzer struct {
	cfg        *config.Config
	logger     zerolog.Logger
	cpuAdapter profile.CPUAdapter
	memAdapter profile.MemoryAdapter
}

// NewAnalyzer creates an analyzer with the default profiler format
// adapters (perf for CPU, valgrind for memory).
func NewAnalyzer(cfg *config.Config, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		logger:     logger,
		cpuAdapter: profile.NewPerfReportAdapter(),
		memAdapter: profile.NewValgrindAdapter(),
	}
}

// WithAdapters swaps the profiler format adapters. Handy when a deployment
// captures profiles with a different tool.
func (a *Analyzer) WithAdapters(cpu profile.CPUAdapter, mem profile.MemoryAdapter) *Analyzer {
	a.cpuAdapter = cpu
	a.memAdapter = mem
	return a
}

// Run executes one analysis pass and returns an immutable result. Each
// artifact family parses independently and concurrently; results merge
// only after all parses complete.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		documents  = make(map[string]*artifact.Document)
		cpuProfile *profile.CPUProfile
		memProfile *profile.MemoryProfile
	)

	for _, category := range artifact.Categories {
		if !a.cfg.HasCategory(category) {
			continue
		}

		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			if doc := a.loadBenchmark(category); doc != nil {
				mu.Lock()
				documents[category] = doc
				mu.Unlock()
			}
		}(category)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p := a.loadCPUProfile(); p != nil {
			mu.Lock()
			cpuProfile = p
			mu.Unlock()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if p := a.loadMemoryProfile(); p != nil {
			mu.Lock()
			memProfile = p
			mu.Unlock()
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:         uuid.NewString(),
		CPUProfile:    cpuProfile,
		MemoryProfile: memProfile,
	}

	if doc := documents[artifact.CategoryTransaction]; doc != nil && doc.Transaction != nil {
		result.Transaction = AnalyzeThroughput(throughputSamples(doc.Transaction.Throughput))
	}

	if doc := documents[artifact.CategorySharding]; doc != nil && doc.Sharding != nil {
		result.ShardCreation = AnalyzeThroughput(creationSamples(doc.Sharding.ShardCreation))
		result.CrossShard = AnalyzeThroughput(throughputSamples(doc.Sharding.CrossShardTransactions))
	}

	result.Bottlenecks = DetectBottlenecks(result, a.cfg.Analysis.ThresholdPercent, a.cfg.Analysis.HotspotLimit)

	a.logger.Info().
		Str("run_id", result.RunID).
		Int("bottlenecks", len(result.Bottlenecks)).
		Msg("Analysis complete")

	return result, nil
}

func (a *Analyzer) loadBenchmark(category string) *artifact.Document {
	pattern, ok := artifact.PatternForCategory(category)
	if !ok {
		return nil
	}

	path, err := artifact.FindLatest(a.cfg.Input.BenchmarkDir, pattern)
	if err != nil {
		if errors.Is(err, artifact.ErrNoArtifact) {
			a.logger.Info().
				Str("category", category).
				Str("dir", a.cfg.Input.BenchmarkDir).
				Msg("No benchmark artifact found")
		} else {
			a.logger.Warn().Err(err).Str("category", category).Msg("Benchmark artifact lookup failed")
		}
		return nil
	}

	doc, err := artifact.ParseBenchmark(path)
	if err != nil {
		if artifact.IsMalformed(err) {
			a.logger.Warn().Err(err).Str("path", path).Msg("Skipping malformed benchmark artifact")
		} else {
			a.logger.Error().Err(err).Str("path", path).Msg("Failed to read benchmark artifact")
		}
		return nil
	}

	a.logger.Debug().Str("category", category).Str("path", path).Msg("Parsed benchmark artifact")
	return doc
}

func (a *Analyzer) loadCPUProfile() *profile.CPUProfile {
	path, err := artifact.FindLatest(a.cfg.Input.ProfileDir, artifact.PatternCPUProfile)
	if err != nil {
		a.logger.Info().Str("dir", a.cfg.Input.ProfileDir).Msg("No CPU profile found")
		return nil
	}

	cpuProfile, err := profile.ParseCPUFile(path, a.cpuAdapter)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Failed to read CPU profile")
		return nil
	}

	a.logger.Debug().
		Str("path", path).
		Str("format", a.cpuAdapter.Name()).
		Int("hotspots", len(cpuProfile.Hotspots)).
		Msg("Parsed CPU profile")
	return cpuProfile
}

func (a *Analyzer) loadMemoryProfile() *profile.MemoryProfile {
	path, err := artifact.FindLatest(a.cfg.Input.ProfileDir, artifact.PatternMemoryProfile)
	if err != nil {
		a.logger.Info().Str("dir", a.cfg.Input.ProfileDir).Msg("No memory profile found")
		return nil
	}

	memProfile, err := profile.ParseMemoryFile(path, a.memAdapter)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("Failed to read memory profile")
		return nil
	}

	a.logger.Debug().
		Str("path", path).
		Str("format", a.memAdapter.Name()).
		Int("hotspots", len(memProfile.Hotspots)).
		Msg("Parsed memory profile")
	return memProfile
}

func throughputSamples(points []artifact.ThroughputPoint) []ThroughputSample {
	samples := make([]ThroughputSample, 0, len(points))
	for _, point := range points {
		samples = append(samples, ThroughputSample{
			WorkloadSize: point.TxCount,
			Throughput:   point.ThroughputTPS,
		})
	}
	return samples
}

func creationSamples(points []artifact.ShardCreationPoint) []ThroughputSample {
	samples := make([]ThroughputSample, 0, len(points))
	for _, point := range points {
		samples = append(samples, ThroughputSample{
			WorkloadSize: point.ShardCount,
			Throughput:   point.ThroughputSPS,
		})
	}
	return samples
}
