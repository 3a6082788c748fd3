package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enablerdao/shardx-perf/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Input.BenchmarkDir = t.TempDir()
	cfg.Input.ProfileDir = t.TempDir()
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func writeBenchmark(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const transactionArtifact = `{
	"transaction_benchmark": {
		"throughput": [
			{"tx_count": 100, "throughput_tps": 1000.0},
			{"tx_count": 200, "throughput_tps": 1500.0},
			{"tx_count": 400, "throughput_tps": 2000.0}
		]
	}
}`

func TestAnalyzer_Run_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	writeBenchmark(t, cfg.Input.BenchmarkDir, "transaction_benchmark_20250101.json", transactionArtifact)

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RunID)

	require.NotNil(t, result.Transaction)
	require.Len(t, result.Transaction.Scalability, 2)
	assert.InDelta(t, 0.75, result.Transaction.Scalability[0].Efficiency, 1e-9)
	assert.InDelta(t, 0.667, result.Transaction.Scalability[1].Efficiency, 1e-3)

	// Both pairs fall below the 0.9 cutoff but stay above 0.5
	require.Len(t, result.Bottlenecks, 2)
	for _, bottleneck := range result.Bottlenecks {
		assert.Equal(t, TypeTransactionScalability, bottleneck.Type)
		assert.Equal(t, SeverityMedium, bottleneck.Severity)
	}
	assert.Equal(t, result.Bottlenecks[0].Recommendation, result.Bottlenecks[1].Recommendation)

	// No profiler artifacts: no CPU or memory findings, no crash
	assert.Nil(t, result.CPUProfile)
	assert.Nil(t, result.MemoryProfile)
}

func TestAnalyzer_Run_ShardingFacets(t *testing.T) {
	cfg := testConfig(t)
	writeBenchmark(t, cfg.Input.BenchmarkDir, "sharding_benchmark_20250101.json", `{
		"sharding_benchmark": {
			"shard_creation": [
				{"shard_count": 10, "throughput_sps": 100.0},
				{"shard_count": 20, "throughput_sps": 130.0}
			],
			"cross_shard_transactions": [
				{"tx_count": 100, "throughput_tps": 400.0},
				{"tx_count": 200, "throughput_tps": 800.0}
			]
		}
	}`)

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.ShardCreation)
	require.Len(t, result.ShardCreation.Scalability, 1)
	assert.InDelta(t, 0.65, result.ShardCreation.Scalability[0].Efficiency, 1e-9)

	// Cross-shard series scales perfectly; only shard creation is flagged
	require.NotNil(t, result.CrossShard)
	require.Len(t, result.Bottlenecks, 1)
	assert.Equal(t, TypeShardCreationScalability, result.Bottlenecks[0].Type)
}

func TestAnalyzer_Run_ProfilesOnly(t *testing.T) {
	cfg := testConfig(t)

	cpuReport := `# Overhead  Command  Shared Object  Symbol
    35.20%  shardx   shardx         [.] shardx::tx::verify_signature
`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Input.ProfileDir, "cpu_report_20250101.txt"), []byte(cpuReport), 0644))

	memReport := `==1== HEAP SUMMARY:
==1==   total heap usage: 1,000 allocs, 700 frees, 50,000 bytes allocated
`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Input.ProfileDir, "memory_profile_20250101.txt"), []byte(memReport), 0644))

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.CPUProfile)
	require.NotNil(t, result.MemoryProfile)
	require.Len(t, result.Bottlenecks, 2)
	assert.Equal(t, TypeCPUHotspot, result.Bottlenecks[0].Type)
	assert.Equal(t, TypeMemoryLeak, result.Bottlenecks[1].Type)
}

func TestAnalyzer_Run_MalformedArtifactDegradesFacetOnly(t *testing.T) {
	cfg := testConfig(t)
	writeBenchmark(t, cfg.Input.BenchmarkDir, "transaction_benchmark_20250101.json", `{not json`)
	writeBenchmark(t, cfg.Input.BenchmarkDir, "sharding_benchmark_20250101.json", `{
		"sharding_benchmark": {
			"shard_creation": [
				{"shard_count": 10, "throughput_sps": 100.0},
				{"shard_count": 20, "throughput_sps": 200.0}
			]
		}
	}`)

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, result.Transaction)
	assert.NotNil(t, result.ShardCreation)
}

func TestAnalyzer_Run_CategoryFilter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.Categories = []string{"sharding"}
	writeBenchmark(t, cfg.Input.BenchmarkDir, "transaction_benchmark_20250101.json", transactionArtifact)

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, result.Transaction)
	assert.Empty(t, result.Bottlenecks)
}

func TestAnalyzer_Run_NoData(t *testing.T) {
	cfg := testConfig(t)

	result, err := NewAnalyzer(cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Nil(t, result.Transaction)
	assert.Nil(t, result.ShardCreation)
	assert.Nil(t, result.CrossShard)
	assert.NotNil(t, result.Bottlenecks)
	assert.Empty(t, result.Bottlenecks)
}

func TestAnalyzer_Run_CancelledContext(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalyzer(cfg, zerolog.Nop()).Run(ctx)
	assert.Error(t, err)
}
