package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ThroughputPoint is one measurement of a throughput series: the workload
// size driven against the system and the throughput it sustained.
type ThroughputPoint struct {
	TxCount       int     `json:"tx_count"`
	ThroughputTPS float64 `json:"throughput_tps"`
}

// ShardCreationPoint is one measurement of the shard creation series.
type ShardCreationPoint struct {
	ShardCount    int     `json:"shard_count"`
	ThroughputSPS float64 `json:"throughput_sps"`
}

// TransactionBenchmark holds the transaction benchmark section of a
// benchmark document. The throughput series is optional; benchmark
// runners evolve independently of this tool.
type TransactionBenchmark struct {
	Throughput []ThroughputPoint `json:"throughput,omitempty"`
}

// ShardingBenchmark holds the sharding benchmark section.
type ShardingBenchmark struct {
	ShardCreation          []ShardCreationPoint `json:"shard_creation,omitempty"`
	CrossShardTransactions []ThroughputPoint    `json:"cross_shard_transactions,omitempty"`
}

// Document is a decoded benchmark result file. Every section is optional;
// storage and network sections are retained verbatim because no derived
// analysis consumes them yet.
type Document struct {
	Transaction *TransactionBenchmark `json:"transaction_benchmark,omitempty"`
	Sharding    *ShardingBenchmark    `json:"sharding_benchmark,omitempty"`
	Storage     json.RawMessage       `json:"storage_benchmark,omitempty"`
	Network     json.RawMessage       `json:"network_benchmark,omitempty"`
}

// benchmarkSchema constrains the shape of the sections this tool consumes.
// All sections are optional: absence of data is never a schema violation,
// only a present-but-wrongly-typed section is.
const benchmarkSchema = `{
	"type": "object",
	"properties": {
		"transaction_benchmark": {
			"type": "object",
			"properties": {
				"throughput": {"$ref": "#/definitions/throughputSeries"}
			}
		},
		"sharding_benchmark": {
			"type": "object",
			"properties": {
				"shard_creation": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"shard_count": {"type": "integer", "minimum": 0},
							"throughput_sps": {"type": "number", "minimum": 0}
						},
						"required": ["shard_count", "throughput_sps"]
					}
				},
				"cross_shard_transactions": {"$ref": "#/definitions/throughputSeries"}
			}
		}
	},
	"definitions": {
		"throughputSeries": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"tx_count": {"type": "integer", "minimum": 0},
					"throughput_tps": {"type": "number", "minimum": 0}
				},
				"required": ["tx_count", "throughput_tps"]
			}
		}
	}
}`

// ParseBenchmark reads and decodes a benchmark result file. A file that is
// not valid JSON or does not satisfy the benchmark schema yields a
// MalformedArtifactError so the caller can skip the facet and continue.
func ParseBenchmark(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmark artifact %s: %w", path, err)
	}

	schemaLoader := gojsonschema.NewStringLoader(benchmarkSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Validate fails on syntactically invalid JSON
		return nil, &MalformedArtifactError{Path: path, Err: err}
	}

	if !result.Valid() {
		var errors []string
		for _, desc := range result.Errors() {
			errors = append(errors, desc.String())
		}
		return nil, &MalformedArtifactError{
			Path: path,
			Err:  fmt.Errorf("schema violations: %s", strings.Join(errors, "; ")),
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedArtifactError{Path: path, Err: err}
	}

	return &doc, nil
}
