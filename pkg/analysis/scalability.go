package analysis

// AnalyzeThroughput derives scalability metrics from an ordered throughput
// series. With fewer than two samples the scalability sequence is empty;
// with zero samples the whole analysis is absent (nil). Pairs whose
// starting size or throughput is zero are skipped, never divided by.
func AnalyzeThroughput(samples []ThroughputSample) *ThroughputAnalysis {
	if len(samples) == 0 {
		return nil
	}

	throughputAnalysis := &ThroughputAnalysis{
		Samples:     samples,
		Scalability: []ScalabilitySample{},
		Min:         samples[0].Throughput,
		Max:         samples[0].Throughput,
	}

	var sum float64
	for _, sample := range samples {
		if sample.Throughput < throughputAnalysis.Min {
			throughputAnalysis.Min = sample.Throughput
		}
		if sample.Throughput > throughputAnalysis.Max {
			throughputAnalysis.Max = sample.Throughput
		}
		sum += sample.Throughput
	}
	throughputAnalysis.Avg = sum / float64(len(samples))

	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		if prev.WorkloadSize == 0 || prev.Throughput == 0 {
			continue
		}

		sizeRatio := float64(cur.WorkloadSize) / float64(prev.WorkloadSize)
		throughputRatio := cur.Throughput / prev.Throughput

		throughputAnalysis.Scalability = append(throughputAnalysis.Scalability, ScalabilitySample{
			FromSize:       prev.WorkloadSize,
			ToSize:         cur.WorkloadSize,
			FromThroughput: prev.Throughput,
			ToThroughput:   cur.Throughput,
			Efficiency:     throughputRatio / sizeRatio,
		})
	}

	return throughputAnalysis
}
