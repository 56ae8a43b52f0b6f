// Package stats provides latency aggregation over saved generation results.
package stats

import (
	"sort"

	"github.com/muryalabs/murya/internal/generate"
	"github.com/muryalabs/murya/internal/tts"
)

// Summary describes the latency profile of one provider across everything
// saved in the session so far.
type Summary struct {
	Provider    tts.Provider `json:"provider"`
	Count       int          `json:"count"`
	MinSeconds  float64      `json:"min_seconds"`
	MaxSeconds  float64      `json:"max_seconds"`
	MeanSeconds float64      `json:"mean_seconds"`
}

type accumulator struct {
	count    int
	min, max float64
	sum      float64
}

// Summarize computes one Summary per provider present in results. Providers
// without saved results are omitted. The output is sorted by provider name
// so repeated calls over the same history are stable.
func Summarize(results []generate.Result) []Summary {
	byProvider := make(map[tts.Provider]*accumulator)

	for _, r := range results {
		acc, ok := byProvider[r.Provider]
		if !ok {
			acc = &accumulator{min: r.LatencySeconds, max: r.LatencySeconds}
			byProvider[r.Provider] = acc
		}
		if r.LatencySeconds < acc.min {
			acc.min = r.LatencySeconds
		}
		if r.LatencySeconds > acc.max {
			acc.max = r.LatencySeconds
		}
		acc.count++
		acc.sum += r.LatencySeconds
	}

	out := make([]Summary, 0, len(byProvider))
	for provider, acc := range byProvider {
		out = append(out, Summary{
			Provider:    provider,
			Count:       acc.count,
			MinSeconds:  acc.min,
			MaxSeconds:  acc.max,
			MeanSeconds: acc.sum / float64(acc.count),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}
