// Package latencystats implements the pipeline's latency recording: an
// append-only sample sink shared by every strategy goroutine, and the
// sort-and-index percentile computation used at summary time. The
// reference codebase reaches for lock-free, hash-deduplicated aggregation
// structures (see the dropped aggregator package, justified in DESIGN.md)
// when contention comes from many producers; here the writers are the
// strategy goroutines, typically single digits, so a single mutex around
// four plain slices is simpler and the specification calls for exactly
// that design.
package latencystats

import "sync"

// Sink collects four parallel series of microsecond latency samples:
// stage-1 queueing delay, processing time, stage-2 queueing delay, and
// end-to-end total. A single sample's four values are appended together
// under one critical section so they always land at the same index across
// all four series.
type Sink struct {
	mu           sync.Mutex
	stage1Us     []float64
	processingUs []float64
	stage2Us     []float64
	totalUs      []float64
}

// NewSink returns an empty latency sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append records one sample's four latency components. Safe for concurrent
// use by multiple strategy goroutines.
func (s *Sink) Append(stage1Us, processingUs, stage2Us, totalUs float64) {
	s.mu.Lock()
	s.stage1Us = append(s.stage1Us, stage1Us)
	s.processingUs = append(s.processingUs, processingUs)
	s.stage2Us = append(s.stage2Us, stage2Us)
	s.totalUs = append(s.totalUs, totalUs)
	s.mu.Unlock()
}

// Series identifies one of the sink's four latency series.
type Series int

const (
	SeriesStage1 Series = iota
	SeriesProcessing
	SeriesStage2
	SeriesTotal
)

// Snapshot returns a copy of the requested series, safe to sort and scan
// without holding the sink's lock any longer than the copy itself.
func (s *Sink) Snapshot(series Series) []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var src []float64
	switch series {
	case SeriesStage1:
		src = s.stage1Us
	case SeriesProcessing:
		src = s.processingUs
	case SeriesStage2:
		src = s.stage2Us
	case SeriesTotal:
		src = s.totalUs
	default:
		return nil
	}
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// Len returns the number of samples recorded so far (same for all four
// series, since Append always grows them together).
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.totalUs)
}
