package latencystats

import "sort"

// Percentile sorts series in place and returns
// series[min(floor(p*len(series)), len(series)-1)], or 0 for an empty
// series. Called at summary time, once per series, after the run has
// stopped accepting new samples — sorting in place is safe because no
// other goroutine holds a reference to this slice by then.
func Percentile(series []float64, p float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sort.Float64s(series)
	idx := int(p * float64(len(series)))
	if idx >= len(series) {
		idx = len(series) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return series[idx]
}
