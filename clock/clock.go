// Package clock supplies the monotonic nanosecond timestamp source used for
// every latency measurement in the dispatch fabric. It exists as its own
// package — rather than scattering time.Now() through producer, processor
// and strategy code — so the single source of "now" is named and the
// monotonic guarantee is documented in one place.
package clock

import "time"

// epoch is captured once at process start. time.Since(epoch) subtracts two
// time.Time values that both carry a monotonic reading, so the result is
// immune to wall-clock adjustments (NTP step, user changing the system
// clock) even though the caller only ever sees a plain int64 nanosecond
// count. Calling time.Now().UnixNano() directly would silently drop the
// monotonic reading and reintroduce that failure mode.
var epoch = time.Now()

// Now returns nanoseconds elapsed since process start, on a monotonic
// clock. It never decreases.
func Now() int64 {
	return int64(time.Since(epoch))
}
