// Package control coordinates shutdown and exposes the running counters a
// pipeline reports on. The reference control package keeps its hot/stop
// flags as package-level globals, fine for a single pinned WebSocket feed
// but wrong here: a process can run more than one pipeline (the pipeline
// tests construct several), and a global stop flag would tear down every
// pipeline at once. State carries one State per pipeline instead.
package control

import "sync/atomic"

// State holds one pipeline's shutdown flag and flow counters. Zero value is
// ready to use. All methods are safe for concurrent use by any number of
// producer, processor, and strategy goroutines.
type State struct {
	stop atomic.Bool

	produced  atomic.Int64
	processed atomic.Int64
	delivered atomic.Int64
}

// New returns a running State with all counters at zero.
func New() *State {
	return &State{}
}

// Stop requests shutdown. Idempotent.
func (s *State) Stop() {
	s.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *State) Stopped() bool {
	return s.stop.Load()
}

// IncProduced records one message admitted by a producer.
func (s *State) IncProduced() {
	s.produced.Add(1)
}

// IncProcessed records one message that a processor finished handling.
func (s *State) IncProcessed() {
	s.processed.Add(1)
}

// IncDelivered records one message a strategy consumed from Stage-2.
func (s *State) IncDelivered() {
	s.delivered.Add(1)
}

// Produced returns the current produced count.
func (s *State) Produced() int64 { return s.produced.Load() }

// Processed returns the current processed count.
func (s *State) Processed() int64 { return s.processed.Load() }

// Delivered returns the current delivered count.
func (s *State) Delivered() int64 { return s.delivered.Load() }

// Lost returns the flow-balance indicator produced minus delivered. It is
// not a count of dropped messages but a live measure of how far the system
// is from having flushed everything currently in flight; after Stop it also
// includes any message a processor abandoned mid-retry and anything left
// undrained in the rings.
func (s *State) Lost() int64 {
	return s.produced.Load() - s.delivered.Load()
}
