// Package pipeline wires producers, processors and strategies onto
// routed SPSC rings and drives one run start to finish. Its shape follows
// the reference codebase's router/aggregator split — a dense routing table
// deciding which shard a unit of work lands on, independent goroutines
// draining each shard — generalized from that codebase's fixed three-core
// Ethereum fan-in to the configurable N producers / M processors / K
// strategies a scenario file names.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"dispatchfabric/clock"
	"dispatchfabric/config"
	"dispatchfabric/control"
	"dispatchfabric/latencystats"
	"dispatchfabric/message"
	"dispatchfabric/routing"
	"dispatchfabric/spscring"
)

// Pipeline owns every goroutine and ring for one scenario run. Construct
// builds it from a validated config; Start launches the worker goroutines;
// Stop requests shutdown and waits for them to exit.
type Pipeline struct {
	cfg *config.Config

	stage1Routes *routing.Table
	stage2Routes *routing.Table

	stage1 []*spscring.Ring[message.Message]
	stage2 []*spscring.Ring[message.Message]

	state *control.State
	sink  *latencystats.Sink

	// Separate wait groups per role so Stop can join roots-first — producers,
	// then processors, then strategies — matching the teardown order the
	// pipeline controller is required to follow.
	producers  sync.WaitGroup
	processors sync.WaitGroup
	strategies sync.WaitGroup
}

// Construct builds a Pipeline's rings and routing tables from cfg but does
// not start any goroutines yet.
func Construct(cfg *config.Config) (*Pipeline, error) {
	stage1Routes, err := routing.NewTable(cfg.Stage1Routing[:], cfg.ProcessorCount)
	if err != nil {
		return nil, fmt.Errorf("pipeline: stage-1 routing: %w", err)
	}
	stage2Routes, err := routing.NewTable(cfg.Stage2Routing[:], cfg.StrategyCount)
	if err != nil {
		return nil, fmt.Errorf("pipeline: stage-2 routing: %w", err)
	}

	stage1 := make([]*spscring.Ring[message.Message], cfg.ProcessorCount)
	for i := range stage1 {
		stage1[i] = spscring.New[message.Message](message.RingCapacity)
	}
	stage2 := make([]*spscring.Ring[message.Message], cfg.StrategyCount)
	for i := range stage2 {
		stage2[i] = spscring.New[message.Message](message.RingCapacity)
	}

	return &Pipeline{
		cfg:          cfg,
		stage1Routes: stage1Routes,
		stage2Routes: stage2Routes,
		stage1:       stage1,
		stage2:       stage2,
		state:        control.New(),
		sink:         latencystats.NewSink(),
	}, nil
}

// State returns the pipeline's shared shutdown/counter state.
func (p *Pipeline) State() *control.State { return p.state }

// Sink returns the pipeline's latency sample sink.
func (p *Pipeline) Sink() *latencystats.Sink { return p.sink }

// Stage1QueueLengths returns the current approximate length of every
// Stage-1 ring, in processor-shard order. For telemetry only.
func (p *Pipeline) Stage1QueueLengths() []int {
	out := make([]int, len(p.stage1))
	for i, r := range p.stage1 {
		out[i] = r.ApproxLen()
	}
	return out
}

// Stage2QueueLengths returns the current approximate length of every
// Stage-2 ring, in strategy-shard order. For telemetry only.
func (p *Pipeline) Stage2QueueLengths() []int {
	out := make([]int, len(p.stage2))
	for i, r := range p.stage2 {
		out[i] = r.ApproxLen()
	}
	return out
}

// Start launches one goroutine per strategy, processor and producer, in
// that order (leaves first). It returns immediately; the goroutines run
// until Stop is called and have drained or abandoned what they can.
func (p *Pipeline) Start() {
	p.strategies.Add(p.cfg.StrategyCount)
	for sid := 0; sid < p.cfg.StrategyCount; sid++ {
		go p.runStrategy(sid)
	}
	p.processors.Add(p.cfg.ProcessorCount)
	for procID := 0; procID < p.cfg.ProcessorCount; procID++ {
		go p.runProcessor(procID)
	}
	p.producers.Add(p.cfg.ProducerCount)
	for pid := 0; pid < p.cfg.ProducerCount; pid++ {
		go p.runProducer(pid)
	}
}

// Stop requests shutdown and blocks until every worker goroutine has
// exited, joining roots first: producers, then processors, then
// strategies. No entity this pipeline owns is safe to read or destroy
// until Stop returns.
func (p *Pipeline) Stop() {
	p.state.Stop()
	p.producers.Wait()
	p.processors.Wait()
	p.strategies.Wait()
}

func (p *Pipeline) runProducer(producerID int) {
	defer p.producers.Done()
	rng := newTypeGenerator(uint64(producerID + 1))
	var seq uint64
	for !p.state.Stopped() {
		msg := message.Message{
			MsgType:     rng.next(),
			ProducerID:  uint32(producerID),
			Sequence:    seq,
			TimestampNs: clock.Now(),
		}
		seq++
		dest := p.stage1Routes.Route(msg.MsgType)
		if p.stage1[dest].TryPush(msg) {
			p.state.IncProduced()
		} else {
			runtime.Gosched()
		}
	}
}

func (p *Pipeline) runProcessor(processorID int) {
	defer p.processors.Done()
	ring := p.stage1[processorID]
	for !p.state.Stopped() {
		msg, ok := ring.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		msg.ProcessorID = uint32(processorID)
		msg.ProcessedNs = clock.Now()

		dest := p.stage2Routes.Route(msg.MsgType)
		for !p.stage2[dest].TryPush(msg) {
			if p.state.Stopped() {
				return
			}
			runtime.Gosched()
		}
		p.state.IncProcessed()
	}
}

func (p *Pipeline) runStrategy(strategyID int) {
	defer p.strategies.Done()
	ring := p.stage2[strategyID]
	for !p.state.Stopped() {
		msg, ok := ring.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		end := clock.Now()
		stage1Us := float64(msg.ProcessedNs-msg.TimestampNs) / 1000.0
		stage2Us := float64(end-msg.ProcessedNs) / 1000.0
		processingUs := stage2Us
		totalUs := float64(end-msg.TimestampNs) / 1000.0

		p.sink.Append(stage1Us, processingUs, stage2Us, totalUs)
		p.state.IncDelivered()
	}
}
