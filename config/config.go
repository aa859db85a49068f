// Package config loads a scenario file and expands its sparse routing rules
// into the dense per-type tables routing.Table expects. Decoding goes
// through sonnet rather than encoding/json: it is a drop-in replacement
// with the same API and the same Unmarshal(data, &v) call shape the
// reference repo uses for exchange payload decoding; here it decodes only
// the config file, never anything on the message hot path.
package config

import (
	"fmt"
	"os"

	"github.com/sugawarayuuta/sonnet"

	"dispatchfabric/message"
)

// stage1Rule routes one message type to a processor shard.
type stage1Rule struct {
	MsgType    int   `json:"msg_type"`
	Processors []int `json:"processors"`
}

// stage2Rule routes one message type to a strategy shard.
type stage2Rule struct {
	MsgType  int `json:"msg_type"`
	Strategy int `json:"strategy"`
}

type countBlock struct {
	Count int `json:"count"`
}

// raw mirrors the on-disk JSON schema exactly.
type raw struct {
	DurationSecs int          `json:"duration_secs"`
	Producers    countBlock   `json:"producers"`
	Processors   countBlock   `json:"processors"`
	Strategies   countBlock   `json:"strategies"`
	Stage1Rules  []stage1Rule `json:"stage1_rules"`
	Stage2Rules  []stage2Rule `json:"stage2_rules"`
}

// Config is a validated, expanded scenario ready to drive a pipeline.
type Config struct {
	DurationSecs   int
	ProducerCount  int
	ProcessorCount int
	StrategyCount  int

	Stage1Routing [message.TypeCount]int
	Stage2Routing [message.TypeCount]int

	raw []byte
}

// RawBytes returns the exact file bytes Load parsed, for fingerprinting.
func (c *Config) RawBytes() []byte { return c.raw }

// Load reads and validates a scenario file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var r raw
	if err := sonnet.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg := &Config{
		DurationSecs:   r.DurationSecs,
		ProducerCount:  r.Producers.Count,
		ProcessorCount: r.Processors.Count,
		StrategyCount:  r.Strategies.Count,
		raw:            data,
	}

	if cfg.DurationSecs < 1 {
		return nil, fmt.Errorf("config: duration_secs must be >= 1, got %d", cfg.DurationSecs)
	}
	if cfg.ProducerCount < 1 {
		return nil, fmt.Errorf("config: producers.count must be >= 1, got %d", cfg.ProducerCount)
	}
	if cfg.ProcessorCount < 1 {
		return nil, fmt.Errorf("config: processors.count must be >= 1, got %d", cfg.ProcessorCount)
	}
	if cfg.StrategyCount < 1 {
		return nil, fmt.Errorf("config: strategies.count must be >= 1, got %d", cfg.StrategyCount)
	}

	for _, rule := range r.Stage1Rules {
		if rule.MsgType < 0 || rule.MsgType > message.TypeMax {
			return nil, fmt.Errorf("config: stage1_rules: msg_type %d out of range [0,%d]", rule.MsgType, message.TypeMax)
		}
		if len(rule.Processors) == 0 {
			return nil, fmt.Errorf("config: stage1_rules: msg_type %d has no processors", rule.MsgType)
		}
		dest := rule.Processors[0]
		if dest < 0 || dest >= cfg.ProcessorCount {
			return nil, fmt.Errorf("config: stage1_rules: msg_type %d routes to out-of-range processor %d", rule.MsgType, dest)
		}
		cfg.Stage1Routing[rule.MsgType] = dest
	}

	for _, rule := range r.Stage2Rules {
		if rule.MsgType < 0 || rule.MsgType > message.TypeMax {
			return nil, fmt.Errorf("config: stage2_rules: msg_type %d out of range [0,%d]", rule.MsgType, message.TypeMax)
		}
		if rule.Strategy < 0 || rule.Strategy >= cfg.StrategyCount {
			return nil, fmt.Errorf("config: stage2_rules: msg_type %d routes to out-of-range strategy %d", rule.MsgType, rule.Strategy)
		}
		cfg.Stage2Routing[rule.MsgType] = rule.Strategy
	}

	return cfg, nil
}
