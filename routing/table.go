// Package routing implements the type-indexed routing tables that fan
// producers onto processor shards (Stage-1) and processor shards onto
// strategy shards (Stage-2). The table is a dense array, not a map: with
// only message.TypeCount slots, an array index is already optimal and a
// hash map or interface-based dispatcher would only add an indirection.
package routing

import (
	"fmt"

	"dispatchfabric/message"
)

// Table is a total function from message type to destination shard index,
// built once at configuration time and never mutated afterward.
type Table struct {
	routes [message.TypeCount]int
}

// NewTable builds a routing table from a dense route slice. routes must
// have exactly message.TypeCount entries; each entry must be a valid index
// into a shard set of size shardCount. An out-of-range route index or a
// badly sized input is a configuration error, reported rather than
// clamped, so a bad scenario file fails fast instead of silently routing
// traffic to the wrong shard.
func NewTable(routes []int, shardCount int) (*Table, error) {
	if len(routes) != message.TypeCount {
		return nil, fmt.Errorf("routing: expected %d route entries, got %d", message.TypeCount, len(routes))
	}
	if shardCount < 1 {
		return nil, fmt.Errorf("routing: shard count must be >= 1, got %d", shardCount)
	}
	var t Table
	for msgType, dest := range routes {
		if dest < 0 || dest >= shardCount {
			return nil, fmt.Errorf("routing: type %d routes to out-of-range shard %d (have %d shards)", msgType, dest, shardCount)
		}
		t.routes[msgType] = dest
	}
	return &t, nil
}

// Route returns the destination shard index for msgType. msgType must be in
// [0, message.TypeMax]; the caller is responsible for that bound since
// producers draw types from a distribution already confined to that range.
func (t *Table) Route(msgType uint8) int {
	return t.routes[msgType]
}
