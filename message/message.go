// Package message defines the fixed-layout record that flows through the
// dispatch fabric: producer -> Stage-1 ring -> processor -> Stage-2 ring ->
// strategy. Message is plain data, trivially copyable, and never heap
// allocated on the per-message path once a pipeline is running.
package message

// TypeMax is the highest valid MsgType value; there are TypeMax+1 routing
// slots. The routing tables in package routing are sized off this constant.
const TypeMax = 7

// TypeCount is the number of distinct message types, 0..TypeMax inclusive.
const TypeCount = TypeMax + 1

// RingCapacity is the per-shard SPSC ring capacity. It must be a power of
// two; spscring.New panics otherwise.
const RingCapacity = 1 << 14

// Message is the unit of work moved through the fabric. Fields are ordered
// to match the order they are populated: a producer sets MsgType, ProducerID,
// Sequence and TimestampNs; a processor later sets ProcessorID and
// ProcessedNs. Before Stage-1 exit, ProcessorID and ProcessedNs are zero and
// meaningless.
type Message struct {
	MsgType     uint8
	ProducerID  uint32
	Sequence    uint64
	TimestampNs int64

	ProcessorID uint32
	ProcessedNs int64
}
