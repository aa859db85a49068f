package pipeline

import "math/rand"

// producedTypeCount is the number of distinct message types a producer
// actually draws from: [0,3], not the full [0, message.TypeMax] routing
// range. message.TypeCount sizes the routing tables so any type can be
// routed, but the traffic generator itself only ever emits types 0-3,
// matching the original harness's type_dist(0, 3).
const producedTypeCount = 4

// typeGenerator draws a uniformly distributed message type in [0,3] for
// one producer. Each producer gets its own generator seeded off its
// producer ID so two producers never draw correlated sequences, mirroring
// the per-thread mt19937 generator the original harness seeds with
// producer_id+1.
type typeGenerator struct {
	rng *rand.Rand
}

func newTypeGenerator(seed uint64) *typeGenerator {
	return &typeGenerator{rng: rand.New(rand.NewSource(int64(seed)))}
}

func (g *typeGenerator) next() uint8 {
	return uint8(g.rng.Intn(producedTypeCount))
}
