package engine

import "math/rand"

// Bag deals piece kinds in shuffled rounds of seven. Every kind appears
// exactly once per round.
type Bag struct {
	rng   *rand.Rand
	queue []Kind
}

// NewBag creates an empty bag drawing randomness from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{
		rng:   rng,
		queue: make([]Kind, 0, len(Kinds)),
	}
}

// Refill appends a fresh random permutation of all kinds, picking a random
// index from a shrinking working list each time.
func (b *Bag) Refill() {
	working := append([]Kind(nil), Kinds[:]...)
	for len(working) > 0 {
		i := b.rng.Intn(len(working))
		b.queue = append(b.queue, working[i])
		working = append(working[:i], working[i+1:]...)
	}
}

// Next removes and returns the next kind, refilling when empty.
func (b *Bag) Next() Kind {
	if len(b.queue) == 0 {
		b.Refill()
	}
	last := len(b.queue) - 1
	k := b.queue[last]
	b.queue = b.queue[:last]
	return k
}

// Peek returns the kind Next would return without consuming it.
func (b *Bag) Peek() Kind {
	if len(b.queue) == 0 {
		b.Refill()
	}
	return b.queue[len(b.queue)-1]
}

// Len returns the number of kinds left in the current round.
func (b *Bag) Len() int {
	return len(b.queue)
}

// Reset drops any undealt kinds.
func (b *Bag) Reset() {
	b.queue = b.queue[:0]
}
