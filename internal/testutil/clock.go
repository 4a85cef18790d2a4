package testutil

// DeterministicClock is a resettable logical clock for tests.
//
// Unlike engine.Clock, it can be rewound so the same scenario yields the
// same seq values on every run. It satisfies engine.SeqSource.
//
// Not safe for concurrent use; journals are single-writer.
type DeterministicClock struct {
	seq int64
}

// NewDeterministicClock creates a clock whose first Next() returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next increments and returns the sequence number.
func (c *DeterministicClock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the sequence number without incrementing.
func (c *DeterministicClock) Current() int64 {
	return c.seq
}

// Reset rewinds the clock to 0.
func (c *DeterministicClock) Reset() {
	c.seq = 0
}
