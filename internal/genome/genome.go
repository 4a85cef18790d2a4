package genome

import "fmt"

// Genome is a circular sequence of symbols holding transposable elements.
//
// Implementations must produce identical observable results (ids, String,
// ActiveTEs, Len) for the same sequence of calls.
type Genome interface {
	// InsertTE inserts length active symbols at circular position pos and
	// returns the new TE id. An active TE with start < pos <= start+length is
	// disabled first. Active TEs at or after pos are shifted by length.
	InsertTE(pos, length int) int

	// CopyTE inserts a copy of te at (start+offset) mod Len(). Positive
	// offsets copy upwards, negative offsets downwards. Returns false and
	// leaves the genome untouched when te is not active.
	CopyTE(te, offset int) (int, bool)

	// DisableTE repaints te as disabled and forgets it. Disabling an id that
	// is not active is a no-op.
	DisableTE(te int)

	// ActiveTEs returns the ids of all active TEs in ascending order.
	ActiveTEs() []int

	// Len returns the number of symbols in the genome.
	Len() int

	// String renders the genome linearly, starting at position 0.
	String() string
}

// Tracked is a Genome that exposes its complete bookkeeping state.
// Both ArrayGenome and LinkedGenome implement it.
type Tracked interface {
	Genome

	// Kind reports which representation backs the genome.
	Kind() Kind

	// State returns an independent copy of the genome's state.
	State() State

	// Record looks up an active TE.
	Record(te int) (Record, bool)
}

// New creates a genome of n empty symbols backed by the given representation.
func New(kind Kind, n int) (Tracked, error) {
	switch kind {
	case KindArray:
		return NewArray(n), nil
	case KindLinked:
		return NewLinked(n), nil
	default:
		return nil, fmt.Errorf("new genome: unknown kind %q", kind)
	}
}

// normalize maps pos onto [0, n). An empty genome only has position 0.
func normalize(pos, n int) int {
	if n <= 0 {
		return 0
	}
	pos %= n
	if pos < 0 {
		pos += n
	}
	return pos
}

// copyTarget computes where a copy of rec lands in a genome of n symbols.
func copyTarget(rec Record, offset, n int) int {
	return normalize(rec.Start+normalize(offset, n), n)
}

func clampLength(length int) int {
	if length < 0 {
		return 0
	}
	return length
}
