package genome

import (
	"slices"
	"strings"
)

// ArrayGenome stores the genome as a flat, directly indexable slice.
// Inserts and disables cost O(n) because of shifting and repainting.
type ArrayGenome struct {
	seq []Symbol
	reg *Registry
}

var _ Tracked = (*ArrayGenome)(nil)

// NewArray creates an array-backed genome of n empty symbols.
// Negative sizes are treated as 0.
func NewArray(n int) *ArrayGenome {
	return &ArrayGenome{
		seq: run(Empty, clampLength(n)),
		reg: NewRegistry(),
	}
}

func (g *ArrayGenome) InsertTE(pos, length int) int {
	length = clampLength(length)
	pos = normalize(pos, len(g.seq))

	id, victim, collided := g.reg.admit(pos, length)
	if collided {
		g.paint(victim, Disabled)
	}
	g.seq = slices.Insert(g.seq, pos, run(Active, length)...)
	return id
}

func (g *ArrayGenome) CopyTE(te, offset int) (int, bool) {
	rec, ok := g.reg.Get(te)
	if !ok {
		return 0, false
	}
	return g.InsertTE(copyTarget(rec, offset, len(g.seq)), rec.Length), true
}

func (g *ArrayGenome) DisableTE(te int) {
	if rec, ok := g.reg.Remove(te); ok {
		g.paint(rec, Disabled)
	}
}

func (g *ArrayGenome) ActiveTEs() []int {
	return g.reg.IDs()
}

func (g *ArrayGenome) Len() int {
	return len(g.seq)
}

func (g *ArrayGenome) String() string {
	var b strings.Builder
	b.Grow(len(g.seq))
	for _, s := range g.seq {
		b.WriteByte(byte(s))
	}
	return b.String()
}

// Record implements Tracked.
func (g *ArrayGenome) Record(te int) (Record, bool) {
	return g.reg.Get(te)
}

// Kind implements Tracked.
func (g *ArrayGenome) Kind() Kind {
	return KindArray
}

// State implements Tracked.
func (g *ArrayGenome) State() State {
	return State{
		Kind:    KindArray,
		Symbols: g.String(),
		Records: g.reg.Records(),
		LastID:  g.reg.Last(),
	}
}

func (g *ArrayGenome) paint(rec Record, sym Symbol) {
	for i := rec.Start; i < rec.End(); i++ {
		g.seq[i] = sym
	}
}

// run returns n copies of sym.
func run(sym Symbol, n int) []Symbol {
	out := make([]Symbol, n)
	for i := range out {
		out[i] = sym
	}
	return out
}
