package genome

import "strings"

// sentinel is the arena index of the node that terminates both ends of the
// list. It never holds data.
const sentinel = 0

// nilLink marks an unlinked end of a detached chain.
const nilLink = -1

type node struct {
	sym  Symbol
	prev int
	next int
}

// LinkedGenome stores the genome as a circular doubly-linked list.
//
// Nodes live in an arena slice and refer to each other by index. Node 0 is
// the sentinel: its next is the first symbol and its prev the last one, so
// splicing at either end of the genome needs no special case. Slots of
// nodes removed by DisableTE are recycled through a free list.
//
// Len and String walk the full list; no length is cached.
type LinkedGenome struct {
	nodes []node
	free  []int
	reg   *Registry
}

var _ Tracked = (*LinkedGenome)(nil)

// NewLinked creates a list-backed genome of n empty symbols.
// Negative sizes are treated as 0.
func NewLinked(n int) *LinkedGenome {
	n = clampLength(n)
	g := &LinkedGenome{
		nodes: make([]node, 1, n+1),
		reg:   NewRegistry(),
	}
	g.nodes[sentinel] = node{prev: sentinel, next: sentinel}
	first, last := g.chain(Empty, n)
	g.spliceAfter(sentinel, first, last)
	return g
}

func (g *LinkedGenome) InsertTE(pos, length int) int {
	length = clampLength(length)
	pos = normalize(pos, g.Len())

	id, victim, collided := g.reg.admit(pos, length)
	if collided {
		g.repaint(victim, Disabled)
	}

	first, last := g.chain(Active, length)
	g.spliceAfter(g.walk(pos), first, last)
	return id
}

func (g *LinkedGenome) CopyTE(te, offset int) (int, bool) {
	rec, ok := g.reg.Get(te)
	if !ok {
		return 0, false
	}
	return g.InsertTE(copyTarget(rec, offset, g.Len()), rec.Length), true
}

func (g *LinkedGenome) DisableTE(te int) {
	if rec, ok := g.reg.Remove(te); ok {
		g.repaint(rec, Disabled)
	}
}

func (g *LinkedGenome) ActiveTEs() []int {
	return g.reg.IDs()
}

func (g *LinkedGenome) Len() int {
	n := 0
	for idx := g.nodes[sentinel].next; idx != sentinel; idx = g.nodes[idx].next {
		n++
	}
	return n
}

func (g *LinkedGenome) String() string {
	var b strings.Builder
	for idx := g.nodes[sentinel].next; idx != sentinel; idx = g.nodes[idx].next {
		b.WriteByte(byte(g.nodes[idx].sym))
	}
	return b.String()
}

// Links renders the list in element form, e.g. "[-, A, x]". It walks the
// prev links so a broken back-pointer shows up as a mismatch with String.
func (g *LinkedGenome) Links() string {
	var elems []string
	for idx := g.nodes[sentinel].prev; idx != sentinel; idx = g.nodes[idx].prev {
		elems = append(elems, g.nodes[idx].sym.String())
	}
	for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
		elems[i], elems[j] = elems[j], elems[i]
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// Record implements Tracked.
func (g *LinkedGenome) Record(te int) (Record, bool) {
	return g.reg.Get(te)
}

// Kind implements Tracked.
func (g *LinkedGenome) Kind() Kind {
	return KindLinked
}

// State implements Tracked.
func (g *LinkedGenome) State() State {
	return State{
		Kind:    KindLinked,
		Symbols: g.String(),
		Records: g.reg.Records(),
		LastID:  g.reg.Last(),
	}
}

// walk returns the node steps links after the sentinel. walk(0) is the
// sentinel itself, so walk(pos) is the predecessor of position pos.
func (g *LinkedGenome) walk(steps int) int {
	idx := sentinel
	for i := 0; i < steps; i++ {
		idx = g.nodes[idx].next
	}
	return idx
}

// chain allocates count detached nodes holding sym and links them in order.
// An empty chain is returned as (nilLink, nilLink).
func (g *LinkedGenome) chain(sym Symbol, count int) (first, last int) {
	first, last = nilLink, nilLink
	for i := 0; i < count; i++ {
		idx := g.alloc(sym)
		if last == nilLink {
			first = idx
		} else {
			g.nodes[last].next = idx
			g.nodes[idx].prev = last
		}
		last = idx
	}
	return first, last
}

// spliceAfter links the chain first..last between at and its successor.
func (g *LinkedGenome) spliceAfter(at, first, last int) {
	if first == nilLink {
		return
	}
	succ := g.nodes[at].next
	g.nodes[at].next = first
	g.nodes[first].prev = at
	g.nodes[last].next = succ
	g.nodes[succ].prev = last
}

// repaint replaces the span of rec with a fresh chain of sym nodes and
// releases the old nodes.
func (g *LinkedGenome) repaint(rec Record, sym Symbol) {
	if rec.Length == 0 {
		return
	}
	pred := g.walk(rec.Start)
	oldFirst := g.nodes[pred].next
	oldLast := oldFirst
	for i := 1; i < rec.Length; i++ {
		oldLast = g.nodes[oldLast].next
	}
	succ := g.nodes[oldLast].next

	// The old nodes keep their internal next links until release walks them.
	g.nodes[pred].next = succ
	g.nodes[succ].prev = pred

	first, last := g.chain(sym, rec.Length)
	g.spliceAfter(pred, first, last)
	g.release(oldFirst, rec.Length)
}

func (g *LinkedGenome) alloc(sym Symbol) int {
	n := node{sym: sym, prev: nilLink, next: nilLink}
	if k := len(g.free); k > 0 {
		idx := g.free[k-1]
		g.free = g.free[:k-1]
		g.nodes[idx] = n
		return idx
	}
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1
}

// release returns count nodes starting at first to the free list. The nodes
// must already be unlinked from the list.
func (g *LinkedGenome) release(first, count int) {
	idx := first
	for i := 0; i < count; i++ {
		next := g.nodes[idx].next
		g.nodes[idx] = node{prev: nilLink, next: nilLink}
		g.free = append(g.free, idx)
		idx = next
	}
}
