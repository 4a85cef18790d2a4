package genome

import (
	"fmt"
	"slices"
)

// State is a self-contained copy of a genome's bookkeeping: the rendered
// symbols, the active records ordered by id, and the last id handed out.
// It is what checkpoints persist and what state digests are computed over.
type State struct {
	Kind    Kind     `json:"kind"`
	Symbols string   `json:"symbols"`
	Records []Record `json:"records"`
	LastID  int      `json:"last_id"`
}

// Restore rebuilds a genome from a State. The result is verified before it
// is returned, so a corrupt state yields an *InvariantError.
func Restore(st State) (Tracked, error) {
	syms := make([]Symbol, len(st.Symbols))
	for i := 0; i < len(st.Symbols); i++ {
		syms[i] = Symbol(st.Symbols[i])
	}

	reg := NewRegistry()
	reg.last = st.LastID
	for _, rec := range st.Records {
		if _, dup := reg.records[rec.ID]; dup {
			return nil, &InvariantError{
				Code:    ErrCodeDuplicateID,
				Message: "record listed twice",
				TE:      rec.ID,
				Pos:     -1,
			}
		}
		reg.records[rec.ID] = rec
	}

	var g Tracked
	switch st.Kind {
	case KindArray:
		g = &ArrayGenome{seq: syms, reg: reg}
	case KindLinked:
		lg := &LinkedGenome{
			nodes: make([]node, 1, len(syms)+1),
			reg:   reg,
		}
		lg.nodes[sentinel] = node{prev: sentinel, next: sentinel}
		last := sentinel
		for _, s := range syms {
			first, _ := lg.chain(s, 1)
			lg.spliceAfter(last, first, first)
			last = first
		}
		g = lg
	default:
		return nil, fmt.Errorf("restore genome: unknown kind %q", st.Kind)
	}

	if err := Verify(g); err != nil {
		return nil, fmt.Errorf("restore genome: %w", err)
	}
	return g, nil
}

// Equal reports whether two states describe the same observable genome,
// ignoring the representation.
func (s State) Equal(o State) bool {
	return s.Symbols == o.Symbols && s.LastID == o.LastID && slices.Equal(s.Records, o.Records)
}
