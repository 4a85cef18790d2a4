package ir

import (
	"fmt"
	"slices"

	"github.com/roach88/transposon/internal/genome"
)

// OpKind names a genome operation.
type OpKind string

const (
	OpInsert  OpKind = "insert"
	OpCopy    OpKind = "copy"
	OpDisable OpKind = "disable"
)

// Op is a single journaled genome operation.
//
// Field usage by kind:
//   - insert:  Pos, Length
//   - copy:    TE, Offset
//   - disable: TE
type Op struct {
	Seq    int64  `json:"seq"`
	Kind   OpKind `json:"kind"`
	Pos    int    `json:"pos,omitempty"`
	Length int    `json:"length,omitempty"`
	TE     int    `json:"te,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Insert builds an insert op.
func Insert(pos, length int) Op {
	return Op{Kind: OpInsert, Pos: pos, Length: length}
}

// Copy builds a copy op.
func Copy(te, offset int) Op {
	return Op{Kind: OpCopy, TE: te, Offset: offset}
}

// Disable builds a disable op.
func Disable(te int) Op {
	return Op{Kind: OpDisable, TE: te}
}

// Validate reports whether the op kind is known.
func (o Op) Validate() error {
	switch o.Kind {
	case OpInsert, OpCopy, OpDisable:
		return nil
	default:
		return fmt.Errorf("unknown op kind %q", o.Kind)
	}
}

// Args returns the kind-specific arguments as a canonical JSON object.
func (o Op) Args() map[string]any {
	switch o.Kind {
	case OpInsert:
		return map[string]any{"pos": o.Pos, "length": o.Length}
	case OpCopy:
		return map[string]any{"te": o.TE, "offset": o.Offset}
	case OpDisable:
		return map[string]any{"te": o.TE}
	default:
		return map[string]any{}
	}
}

func (o Op) String() string {
	switch o.Kind {
	case OpInsert:
		return fmt.Sprintf("insert(pos=%d, length=%d)", o.Pos, o.Length)
	case OpCopy:
		return fmt.Sprintf("copy(te=%d, offset=%d)", o.TE, o.Offset)
	case OpDisable:
		return fmt.Sprintf("disable(te=%d)", o.TE)
	default:
		return fmt.Sprintf("%s(?)", o.Kind)
	}
}

// Outcome is what an Op returned.
//
// For insert, ID is the new TE and OK is always true. For copy, OK is false
// when the source TE was not active. For disable, OK reports whether the TE
// was active before the call; ID is always 0.
type Outcome struct {
	ID int  `json:"id"`
	OK bool `json:"ok"`
}

// Apply performs the op on g.
func (o Op) Apply(g genome.Genome) (Outcome, error) {
	switch o.Kind {
	case OpInsert:
		return Outcome{ID: g.InsertTE(o.Pos, o.Length), OK: true}, nil
	case OpCopy:
		id, ok := g.CopyTE(o.TE, o.Offset)
		return Outcome{ID: id, OK: ok}, nil
	case OpDisable:
		active := slices.Contains(g.ActiveTEs(), o.TE)
		g.DisableTE(o.TE)
		return Outcome{OK: active}, nil
	default:
		return Outcome{}, fmt.Errorf("apply %s: %w", o, o.Validate())
	}
}

// Entry is a journaled op together with its result and the digest of the
// genome state right after it.
type Entry struct {
	GenomeID string  `json:"genome_id"`
	Op       Op      `json:"op"`
	Outcome  Outcome `json:"outcome"`
	Digest   string  `json:"digest"`
}

// GenomeInfo describes a journaled genome.
type GenomeInfo struct {
	ID             string      `json:"id"`
	Kind           genome.Kind `json:"kind"`
	InitialSize    int         `json:"initial_size"`
	CreatedSeq     int64       `json:"created_seq"`
	JournalVersion string      `json:"journal_version"`
}

// Checkpoint is a full genome state captured after the op with the given seq.
type Checkpoint struct {
	GenomeID string       `json:"genome_id"`
	Seq      int64        `json:"seq"`
	State    genome.State `json:"state"`
}
