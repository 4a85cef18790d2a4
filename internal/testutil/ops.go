package testutil

import (
	"math/rand/v2"

	"github.com/roach88/transposon/internal/ir"
)

// RandomOps returns count pseudo-random genome operations for a genome that
// starts with size symbols. The same seed always yields the same ops.
//
// The mix deliberately strays outside the happy path: positions and offsets
// range over several turns of the genome in both directions, lengths are
// occasionally zero or negative, and copy/disable targets include ids that
// were never allocated or are already disabled.
func RandomOps(seed uint64, count, size int) []ir.Op {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	span := max(size, 1)

	ops := make([]ir.Op, 0, count)
	for i := 0; i < count; i++ {
		// At most i ids exist before op i; i+1 is never active.
		te := r.IntN(i + 2)

		switch roll := r.IntN(100); {
		case roll < 45:
			length := r.IntN(6)
			if r.IntN(20) == 0 {
				length = -1
			}
			ops = append(ops, ir.Insert(r.IntN(4*span+1)-2*span, length))
		case roll < 80:
			ops = append(ops, ir.Copy(te, r.IntN(6*span+1)-3*span))
		default:
			ops = append(ops, ir.Disable(te))
		}
	}
	return ops
}
