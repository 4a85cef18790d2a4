// Package genome models a circular genome into which transposable elements
// (TEs) are inserted, copied and disabled.
//
// Two representations satisfy the Genome contract:
//
//   - ArrayGenome keeps the symbols in a resizable slice. Inserts and disables
//     shift or repaint in place.
//   - LinkedGenome keeps the symbols in a circular doubly-linked list with a
//     sentinel node. Nodes live in an arena and are addressed by index; the
//     sentinel is index 0 and never holds data.
//
// Both share a Registry mapping TE id to its (start, length) record. The
// registry is the single source of truth for active TEs; the symbol sequence
// is derived from it and never consulted for bookkeeping.
//
// # Positions
//
// All positions are circular. InsertTE and CopyTE normalize their inputs
// modulo the current genome length instead of rejecting them. A TE span never
// wraps: it is always spliced in as a contiguous run starting at a normalized
// position.
//
// # Collisions
//
// Inserting at pos disables the active TE whose span satisfies
// start < pos <= start+length. The end boundary collides, the start boundary
// does not. Every other active TE at or after pos is shifted right by the
// inserted length.
//
// # Concurrency
//
// Genomes are single-writer values. No method is safe for concurrent use with
// a mutating method.
package genome
