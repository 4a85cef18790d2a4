// Package ir provides the journal representation of genome operations.
//
// An Op is one InsertTE, CopyTE or DisableTE call, stamped with a logical
// clock seq. Applying an Op to a genome yields an Outcome; the pair plus the
// post-op state digest forms an Entry, the unit the store persists and the
// engine replays.
//
// ir depends only on internal/genome. Identity and digests are computed over
// canonical JSON (RFC 8785 style) with domain-separated SHA-256, so the same
// operation sequence produces the same hashes on every run and for both
// genome representations.
//
// Key design constraints:
//   - no floats and no nulls in anything that is hashed
//   - logical clocks (seq) only, never wall-clock timestamps
//   - JSON tags use snake_case
package ir
