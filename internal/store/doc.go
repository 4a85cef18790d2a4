// Package store provides SQLite-backed durable storage for genome journals.
//
// The store holds three append-only tables:
//   - genomes: one row per journaled genome (kind, initial size, journal version)
//   - ops: every InsertTE/CopyTE/DisableTE call with its outcome and the
//     digest of the genome state right after it
//   - checkpoints: full genome states captured at a given seq
//
// # Ordering and identity
//
// All ordering uses the seq column (a logical clock), never timestamps.
// Reads return ops ORDER BY seq ASC, so a journal replays in the order it
// was written. Op rows are keyed by ir.OpID, a content hash, which makes
// rewriting the same entry a no-op.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: ops and checkpoints must name a known genome
package store
