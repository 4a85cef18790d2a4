// Package engine journals genome operations.
//
// A Recorder owns one genome and is its single writer. Every operation is
// stamped with a seq from a logical clock, checked against quotas, applied,
// digested and appended to the journal (and to the store when one is
// configured). Replay and Load rebuild a genome from a journal and fail
// with REPLAY_DIVERGED when any recorded outcome or digest differs.
//
// Seq numbers come from Clock, never from wall-clock time. Two runs of the
// same operations produce identical journals.
package engine
