package engine

import (
	"errors"
	"fmt"
)

// QuotaEnforcer bounds how far a journaled genome may grow.
//
// Two limits apply, each disabled when zero:
//   - maxLength caps the number of symbols after an op
//   - maxOps caps the number of journaled ops
//
// Every insert and successful copy grows the genome, so a long-running
// journal without limits grows without bound.
type QuotaEnforcer struct {
	maxLength int
	maxOps    int
	ops       int
}

// NewQuotaEnforcer creates a quota enforcer with the given limits.
func NewQuotaEnforcer(maxLength, maxOps int) *QuotaEnforcer {
	return &QuotaEnforcer{
		maxLength: maxLength,
		maxOps:    maxOps,
	}
}

// Check validates one more op that would leave the genome with
// projectedLen symbols. The op is counted only when it passes.
func (q *QuotaEnforcer) Check(genomeID string, projectedLen int) error {
	if q.maxOps > 0 && q.ops+1 > q.maxOps {
		return &OpsExceededError{
			GenomeID: genomeID,
			Ops:      q.ops + 1,
			Limit:    q.maxOps,
		}
	}
	if q.maxLength > 0 && projectedLen > q.maxLength {
		return &LengthExceededError{
			GenomeID: genomeID,
			Length:   projectedLen,
			Limit:    q.maxLength,
		}
	}
	q.ops++
	return nil
}

// Reset sets the op counter back to n. Load uses it to account for the
// ops already in a journal.
func (q *QuotaEnforcer) Reset(n int) {
	q.ops = n
}

// Ops returns the number of ops counted so far.
func (q *QuotaEnforcer) Ops() int {
	return q.ops
}

// MaxLength returns the length limit (0 = unlimited).
func (q *QuotaEnforcer) MaxLength() int {
	return q.maxLength
}

// MaxOps returns the op limit (0 = unlimited).
func (q *QuotaEnforcer) MaxOps() int {
	return q.maxOps
}

// LengthExceededError is returned when an op would grow a genome past its
// length quota. The genome is left untouched.
type LengthExceededError struct {
	GenomeID string // The genome that hit the quota
	Length   int    // Length the op would have produced
	Limit    int    // Maximum allowed length
}

// Error implements the error interface.
func (e *LengthExceededError) Error() string {
	return fmt.Sprintf("genome %s exceeded max length quota: %d symbols > %d limit",
		e.GenomeID, e.Length, e.Limit)
}

// OpsExceededError is returned when a genome has journaled its maximum
// number of ops.
type OpsExceededError struct {
	GenomeID string
	Ops      int
	Limit    int
}

// Error implements the error interface.
func (e *OpsExceededError) Error() string {
	return fmt.Sprintf("genome %s exceeded max ops quota: %d ops > %d limit",
		e.GenomeID, e.Ops, e.Limit)
}

// IsLengthExceededError returns true if the error is a LengthExceededError.
// Uses errors.As to handle wrapped errors.
func IsLengthExceededError(err error) bool {
	var le *LengthExceededError
	return errors.As(err, &le)
}
