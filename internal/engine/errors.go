package engine

import (
	"errors"
	"fmt"
)

// JournalError represents an error detected while recording or replaying a
// genome journal. It carries structured fields for diagnostics.
type JournalError struct {
	// Code identifies the error category.
	Code JournalErrorCode

	// Message is a human-readable description.
	Message string

	// GenomeID identifies the affected genome, if known.
	GenomeID string

	// Seq is the journal position involved, or 0.
	Seq int64

	// Details contains additional context.
	Details map[string]string
}

// JournalErrorCode categorizes journal errors.
type JournalErrorCode string

const (
	// ErrCodeQuotaExceeded indicates an op would exceed a configured limit.
	ErrCodeQuotaExceeded JournalErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeReplayDiverged indicates a replayed op produced a different
	// outcome or state than the journal recorded.
	ErrCodeReplayDiverged JournalErrorCode = "REPLAY_DIVERGED"

	// ErrCodeUnknownOp indicates an op kind the journal does not know.
	ErrCodeUnknownOp JournalErrorCode = "UNKNOWN_OP"

	// ErrCodeVersionMismatch indicates a journal written by another format version.
	ErrCodeVersionMismatch JournalErrorCode = "VERSION_MISMATCH"
)

// Error implements the error interface.
func (e *JournalError) Error() string {
	if e.GenomeID != "" && e.Seq != 0 {
		return fmt.Sprintf("%s: %s (genome=%s, seq=%d)", e.Code, e.Message, e.GenomeID, e.Seq)
	}
	if e.GenomeID != "" {
		return fmt.Sprintf("%s: %s (genome=%s)", e.Code, e.Message, e.GenomeID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsReplayError returns true if the error is a replay divergence.
// Uses errors.As to handle wrapped errors.
func IsReplayError(err error) bool {
	var je *JournalError
	if errors.As(err, &je) {
		return je.Code == ErrCodeReplayDiverged
	}
	return false
}

// IsQuotaError returns true if the error is a quota error.
// Matches JournalError with ErrCodeQuotaExceeded, LengthExceededError and
// OpsExceededError.
func IsQuotaError(err error) bool {
	var je *JournalError
	if errors.As(err, &je) {
		return je.Code == ErrCodeQuotaExceeded
	}
	var le *LengthExceededError
	if errors.As(err, &le) {
		return true
	}
	var oe *OpsExceededError
	return errors.As(err, &oe)
}

func newDivergedError(genomeID string, seq int64, message string, details map[string]string) *JournalError {
	return &JournalError{
		Code:     ErrCodeReplayDiverged,
		Message:  message,
		GenomeID: genomeID,
		Seq:      seq,
		Details:  details,
	}
}
