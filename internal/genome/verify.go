package genome

import (
	"errors"
	"fmt"
	"slices"
)

// InvariantErrorCode categorizes bookkeeping violations.
type InvariantErrorCode string

const (
	// ErrCodeBadSymbol indicates a position holding an unknown symbol.
	ErrCodeBadSymbol InvariantErrorCode = "BAD_SYMBOL"

	// ErrCodeOutOfRange indicates a record whose span leaves the genome.
	ErrCodeOutOfRange InvariantErrorCode = "OUT_OF_RANGE"

	// ErrCodeOverlap indicates two active spans sharing a position.
	ErrCodeOverlap InvariantErrorCode = "OVERLAP"

	// ErrCodeNotActive indicates an active span containing a non-active symbol.
	ErrCodeNotActive InvariantErrorCode = "NOT_ACTIVE"

	// ErrCodeStrayActive indicates active symbols outside every active span.
	ErrCodeStrayActive InvariantErrorCode = "STRAY_ACTIVE"

	// ErrCodeDuplicateID indicates a record id seen twice.
	ErrCodeDuplicateID InvariantErrorCode = "DUPLICATE_ID"

	// ErrCodeFutureID indicates a record id that was never allocated.
	ErrCodeFutureID InvariantErrorCode = "FUTURE_ID"
)

// InvariantError reports a divergence between the registry and the symbol
// sequence. It is a programming error, never a user-facing condition.
type InvariantError struct {
	Code    InvariantErrorCode
	Message string

	// TE is the offending TE id, or 0.
	TE int

	// Pos is the offending position, or -1.
	Pos int
}

func (e *InvariantError) Error() string {
	switch {
	case e.TE != 0 && e.Pos >= 0:
		return fmt.Sprintf("%s: %s (te=%d, pos=%d)", e.Code, e.Message, e.TE, e.Pos)
	case e.TE != 0:
		return fmt.Sprintf("%s: %s (te=%d)", e.Code, e.Message, e.TE)
	case e.Pos >= 0:
		return fmt.Sprintf("%s: %s (pos=%d)", e.Code, e.Message, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvariantError reports whether err wraps an *InvariantError.
func IsInvariantError(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

// Verify checks that the registry of g agrees with its symbols:
// every active span lies inside the genome, consists only of active
// symbols, and overlaps no other span, and no active symbol lies outside
// an active span.
func Verify(g Tracked) error {
	return VerifyState(g.State())
}

// VerifyState applies the checks of Verify to a detached State.
func VerifyState(st State) error {
	n := len(st.Symbols)
	for i := 0; i < n; i++ {
		if !Symbol(st.Symbols[i]).Valid() {
			return &InvariantError{Code: ErrCodeBadSymbol, Message: fmt.Sprintf("symbol %q", st.Symbols[i]), Pos: i}
		}
	}

	recs := slices.Clone(st.Records)
	slices.SortFunc(recs, func(a, b Record) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.ID - b.ID
	})

	covered := 0
	prevEnd, prevID := 0, 0
	for _, rec := range recs {
		if rec.ID <= 0 || rec.ID > st.LastID {
			return &InvariantError{Code: ErrCodeFutureID, Message: fmt.Sprintf("last allocated id is %d", st.LastID), TE: rec.ID, Pos: -1}
		}
		if rec.Start < 0 || rec.Length < 0 || rec.End() > n {
			return &InvariantError{Code: ErrCodeOutOfRange, Message: fmt.Sprintf("span [%d,%d) outside genome of %d", rec.Start, rec.End(), n), TE: rec.ID, Pos: rec.Start}
		}
		if rec.Length > 0 && rec.Start < prevEnd {
			return &InvariantError{Code: ErrCodeOverlap, Message: fmt.Sprintf("overlaps te %d", prevID), TE: rec.ID, Pos: rec.Start}
		}
		for i := rec.Start; i < rec.End(); i++ {
			if Symbol(st.Symbols[i]) != Active {
				return &InvariantError{Code: ErrCodeNotActive, Message: fmt.Sprintf("symbol %q inside active span", st.Symbols[i]), TE: rec.ID, Pos: i}
			}
		}
		covered += rec.Length
		if rec.Length > 0 {
			prevEnd, prevID = rec.End(), rec.ID
		}
	}

	active := 0
	for i := 0; i < n; i++ {
		if Symbol(st.Symbols[i]) == Active {
			active++
		}
	}
	if active != covered {
		return &InvariantError{Code: ErrCodeStrayActive, Message: fmt.Sprintf("%d active symbols, %d covered by records", active, covered), Pos: -1}
	}
	return nil
}
