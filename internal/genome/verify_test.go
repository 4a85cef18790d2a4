package genome

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyState_DetectsViolations(t *testing.T) {
	tests := []struct {
		name string
		st   State
		code InvariantErrorCode
	}{
		{
			name: "bad symbol",
			st:   State{Symbols: "--?-"},
			code: ErrCodeBadSymbol,
		},
		{
			name: "span past end",
			st:   State{Symbols: "--AA", Records: []Record{{ID: 1, Start: 2, Length: 3}}, LastID: 1},
			code: ErrCodeOutOfRange,
		},
		{
			name: "overlap",
			st: State{
				Symbols: "AAAA",
				Records: []Record{{ID: 1, Start: 0, Length: 3}, {ID: 2, Start: 2, Length: 2}},
				LastID:  2,
			},
			code: ErrCodeOverlap,
		},
		{
			name: "disabled symbol inside active span",
			st:   State{Symbols: "AxA-", Records: []Record{{ID: 1, Start: 0, Length: 3}}, LastID: 1},
			code: ErrCodeNotActive,
		},
		{
			name: "active symbol without record",
			st:   State{Symbols: "AA-A", Records: []Record{{ID: 1, Start: 0, Length: 2}}, LastID: 1},
			code: ErrCodeStrayActive,
		},
		{
			name: "id never allocated",
			st:   State{Symbols: "A", Records: []Record{{ID: 2, Start: 0, Length: 1}}, LastID: 1},
			code: ErrCodeFutureID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyState(tt.st)
			require.Error(t, err)

			var ie *InvariantError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.code, ie.Code)
		})
	}
}

func TestVerifyState_ZeroLengthRecordsNeverOverlap(t *testing.T) {
	st := State{
		Symbols: "AAA-",
		Records: []Record{{ID: 1, Start: 0, Length: 3}, {ID: 2, Start: 1, Length: 0}},
		LastID:  2,
	}
	assert.NoError(t, VerifyState(st))
}

func TestInvariantError_Format(t *testing.T) {
	err := &InvariantError{Code: ErrCodeOverlap, Message: "overlaps te 1", TE: 2, Pos: 4}
	assert.Equal(t, "OVERLAP: overlaps te 1 (te=2, pos=4)", err.Error())

	wrapped := fmt.Errorf("checkpoint: %w", err)
	assert.True(t, IsInvariantError(wrapped))
	assert.False(t, IsInvariantError(errors.New("other")))
}
