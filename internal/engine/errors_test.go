package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJournalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *JournalError
		want string
	}{
		{
			name: "genome and seq",
			err:  &JournalError{Code: ErrCodeReplayDiverged, Message: "outcome differs", GenomeID: "g-1", Seq: 4},
			want: "REPLAY_DIVERGED: outcome differs (genome=g-1, seq=4)",
		},
		{
			name: "genome only",
			err:  &JournalError{Code: ErrCodeUnknownOp, Message: `unknown op kind "splice"`, GenomeID: "g-1"},
			want: `UNKNOWN_OP: unknown op kind "splice" (genome=g-1)`,
		},
		{
			name: "bare",
			err:  &JournalError{Code: ErrCodeVersionMismatch, Message: "journal version"},
			want: "VERSION_MISMATCH: journal version",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsReplayError(t *testing.T) {
	diverged := newDivergedError("g-1", 2, "state digest differs", nil)

	assert.True(t, IsReplayError(diverged))
	assert.True(t, IsReplayError(fmt.Errorf("load g-1: %w", diverged)))
	assert.False(t, IsReplayError(&JournalError{Code: ErrCodeUnknownOp}))
	assert.False(t, IsReplayError(fmt.Errorf("plain")))
}
