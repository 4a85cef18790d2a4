package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/transposon/internal/ir"
)

func TestRandomOps_Deterministic(t *testing.T) {
	a := RandomOps(42, 50, 20)
	b := RandomOps(42, 50, 20)
	c := RandomOps(43, 50, 20)

	require.Len(t, a, 50)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestRandomOps_CoversEveryKind(t *testing.T) {
	seen := map[ir.OpKind]int{}
	for _, op := range RandomOps(7, 300, 10) {
		require.NoError(t, op.Validate())
		seen[op.Kind]++
	}

	assert.Positive(t, seen[ir.OpInsert])
	assert.Positive(t, seen[ir.OpCopy])
	assert.Positive(t, seen[ir.OpDisable])
}

func TestFixedIDGenerator(t *testing.T) {
	assert.Equal(t, "g-1", NewFixedIDGenerator("g-1").Generate())
	assert.Equal(t, "test-genome-default", NewFixedIDGenerator("").Generate())
}
