package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestGenome registers a genome and fails the test on error.
func createTestGenome(t *testing.T, s *Store, id string, kind genome.Kind, size int) ir.GenomeInfo {
	t.Helper()
	info := ir.GenomeInfo{
		ID:             id,
		Kind:           kind,
		InitialSize:    size,
		JournalVersion: ir.JournalVersion,
	}
	if err := s.CreateGenome(context.Background(), info); err != nil {
		t.Fatalf("CreateGenome() failed: %v", err)
	}
	return info
}

// journal applies ops to a fresh genome and returns the resulting entries,
// stamped with seq 1, 2, ...
func journal(t *testing.T, genomeID string, g genome.Tracked, ops ...ir.Op) []ir.Entry {
	t.Helper()
	entries := make([]ir.Entry, 0, len(ops))
	for i, op := range ops {
		op.Seq = int64(i + 1)
		out, err := op.Apply(g)
		if err != nil {
			t.Fatalf("Apply(%s) failed: %v", op, err)
		}
		entries = append(entries, ir.Entry{
			GenomeID: genomeID,
			Op:       op,
			Outcome:  out,
			Digest:   ir.MustStateDigest(g.State()),
		})
	}
	return entries
}
