package store

import (
	"context"
	"fmt"

	"github.com/roach88/transposon/internal/ir"
)

// CreateGenome registers a journaled genome.
// Uses ON CONFLICT(id) DO NOTHING - registering the same id twice is a no-op.
func (s *Store) CreateGenome(ctx context.Context, info ir.GenomeInfo) error {
	version := info.JournalVersion
	if version == "" {
		version = ir.JournalVersion
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO genomes (id, kind, initial_size, created_seq, journal_version)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		info.ID,
		string(info.Kind),
		info.InitialSize,
		info.CreatedSeq,
		version,
	)
	if err != nil {
		return fmt.Errorf("create genome: %w", err)
	}
	return nil
}

// WriteEntry appends a journal entry.
//
// The row id is ir.OpID(genome, op), so writing the same entry twice is
// silently ignored. A different op at an already used (genome, seq) violates
// the UNIQUE constraint and returns an error.
func (s *Store) WriteEntry(ctx context.Context, e ir.Entry) error {
	id, err := ir.OpID(e.GenomeID, e.Op)
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ops
		(id, genome_id, seq, kind, pos, length, te, copy_offset, result_id, result_ok, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		e.GenomeID,
		e.Op.Seq,
		string(e.Op.Kind),
		e.Op.Pos,
		e.Op.Length,
		e.Op.TE,
		e.Op.Offset,
		e.Outcome.ID,
		boolToInt(e.Outcome.OK),
		e.Digest,
	)
	if err != nil {
		return fmt.Errorf("write entry seq=%d: %w", e.Op.Seq, err)
	}
	return nil
}

// WriteCheckpoint stores a full genome state.
// The digest is recomputed from the state so a checkpoint can be verified
// when it is read back. Rewriting the same (genome, seq) is a no-op.
func (s *Store) WriteCheckpoint(ctx context.Context, cp ir.Checkpoint) error {
	records, err := marshalRecords(cp.State.Records)
	if err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	digest, err := ir.StateDigest(cp.State)
	if err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (genome_id, seq, last_id, symbols, records, digest)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(genome_id, seq) DO NOTHING
	`,
		cp.GenomeID,
		cp.Seq,
		cp.State.LastID,
		compressSymbols(cp.State.Symbols),
		records,
		digest,
	)
	if err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}
