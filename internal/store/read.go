package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
)

// ReadGenome returns the registration of a genome.
// Returns an error wrapping sql.ErrNoRows if the genome is unknown.
func (s *Store) ReadGenome(ctx context.Context, id string) (ir.GenomeInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, initial_size, created_seq, journal_version
		FROM genomes
		WHERE id = ?
	`, id)

	info, err := scanGenome(row)
	if err != nil {
		return ir.GenomeInfo{}, fmt.Errorf("read genome %q: %w", id, err)
	}
	return info, nil
}

// ListGenomes returns every registered genome ordered by creation seq, id.
func (s *Store) ListGenomes(ctx context.Context) ([]ir.GenomeInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, initial_size, created_seq, journal_version
		FROM genomes
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query genomes: %w", err)
	}
	defer rows.Close()

	infos := []ir.GenomeInfo{}
	for rows.Next() {
		info, err := scanGenome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan genome: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genomes: %w", err)
	}
	return infos, nil
}

// ReadEntries returns the journal of a genome with seq > afterSeq, in seq
// order. Returns an empty slice (not nil) if there are none.
func (s *Store) ReadEntries(ctx context.Context, genomeID string, afterSeq int64) ([]ir.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT genome_id, seq, kind, pos, length, te, copy_offset, result_id, result_ok, digest
		FROM ops
		WHERE genome_id = ? AND seq > ?
		ORDER BY seq ASC
	`, genomeID, afterSeq)
	if err != nil {
		return nil, fmt.Errorf("query ops: %w", err)
	}
	defer rows.Close()

	entries := []ir.Entry{}
	for rows.Next() {
		var (
			e    ir.Entry
			kind string
			ok   int
		)
		if err := rows.Scan(
			&e.GenomeID, &e.Op.Seq, &kind,
			&e.Op.Pos, &e.Op.Length, &e.Op.TE, &e.Op.Offset,
			&e.Outcome.ID, &ok, &e.Digest,
		); err != nil {
			return nil, fmt.Errorf("scan op: %w", err)
		}
		e.Op.Kind = ir.OpKind(kind)
		e.Outcome.OK = ok == 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ops: %w", err)
	}
	return entries, nil
}

// LastSeq returns the highest journaled seq of a genome, or its creation
// seq when nothing has been journaled yet.
func (s *Store) LastSeq(ctx context.Context, genomeID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(
			(SELECT MAX(seq) FROM ops WHERE genome_id = ?),
			(SELECT created_seq FROM genomes WHERE id = ?)
		)
	`, genomeID, genomeID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq %q: %w", genomeID, err)
	}
	return seq, nil
}

// CountEntries returns how many ops are journaled for a genome.
func (s *Store) CountEntries(ctx context.Context, genomeID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ops WHERE genome_id = ?`, genomeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ops %q: %w", genomeID, err)
	}
	return n, nil
}

// ReadLatestCheckpoint returns the checkpoint with the highest seq.
// found is false when the genome has no checkpoint. The stored digest is
// checked against the decoded state.
func (s *Store) ReadLatestCheckpoint(ctx context.Context, genomeID string) (cp ir.Checkpoint, found bool, err error) {
	var (
		kind, records, digest string
		symbols               []byte
	)
	err = s.db.QueryRowContext(ctx, `
		SELECT c.genome_id, c.seq, g.kind, c.last_id, c.symbols, c.records, c.digest
		FROM checkpoints c
		JOIN genomes g ON g.id = c.genome_id
		WHERE c.genome_id = ?
		ORDER BY c.seq DESC
		LIMIT 1
	`, genomeID).Scan(&cp.GenomeID, &cp.Seq, &kind, &cp.State.LastID, &symbols, &records, &digest)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Checkpoint{}, false, nil
	}
	if err != nil {
		return ir.Checkpoint{}, false, fmt.Errorf("read checkpoint %q: %w", genomeID, err)
	}

	cp.State.Kind = genome.Kind(kind)
	if cp.State.Symbols, err = decompressSymbols(symbols); err != nil {
		return ir.Checkpoint{}, false, fmt.Errorf("read checkpoint %q: %w", genomeID, err)
	}
	if cp.State.Records, err = unmarshalRecords(records); err != nil {
		return ir.Checkpoint{}, false, fmt.Errorf("read checkpoint %q: %w", genomeID, err)
	}

	got, err := ir.StateDigest(cp.State)
	if err != nil {
		return ir.Checkpoint{}, false, fmt.Errorf("read checkpoint %q: %w", genomeID, err)
	}
	if got != digest {
		return ir.Checkpoint{}, false, fmt.Errorf("read checkpoint %q seq=%d: digest mismatch (stored %s, computed %s)", genomeID, cp.Seq, digest, got)
	}
	return cp, true, nil
}

// StateRef locates a point in a journal.
type StateRef struct {
	GenomeID string
	Seq      int64
}

// FindStates returns every journal point whose genome state has the given
// digest, across all genomes, ordered by genome id then seq. Two genomes
// that reach the same state, whatever their representation, show up here.
func (s *Store) FindStates(ctx context.Context, digest string) ([]StateRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT genome_id, seq FROM ops WHERE digest = ?
		UNION
		SELECT genome_id, seq FROM checkpoints WHERE digest = ?
		ORDER BY genome_id COLLATE BINARY ASC, seq ASC
	`, digest, digest)
	if err != nil {
		return nil, fmt.Errorf("find states: %w", err)
	}
	defer rows.Close()

	refs := []StateRef{}
	for rows.Next() {
		var ref StateRef
		if err := rows.Scan(&ref.GenomeID, &ref.Seq); err != nil {
			return nil, fmt.Errorf("scan state ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state refs: %w", err)
	}
	return refs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGenome(row rowScanner) (ir.GenomeInfo, error) {
	var (
		info ir.GenomeInfo
		kind string
	)
	if err := row.Scan(&info.ID, &kind, &info.InitialSize, &info.CreatedSeq, &info.JournalVersion); err != nil {
		return ir.GenomeInfo{}, err
	}
	info.Kind = genome.Kind(kind)
	return info, nil
}
