package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
	"github.com/roach88/transposon/internal/store"
)

// Replay rebuilds a genome of the given kind and initial size from a
// journal. Every entry is re-applied and its outcome and state digest are
// compared with what was recorded; the first difference fails the replay
// with REPLAY_DIVERGED.
//
// Replaying the same journal into either representation yields the same
// state, so a journal recorded on one kind verifies the other.
func Replay(kind genome.Kind, size int, entries []ir.Entry) (genome.Tracked, error) {
	g, err := genome.New(kind, size)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	if err := replayOnto(g, entries, 0, slog.Default()); err != nil {
		return nil, err
	}
	return g, nil
}

// replayOnto applies entries to g in order. Seqs must be strictly greater
// than afterSeq and strictly increasing.
func replayOnto(g genome.Tracked, entries []ir.Entry, afterSeq int64, logger *slog.Logger) error {
	last := afterSeq
	for _, e := range entries {
		if e.Op.Seq <= last {
			return newDivergedError(e.GenomeID, e.Op.Seq, "seq out of order", map[string]string{
				"previous": strconv.FormatInt(last, 10),
			})
		}
		last = e.Op.Seq

		if err := e.Op.Validate(); err != nil {
			return &JournalError{
				Code:     ErrCodeUnknownOp,
				Message:  err.Error(),
				GenomeID: e.GenomeID,
				Seq:      e.Op.Seq,
			}
		}

		out, err := e.Op.Apply(g)
		if err != nil {
			return fmt.Errorf("replay seq=%d: %w", e.Op.Seq, err)
		}
		if out != e.Outcome {
			logger.Warn("replay mismatch",
				"genome", e.GenomeID,
				"seq", e.Op.Seq,
				"op", e.Op.String(),
				"recorded_id", e.Outcome.ID,
				"replayed_id", out.ID,
			)
			return newDivergedError(e.GenomeID, e.Op.Seq, "outcome differs", map[string]string{
				"op":       e.Op.String(),
				"recorded": fmt.Sprintf("%+v", e.Outcome),
				"replayed": fmt.Sprintf("%+v", out),
			})
		}

		digest, err := ir.StateDigest(g.State())
		if err != nil {
			return fmt.Errorf("replay seq=%d: %w", e.Op.Seq, err)
		}
		if digest != e.Digest {
			logger.Warn("replay mismatch",
				"genome", e.GenomeID,
				"seq", e.Op.Seq,
				"op", e.Op.String(),
				"recorded_digest", e.Digest,
				"replayed_digest", digest,
			)
			return newDivergedError(e.GenomeID, e.Op.Seq, "state digest differs", map[string]string{
				"op":       e.Op.String(),
				"recorded": e.Digest,
				"replayed": digest,
			})
		}
	}
	return nil
}

// Load resumes the journal of a stored genome.
//
// The genome is restored from its latest checkpoint (or created fresh when
// there is none) and the entries after it are replayed and verified. The
// returned Recorder continues the journal from the last seq; opts configure
// it as for New, except that WithIDGenerator is ignored.
func Load(ctx context.Context, s *store.Store, genomeID string, opts ...Option) (*Recorder, error) {
	info, err := s.ReadGenome(ctx, genomeID)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if info.JournalVersion != ir.JournalVersion {
		return nil, &JournalError{
			Code:     ErrCodeVersionMismatch,
			Message:  fmt.Sprintf("journal version %q, want %q", info.JournalVersion, ir.JournalVersion),
			GenomeID: genomeID,
		}
	}

	r := newRecorder(append(opts, WithStore(s)))
	r.info = info

	cp, found, err := s.ReadLatestCheckpoint(ctx, genomeID)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	afterSeq := info.CreatedSeq
	if found {
		if r.g, err = genome.Restore(cp.State); err != nil {
			return nil, fmt.Errorf("load %s: %w", genomeID, err)
		}
		afterSeq = cp.Seq
	} else if r.g, err = genome.New(info.Kind, info.InitialSize); err != nil {
		return nil, fmt.Errorf("load %s: %w", genomeID, err)
	}

	entries, err := s.ReadEntries(ctx, genomeID, afterSeq)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	if err := replayOnto(r.g, entries, afterSeq, r.logger); err != nil {
		return nil, fmt.Errorf("load %s: %w", genomeID, err)
	}

	r.entries = entries
	r.length = r.g.Len()
	r.sinceCkpt = len(entries)
	r.seq = afterSeq
	if n := len(entries); n > 0 {
		r.seq = entries[n-1].Op.Seq
	}
	if r.clock.Current() < r.seq {
		r.clock = NewClockAt(r.seq)
	}

	total, err := s.CountEntries(ctx, genomeID)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	r.quota.Reset(total)

	r.logger.Info("genome loaded",
		"genome", genomeID,
		"kind", info.Kind,
		"checkpoint", found,
		"replayed", len(entries),
		"seq", r.seq,
	)
	return r, nil
}
