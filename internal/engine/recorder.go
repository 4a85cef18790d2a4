package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
	"github.com/roach88/transposon/internal/store"
)

// Recorder is the single writer of one journaled genome.
//
// Each op goes through the same path: validate, quota check, seq stamp,
// apply, digest, persist, append. A rejected op leaves the genome, the
// clock and the journal untouched.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	info   ir.GenomeInfo
	g      genome.Tracked
	store  *store.Store
	clock  SeqSource
	ids    IDGenerator
	quota  *QuotaEnforcer
	logger *slog.Logger

	maxLength       int
	maxOps          int
	checkpointEvery int

	// length is tracked so quota checks do not walk the genome.
	length    int
	seq       int64
	sinceCkpt int
	entries   []ir.Entry
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithStore persists every entry (and checkpoint) to s.
func WithStore(s *store.Store) Option {
	return func(r *Recorder) {
		r.store = s
	}
}

// WithClock stamps ops from c instead of a private Clock. Sharing one
// source between recorders gives all of their ops a single order.
func WithClock(c SeqSource) Option {
	return func(r *Recorder) {
		r.clock = c
	}
}

// WithIDGenerator sets how the genome id is chosen.
//
// Default: UUIDv7Generator. Use NewFixedGenerator in tests.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Recorder) {
		r.ids = g
	}
}

// WithLogger routes the recorder's logging to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = l
	}
}

// WithMaxLength rejects ops that would grow the genome past n symbols.
func WithMaxLength(n int) Option {
	return func(r *Recorder) {
		r.maxLength = n
	}
}

// WithMaxOps rejects ops once n have been journaled.
func WithMaxOps(n int) Option {
	return func(r *Recorder) {
		r.maxOps = n
	}
}

// WithCheckpointEvery writes a checkpoint after every n ops.
// Has no effect without a store.
func WithCheckpointEvery(n int) Option {
	return func(r *Recorder) {
		r.checkpointEvery = n
	}
}

func newRecorder(opts []Option) *Recorder {
	r := &Recorder{ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = NewClock()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.quota = NewQuotaEnforcer(r.maxLength, r.maxOps)
	return r
}

// New creates a genome of size empty symbols and starts its journal.
// With a store, the genome is registered before New returns.
func New(ctx context.Context, kind genome.Kind, size int, opts ...Option) (*Recorder, error) {
	r := newRecorder(opts)

	g, err := genome.New(kind, size)
	if err != nil {
		return nil, fmt.Errorf("new recorder: %w", err)
	}
	r.g = g
	r.length = g.Len()
	r.seq = r.clock.Current()
	r.info = ir.GenomeInfo{
		ID:             r.ids.Generate(),
		Kind:           kind,
		InitialSize:    size,
		CreatedSeq:     r.seq,
		JournalVersion: ir.JournalVersion,
	}

	if r.store != nil {
		if err := r.store.CreateGenome(ctx, r.info); err != nil {
			return nil, fmt.Errorf("new recorder: %w", err)
		}
	}

	r.logger.Info("genome created",
		"genome", r.info.ID,
		"kind", kind,
		"size", size,
	)
	return r, nil
}

// Insert journals InsertTE(pos, length).
func (r *Recorder) Insert(ctx context.Context, pos, length int) (int, error) {
	e, err := r.Apply(ctx, ir.Insert(pos, length))
	if err != nil {
		return 0, err
	}
	return e.Outcome.ID, nil
}

// Copy journals CopyTE(te, offset).
func (r *Recorder) Copy(ctx context.Context, te, offset int) (int, bool, error) {
	e, err := r.Apply(ctx, ir.Copy(te, offset))
	if err != nil {
		return 0, false, err
	}
	return e.Outcome.ID, e.Outcome.OK, nil
}

// Disable journals DisableTE(te).
func (r *Recorder) Disable(ctx context.Context, te int) error {
	_, err := r.Apply(ctx, ir.Disable(te))
	return err
}

// Apply journals op and returns its entry. Any Seq already set on op is
// replaced by the recorder's clock.
//
// If the store write fails the op has already been applied in memory; the
// error is returned and the in-memory journal keeps the entry.
func (r *Recorder) Apply(ctx context.Context, op ir.Op) (ir.Entry, error) {
	if err := ctx.Err(); err != nil {
		return ir.Entry{}, err
	}
	if err := op.Validate(); err != nil {
		return ir.Entry{}, &JournalError{
			Code:     ErrCodeUnknownOp,
			Message:  err.Error(),
			GenomeID: r.info.ID,
		}
	}

	growth := r.growth(op)
	if err := r.quota.Check(r.info.ID, r.length+growth); err != nil {
		r.logger.Warn("op rejected",
			"genome", r.info.ID,
			"op", op.String(),
			"error", err,
		)
		return ir.Entry{}, fmt.Errorf("apply %s: %w", op, err)
	}

	op.Seq = r.clock.Next()
	out, err := op.Apply(r.g)
	if err != nil {
		return ir.Entry{}, fmt.Errorf("apply %s: %w", op, err)
	}
	r.length += growth
	r.seq = op.Seq

	digest, err := ir.StateDigest(r.g.State())
	if err != nil {
		return ir.Entry{}, fmt.Errorf("apply %s: %w", op, err)
	}
	entry := ir.Entry{
		GenomeID: r.info.ID,
		Op:       op,
		Outcome:  out,
		Digest:   digest,
	}
	r.entries = append(r.entries, entry)

	r.logger.Debug("op applied",
		"genome", r.info.ID,
		"seq", op.Seq,
		"op", op.String(),
		"id", out.ID,
		"ok", out.OK,
	)

	if r.store == nil {
		return entry, nil
	}
	if err := r.store.WriteEntry(ctx, entry); err != nil {
		return entry, fmt.Errorf("apply %s: %w", op, err)
	}

	r.sinceCkpt++
	if r.checkpointEvery > 0 && r.sinceCkpt >= r.checkpointEvery {
		if _, err := r.Checkpoint(ctx); err != nil {
			return entry, err
		}
	}
	return entry, nil
}

// growth returns how many symbols op adds to the genome.
func (r *Recorder) growth(op ir.Op) int {
	switch op.Kind {
	case ir.OpInsert:
		return max(op.Length, 0)
	case ir.OpCopy:
		if rec, ok := r.g.Record(op.TE); ok {
			return rec.Length
		}
	}
	return 0
}

// Checkpoint captures the current state at the last journaled seq and
// writes it to the store, if any.
func (r *Recorder) Checkpoint(ctx context.Context) (ir.Checkpoint, error) {
	cp := ir.Checkpoint{
		GenomeID: r.info.ID,
		Seq:      r.seq,
		State:    r.g.State(),
	}
	if r.store != nil {
		if err := r.store.WriteCheckpoint(ctx, cp); err != nil {
			return ir.Checkpoint{}, fmt.Errorf("checkpoint %s: %w", r.info.ID, err)
		}
	}
	r.sinceCkpt = 0
	r.logger.Info("checkpoint written",
		"genome", r.info.ID,
		"seq", cp.Seq,
		"length", r.length,
	)
	return cp, nil
}

// Genome returns the journaled genome. Mutating it directly bypasses the
// journal and makes later replays diverge.
func (r *Recorder) Genome() genome.Tracked {
	return r.g
}

// ID returns the genome id.
func (r *Recorder) ID() string {
	return r.info.ID
}

// Info returns the genome registration.
func (r *Recorder) Info() ir.GenomeInfo {
	return r.info
}

// Entries returns a copy of the entries journaled by this recorder.
// For a loaded recorder this includes the entries replayed after the
// checkpoint it started from.
func (r *Recorder) Entries() []ir.Entry {
	out := make([]ir.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Seq returns the seq of the last journaled op, or the creation seq.
func (r *Recorder) Seq() int64 {
	return r.seq
}

// Len returns the genome length without walking the genome.
func (r *Recorder) Len() int {
	return r.length
}
