package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/transposon/internal/engine"
	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
	"github.com/roach88/transposon/internal/store"
	"github.com/roach88/transposon/internal/testutil"
)

// TraceEvent is one journaled step as observed by the harness.
type TraceEvent struct {
	Seq     int64
	Op      ir.Op
	Outcome ir.Outcome
	Render  string
	Active  []int
	Digest  string
}

// Result is the outcome of running a scenario on one representation.
type Result struct {
	Kind genome.Kind

	// Pass is true if every expectation held and every invariant check
	// passed.
	Pass bool

	// Trace contains one event per step, in order.
	Trace []TraceEvent

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string

	// Final is the genome state after the last step.
	Final genome.State
}

func newResult(kind genome.Kind) *Result {
	return &Result{
		Kind:   kind,
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Report collects the per-representation results of a scenario.
type Report struct {
	Scenario string
	Results  []*Result

	// Mismatches lists steps where representations disagreed.
	Mismatches []string
}

// Pass reports whether every run passed and all runs agreed.
func (r *Report) Pass() bool {
	if len(r.Mismatches) > 0 {
		return false
	}
	for _, res := range r.Results {
		if !res.Pass {
			return false
		}
	}
	return true
}

// Errors returns every failure message prefixed by its representation.
func (r *Report) Errors() []string {
	var out []string
	for _, res := range r.Results {
		for _, msg := range res.Errors {
			out = append(out, fmt.Sprintf("[%s] %s", res.Kind, msg))
		}
	}
	return append(out, r.Mismatches...)
}

// harness holds the deterministic environment of a single run.
type harness struct {
	store  *store.Store
	clock  *testutil.DeterministicClock
	ids    *testutil.FixedIDGenerator
	logger *slog.Logger
}

// Run executes a scenario against one representation.
//
// Each run uses a fresh in-memory database, a clock starting at 0 and the
// scenario's fixed genome id, so the same scenario always produces the same
// trace. Expectation failures are collected in the Result; an error is
// returned only when the run itself could not proceed.
func Run(scenario *Scenario, kind genome.Kind) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &harness{
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		ids:    testutil.NewFixedIDGenerator(scenario.GenomeID),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	return h.run(context.Background(), scenario, kind)
}

func (h *harness) run(ctx context.Context, scenario *Scenario, kind genome.Kind) (*Result, error) {
	rec, err := engine.New(ctx, kind, scenario.Size,
		engine.WithStore(h.store),
		engine.WithClock(h.clock),
		engine.WithIDGenerator(h.ids),
		engine.WithLogger(h.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := newResult(kind)
	for i, step := range scenario.Steps {
		entry, err := rec.Apply(ctx, step.ToOp())
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		g := rec.Genome()
		event := TraceEvent{
			Seq:     entry.Op.Seq,
			Op:      entry.Op,
			Outcome: entry.Outcome,
			Render:  g.String(),
			Active:  g.ActiveTEs(),
			Digest:  entry.Digest,
		}
		result.Trace = append(result.Trace, event)

		label := fmt.Sprintf("step %d %s", i, entry.Op)
		if err := genome.Verify(g); err != nil {
			result.addError("%s: invariant violated: %v", label, err)
		}
		if step.Expect != nil {
			checkExpect(result, label, step.Expect, &event, g.Len())
		}
	}

	g := rec.Genome()
	result.Final = g.State()
	if scenario.Final != nil {
		final := TraceEvent{Render: g.String(), Active: g.ActiveTEs()}
		checkExpect(result, "final", scenario.Final, &final, g.Len())
	}

	if err := h.checkJournal(ctx, rec); err != nil {
		result.addError("journal: %v", err)
	}
	return result, nil
}

// checkJournal loads the stored journal back and compares the state.
func (h *harness) checkJournal(ctx context.Context, rec *engine.Recorder) error {
	loaded, err := engine.Load(ctx, h.store, rec.ID(), engine.WithLogger(h.logger))
	if err != nil {
		return err
	}
	want, got := rec.Genome().State(), loaded.Genome().State()
	if !want.Equal(got) {
		return fmt.Errorf("loaded state %q differs from recorded state %q", got.Symbols, want.Symbols)
	}
	return nil
}

// checkExpect compares ev against the given fields of exp. The event's
// outcome is only consulted for id, absent and ok.
func checkExpect(result *Result, label string, exp *Expect, ev *TraceEvent, length int) {
	if exp.ID != nil && ev.Outcome.ID != *exp.ID {
		result.addError("%s: id = %d, want %d", label, ev.Outcome.ID, *exp.ID)
	}
	if exp.Absent != nil {
		absent := ev.Op.Kind == ir.OpCopy && !ev.Outcome.OK
		if absent != *exp.Absent {
			result.addError("%s: absent = %t, want %t", label, absent, *exp.Absent)
		}
	}
	if exp.OK != nil && ev.Outcome.OK != *exp.OK {
		result.addError("%s: ok = %t, want %t", label, ev.Outcome.OK, *exp.OK)
	}
	if exp.Render != nil && ev.Render != *exp.Render {
		result.addError("%s: render = %q, want %q", label, ev.Render, *exp.Render)
	}
	if exp.Length != nil && length != *exp.Length {
		result.addError("%s: length = %d, want %d", label, length, *exp.Length)
	}
	if exp.Active != nil && !slices.Equal(ev.Active, *exp.Active) {
		result.addError("%s: active = %v, want %v", label, ev.Active, *exp.Active)
	}
}

// RunAll executes a scenario against each of its representations and
// checks that they produced identical traces.
func RunAll(scenario *Scenario) (*Report, error) {
	kinds := scenario.Kinds
	if len(kinds) == 0 {
		kinds = genome.Kinds
	}

	report := &Report{Scenario: scenario.Name}
	for _, kind := range kinds {
		res, err := Run(scenario, kind)
		if err != nil {
			return nil, fmt.Errorf("run %s on %s: %w", scenario.Name, kind, err)
		}
		report.Results = append(report.Results, res)
	}

	if len(report.Results) > 1 {
		base := report.Results[0]
		for _, other := range report.Results[1:] {
			report.Mismatches = append(report.Mismatches, compareTraces(base, other)...)
		}
	}
	return report, nil
}

// compareTraces lists the steps where two runs diverged.
func compareTraces(a, b *Result) []string {
	var out []string
	for i := range min(len(a.Trace), len(b.Trace)) {
		ea, eb := a.Trace[i], b.Trace[i]
		if ea.Outcome != eb.Outcome || ea.Render != eb.Render || ea.Digest != eb.Digest {
			out = append(out, fmt.Sprintf("step %d %s: %s gave %+v %q, %s gave %+v %q",
				i, ea.Op, a.Kind, ea.Outcome, ea.Render, b.Kind, eb.Outcome, eb.Render))
		}
	}
	if len(a.Trace) != len(b.Trace) {
		out = append(out, fmt.Sprintf("trace length: %s has %d steps, %s has %d",
			a.Kind, len(a.Trace), b.Kind, len(b.Trace)))
	}
	return out
}
