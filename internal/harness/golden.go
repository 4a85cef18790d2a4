package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/transposon/internal/ir"
	"github.com/roach88/transposon/internal/testutil"
)

// TraceSnapshot captures a scenario's trace for golden comparison.
// All representations produce the same trace, so the snapshot carries no
// kind.
type TraceSnapshot struct {
	ScenarioName string
	GenomeID     string
	Trace        []TraceEvent
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical
// JSON serialization.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		active := make([]any, len(ev.Active))
		for j, id := range ev.Active {
			active[j] = id
		}
		trace[i] = map[string]any{
			"seq":    ev.Seq,
			"op":     string(ev.Op.Kind),
			"args":   ev.Op.Args(),
			"id":     ev.Outcome.ID,
			"ok":     ev.Outcome.OK,
			"render": ev.Render,
			"active": active,
			"digest": ev.Digest,
		}
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"genome_id":     s.GenomeID,
		"trace":         trace,
	}
}

// MarshalTrace renders the trace of a run as canonical JSON.
func MarshalTrace(scenario *Scenario, result *Result) ([]byte, error) {
	id := scenario.GenomeID
	if id == "" {
		id = testutil.DefaultGenomeID
	}
	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		GenomeID:     id,
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario on every representation and compares
// the trace against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario could not be run. Expectation failures
// and golden mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	report, err := RunAll(scenario)
	if err != nil {
		return err
	}
	for _, msg := range report.Errors() {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	traceJSON, err := MarshalTrace(scenario, report.Results[0])
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
