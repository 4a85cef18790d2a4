// Package harness runs genome conformance scenarios.
//
// # Scenario Format
//
// Scenarios are YAML files checked against an embedded CUE schema before
// they are decoded:
//
//	name: worked_example
//	description: "Insert then disable on a fresh genome"
//	size: 10
//	genome_id: g-worked      # optional, fixed for golden traces
//	kinds: [array, linked]   # optional, defaults to both
//	steps:
//	  - op: insert
//	    pos: 2
//	    length: 3
//	    expect: { id: 1, render: "--AAA--------" }
//	  - op: disable
//	    te: 1
//	    expect: { ok: true, render: "--xxx--------", active: [] }
//	final:
//	  length: 13
//
// # Expectations
//
// Every field of an expect block is optional; only the fields given are
// checked:
//
//   - id: the id returned by insert or copy
//   - absent: copy returned no id
//   - ok: the op's ok flag (disable: the TE was active)
//   - render: the genome rendered from position 0
//   - length: the genome length
//   - active: the active TE ids, ascending
//
// # Execution
//
// Each scenario runs once per representation, through an engine.Recorder
// backed by a fresh in-memory store, with a deterministic clock and a fixed
// genome id. After every step the genome invariants are verified. After the
// last step the stored journal is loaded back and must reproduce the final
// state. Finally the traces of all representations must agree step for
// step.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/collision.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := harness.RunAll(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range report.Errors() {
//	    log.Println(msg)
//	}
package harness
