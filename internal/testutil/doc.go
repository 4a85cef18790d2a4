// Package testutil provides deterministic helpers for journal and genome
// tests: a resettable logical clock, a fixed genome id generator and a
// seeded generator of random genome operations.
package testutil
