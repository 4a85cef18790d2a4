package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/transposon/internal/genome"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future encoding change.
const (
	DomainOp    = "transposon/op/v1"
	DomainState = "transposon/state/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator keeps domain and data from running together.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// OpID computes the content-addressed id of an op within a genome's journal.
// It is stable across restarts and replays given the same inputs.
func OpID(genomeID string, op Op) (string, error) {
	if err := op.Validate(); err != nil {
		return "", fmt.Errorf("OpID: %w", err)
	}
	obj := map[string]any{
		"genome_id": genomeID,
		"kind":      string(op.Kind),
		"args":      op.Args(),
		"seq":       op.Seq,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("OpID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOp, canonical), nil
}

// StateDigest hashes the observable state of a genome: its symbols, its
// active records and the last allocated id.
//
// The representation kind is excluded, so an ArrayGenome and a LinkedGenome
// that went through the same operations share a digest.
func StateDigest(st genome.State) (string, error) {
	records := make([]any, len(st.Records))
	for i, rec := range st.Records {
		records[i] = map[string]any{
			"id":     rec.ID,
			"start":  rec.Start,
			"length": rec.Length,
		}
	}
	obj := map[string]any{
		"symbols": st.Symbols,
		"records": records,
		"last_id": st.LastID,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("StateDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainState, canonical), nil
}

// MustStateDigest is like StateDigest but panics on error.
// Use only in tests or when the state is known to be well formed.
func MustStateDigest(st genome.State) string {
	d, err := StateDigest(st)
	if err != nil {
		panic(err)
	}
	return d
}
