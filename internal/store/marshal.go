package store

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
)

// marshalRecords converts active records to canonical JSON TEXT for storage.
func marshalRecords(records []genome.Record) (string, error) {
	arr := make([]any, len(records))
	for i, rec := range records {
		arr[i] = map[string]any{
			"id":     rec.ID,
			"start":  rec.Start,
			"length": rec.Length,
		}
	}
	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}
	return string(data), nil
}

// unmarshalRecords parses records TEXT. Returns an empty slice, never nil.
func unmarshalRecords(data string) ([]genome.Record, error) {
	records := []genome.Record{}
	if data == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	return records, nil
}

// Checkpoint symbols are long runs of three bytes and compress very well.
// EncodeAll and DecodeAll are safe for concurrent use.
var (
	symbolEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest), zstd.WithZeroFrames(true))
	symbolDecoder, _ = zstd.NewReader(nil)
)

// compressSymbols packs a rendered genome for the checkpoints table.
func compressSymbols(symbols string) []byte {
	return symbolEncoder.EncodeAll([]byte(symbols), nil)
}

// decompressSymbols reverses compressSymbols.
func decompressSymbols(data []byte) (string, error) {
	out, err := symbolDecoder.DecodeAll(data, nil)
	if err != nil {
		return "", fmt.Errorf("decompress symbols: %w", err)
	}
	return string(out), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
