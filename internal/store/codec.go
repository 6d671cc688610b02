package store

import (
	"bytes"
	"fmt"

	"github.com/mauv0809/crease/internal/scoring"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshots reuse the json field names so a blob can be inspected with the same vocabulary
// as the HTTP API.
const structTag = "json"

func encodeState(s *scoring.State) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode match %s: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

func decodeState(data []byte) (*scoring.State, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	var s scoring.State
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode match state: %w", err)
	}
	if s.BattingStats == nil {
		s.BattingStats = map[string]scoring.BattingRecord{}
	}
	if s.BowlingStats == nil {
		s.BowlingStats = map[string]scoring.BowlingRecord{}
	}
	return &s, nil
}
