package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Record is one stored experience: an arbitrary key/value mapping such as
// {action, result, output, timestamp}. Records are immutable once stored;
// backends hand out independent copies, never references into stored state.
type Record map[string]any

// CanonicalJSON serializes the record with keys in lexicographic order.
// encoding/json sorts map keys, so two records with identical content
// produce identical bytes regardless of insertion order.
//
// Returns ErrMalformedRecord when a value cannot be serialized.
func (r Record) CanonicalJSON() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return data, nil
}

// ID returns the content-derived identifier: hex SHA-256 of the canonical
// serialization. Structurally identical records share an id; records
// differing in any key or value do not (256-bit hash).
func (r Record) ID() (string, error) {
	data, err := r.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// DecodeRecord rebuilds a Record from its canonical serialization. Backends
// use it to return fresh copies on query.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}
