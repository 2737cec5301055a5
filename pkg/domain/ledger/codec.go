package ledger

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Encode serialises r into the self-describing blob kept by record stores.
func Encode(r *Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode ledger record: %w", err)
	}
	return data, nil
}

// Decode parses a blob produced by Encode. An empty blob yields the
// default record.
func Decode(data []byte) (*Record, error) {
	r := &Record{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("decode ledger record: %w", err)
		}
	}
	r.ensure()
	return r, nil
}

// Clone returns a deep copy of r.
func (r *Record) Clone() (*Record, error) {
	data, err := Encode(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
