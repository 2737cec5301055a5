package repository

import (
	"context"
	"sync"

	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/repository"
)

// MemoryStore keeps encoded records in process memory. It is used by tests
// and by the CLI when no database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]byte
}

var _ repository.RecordStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

// Get returns a copy of the owner's record or the default record.
func (s *MemoryStore) Get(_ context.Context, owner string) (*ledger.Record, error) {
	s.mu.Lock()
	data := s.records[owner]
	s.mu.Unlock()
	return ledger.Decode(data)
}

// Update applies fn to a copy of the owner's record and stores it on success.
func (s *MemoryStore) Update(
	ctx context.Context,
	owner string,
	fn func(rec *ledger.Record) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := ledger.Decode(s.records[owner])
	if err != nil {
		return err
	}
	if err := fn(rec); err != nil {
		return err
	}
	data, err := ledger.Encode(rec)
	if err != nil {
		return err
	}
	s.records[owner] = data
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
