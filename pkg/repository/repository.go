// Package repository defines the storage contract of ledger records.
package repository

import (
	"context"

	"github.com/amirasaad/finledger/pkg/domain/ledger"
)

// RecordStore keeps one ledger record per owner.
//
// Get returns a private copy of the owner's record, or the default record
// when none was stored yet; it never creates one.
//
// Update runs fn against a freshly loaded copy of the owner's record and
// writes the result back in one atomic step, but only when fn returns nil.
// Concurrent Updates of the same owner never interleave: one of them
// observes the other's result or fails with domain.ErrConflict. fn must
// not perform I/O.
type RecordStore interface {
	Get(ctx context.Context, owner string) (*ledger.Record, error)
	Update(ctx context.Context, owner string, fn func(rec *ledger.Record) error) error
}
