package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/finledger/pkg/domain"
	"github.com/amirasaad/finledger/pkg/domain/ledger"
	"github.com/amirasaad/finledger/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps ledger records in a SQL table, one row per owner.
type GormStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ repository.RecordStore = (*GormStore)(nil)

// NewGormStore creates a GormStore on db.
func NewGormStore(db *gorm.DB, logger *slog.Logger) *GormStore {
	return &GormStore{db: db, logger: logger.With("service", "record-store")}
}

// Migrate creates or updates the ledger_records table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&LedgerRecord{})
}

// Get returns the owner's record or the default record.
func (s *GormStore) Get(ctx context.Context, owner string) (*ledger.Record, error) {
	var row LedgerRecord
	res := s.db.WithContext(ctx).Where("owner = ?", owner).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, MapGormErrorToDomain(res.Error)
	}
	return ledger.Decode(row.Data)
}

// Update loads the owner's row under a row lock, applies fn and writes the
// result back guarded by the row version. Nothing is written when fn fails.
func (s *GormStore) Update(
	ctx context.Context,
	owner string,
	fn func(rec *ledger.Record) error,
) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row LedgerRecord
		res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner = ?", owner).
			Limit(1).
			Find(&row)
		if res.Error != nil {
			return res.Error
		}
		exists := res.RowsAffected > 0

		rec, err := ledger.Decode(row.Data)
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

		if !exists {
			return tx.Create(&LedgerRecord{Owner: owner, Data: data, Version: 1}).Error
		}
		upd := tx.Model(&LedgerRecord{}).
			Where("owner = ? AND version = ?", owner, row.Version).
			Updates(map[string]any{
				"data":       data,
				"version":    row.Version + 1,
				"updated_at": time.Now(),
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return domain.Conflictf("ledger record of %s was modified concurrently", owner)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("Record update not applied", "owner", owner, "error", err)
	}
	return MapGormErrorToDomain(err)
}
