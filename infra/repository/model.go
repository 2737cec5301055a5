package repository

import "time"

// LedgerRecord is one owner's encoded ledger.
type LedgerRecord struct {
	Owner     string `gorm:"primaryKey;size:191"`
	Data      []byte `gorm:"not null"`
	Version   int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LedgerRecord) TableName() string { return "ledger_records" }
