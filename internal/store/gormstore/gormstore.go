// Package gormstore keeps journal entries in SQLite tables through GORM.
package gormstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// record is the row layout shared by the ledger and staging tables.
// Seq keeps insertion order; ID is the identity handed to callers.
type record struct {
	Seq           uint64              `gorm:"column:seq;primaryKey;autoIncrement"`
	ID            string              `gorm:"column:id;type:varchar(36);not null"`
	EntryNumber   *int                `gorm:"column:entry_number"`
	Description   *string             `gorm:"column:description"`
	EntryDate     time.Time           `gorm:"column:entry_date;not null"`
	AccountCode   *string             `gorm:"column:account_code"`
	AccountName   *string             `gorm:"column:account_name"`
	AccountNumber *string             `gorm:"column:account_number"`
	MovementType  *string             `gorm:"column:movement_type"`
	Amount        decimal.NullDecimal `gorm:"column:amount;type:text"`
}

// Open creates a SQLite database connection with basic tuning.
func Open(path string, logMode bool) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	gormLogger := logger.Default
	if !logMode {
		gormLogger = gormLogger.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// the CLI is sequential; one writer avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")

	return db, nil
}

// Close closes the connection behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

// Table is one collection of journal entries.
type Table struct {
	db   *gorm.DB
	name string
}

// NewTable migrates the named table and returns a handle to it.
func NewTable(ctx context.Context, db *gorm.DB, name string) (*Table, error) {
	if err := db.WithContext(ctx).Table(name).AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate table %s: %w", name, err)
	}
	return &Table{db: db, name: name}, nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// FetchAll returns every row in insertion order.
func (t *Table) FetchAll(ctx context.Context) ([]types.JournalEntry, error) {
	var rows []record
	if err := t.db.WithContext(ctx).Table(t.name).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", t.name, err)
	}

	entries := make([]types.JournalEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry()
	}
	return entries, nil
}

// Insert appends entry. An entry without ID is given a new UUID.
func (t *Table) Insert(ctx context.Context, entry types.JournalEntry) error {
	r := fromEntry(entry)
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := t.db.WithContext(ctx).Table(t.name).Create(&r).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return nil
}

func fromEntry(e types.JournalEntry) record {
	return record{
		ID:            e.ID,
		EntryNumber:   e.EntryNumber,
		Description:   e.Description,
		EntryDate:     e.EntryDate,
		AccountCode:   e.AccountCode,
		AccountName:   e.AccountName,
		AccountNumber: e.AccountNumber,
		MovementType:  e.MovementType,
		Amount:        e.Amount,
	}
}

func (r record) entry() types.JournalEntry {
	return types.JournalEntry{
		ID:            r.ID,
		EntryNumber:   r.EntryNumber,
		Description:   r.Description,
		EntryDate:     r.EntryDate,
		AccountCode:   r.AccountCode,
		AccountName:   r.AccountName,
		AccountNumber: r.AccountNumber,
		MovementType:  r.MovementType,
		Amount:        r.Amount,
	}
}
