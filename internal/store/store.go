// =============================================================================
// Asientos XML - Datastore
// =============================================================================
//
// This package defines the two collection contracts the converter depends on
// and opens the configured backend:
//
//   driver    package              collections
//   --------  -------------------  -------------------------------------
//   sqlite    store/gormstore      GORM tables, auto-migrated
//   postgres  store/pgstore        pgx pool, CREATE TABLE IF NOT EXISTS
//   memory    store/memory         slices guarded by a mutex
//
// Both collections of one Store share a single connection.
//
// =============================================================================

package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ginjaninja78/asientos-xml/internal/config"
	"github.com/ginjaninja78/asientos-xml/internal/store/gormstore"
	"github.com/ginjaninja78/asientos-xml/internal/store/memory"
	"github.com/ginjaninja78/asientos-xml/internal/store/pgstore"
	"github.com/ginjaninja78/asientos-xml/internal/types"
)

// LedgerSource reads every entry of a collection in insertion order.
type LedgerSource interface {
	FetchAll(ctx context.Context) ([]types.JournalEntry, error)
}

// StagingSink appends one entry to a collection.
type StagingSink interface {
	Insert(ctx context.Context, entry types.JournalEntry) error
}

// Collection is a table that can be both read and appended to.
type Collection interface {
	LedgerSource
	StagingSink
}

// Store holds the ledger and staging collections of one database.
type Store struct {
	Ledger  Collection
	Staging Collection

	closeFn func() error
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// Open connects to the database described by cfg and prepares both tables.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *log.Logger) (*Store, error) {
	logger = logger.With("driver", cfg.Driver)

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := gormstore.Open(cfg.DSN, cfg.LogMode)
		if err != nil {
			return nil, err
		}
		ledger, err := gormstore.NewTable(ctx, db, cfg.LedgerTable)
		if err != nil {
			_ = gormstore.Close(db)
			return nil, err
		}
		staging, err := gormstore.NewTable(ctx, db, cfg.StagingTable)
		if err != nil {
			_ = gormstore.Close(db)
			return nil, err
		}
		logger.Debug("opened database", "dsn", cfg.DSN)
		return &Store{
			Ledger:  ledger,
			Staging: staging,
			closeFn: func() error { return gormstore.Close(db) },
		}, nil

	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		ledger, err := pgstore.NewTable(ctx, pool, cfg.LedgerTable)
		if err != nil {
			pool.Close()
			return nil, err
		}
		staging, err := pgstore.NewTable(ctx, pool, cfg.StagingTable)
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Debug("connected to database")
		return &Store{
			Ledger:  ledger,
			Staging: staging,
			closeFn: func() error { pool.Close(); return nil },
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, nothing will be persisted")
		return &Store{
			Ledger:  memory.NewTable(cfg.LedgerTable),
			Staging: memory.NewTable(cfg.StagingTable),
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
