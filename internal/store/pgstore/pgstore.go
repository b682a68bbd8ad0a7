// Package pgstore keeps journal entries in PostgreSQL through a pgx pool.
package pgstore

import (
	"context"
	"fmt"

	"github.com/ginjaninja78/asientos-xml/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// NewPool creates a pgx pool from databaseURL and checks the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Table is one collection of journal entries.
type Table struct {
	pool  *pgxpool.Pool
	name  string
	ident string
}

// NewTable creates the named table when missing and returns a handle to it.
func NewTable(ctx context.Context, pool *pgxpool.Pool, name string) (*Table, error) {
	t := &Table{pool: pool, name: name, ident: pgx.Identifier{name}.Sanitize()}

	if _, err := pool.Exec(ctx, createTableSQL(t.ident)); err != nil {
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}
	return t, nil
}

func createTableSQL(ident string) string {
	return `CREATE TABLE IF NOT EXISTS ` + ident + ` (
	seq            BIGSERIAL PRIMARY KEY,
	id             UUID NOT NULL,
	entry_number   INTEGER,
	description    TEXT,
	entry_date     DATE NOT NULL,
	account_code   TEXT,
	account_name   TEXT,
	account_number TEXT,
	movement_type  TEXT,
	amount         NUMERIC
)`
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// FetchAll returns every row in insertion order.
func (t *Table) FetchAll(ctx context.Context) ([]types.JournalEntry, error) {
	query := `SELECT id::text, entry_number, description, entry_date,
		account_code, account_name, account_number, movement_type, amount::text
	FROM ` + t.ident + ` ORDER BY seq ASC`

	rows, err := t.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", t.name, err)
	}
	defer rows.Close()

	var entries []types.JournalEntry
	for rows.Next() {
		var (
			e      types.JournalEntry
			amount *string
		)
		if err := rows.Scan(
			&e.ID, &e.EntryNumber, &e.Description, &e.EntryDate,
			&e.AccountCode, &e.AccountName, &e.AccountNumber, &e.MovementType, &amount,
		); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", t.name, err)
		}
		if amount != nil {
			d, err := decimal.NewFromString(*amount)
			if err != nil {
				return nil, fmt.Errorf("scan %s amount: %w", t.name, err)
			}
			e.Amount = types.Amount(d)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", t.name, err)
	}

	return entries, nil
}

// Insert appends entry. An entry without ID is given a new UUID.
func (t *Table) Insert(ctx context.Context, entry types.JournalEntry) error {
	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}

	var amount *string
	if entry.Amount.Valid {
		s := entry.Amount.Decimal.String()
		amount = &s
	}

	query := `INSERT INTO ` + t.ident + ` (id, entry_number, description, entry_date,
		account_code, account_name, account_number, movement_type, amount)
	VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, CAST($9::text AS NUMERIC))`

	_, err := t.pool.Exec(ctx, query,
		id, entry.EntryNumber, entry.Description, entry.EntryDate,
		entry.AccountCode, entry.AccountName, entry.AccountNumber, entry.MovementType, amount,
	)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return nil
}
