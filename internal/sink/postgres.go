package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"quotesynth/pkg/quote"
)

const (
	postgresDriver = "pgx"
	// Default DSN matches local development; deployments override via env.
	defaultPostgresDSN = "postgres://localhost/quotesynth?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Postgres upserts each record into a quotes table keyed by (root_seed,
// record_index), with the full document as jsonb. Reruns of the same seed
// overwrite in place, so the table always reflects the latest batch.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens the database, ensures the quotes table exists and
// returns the sink. An empty DSN falls back to the local default.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	openMu.Lock()
	db, err := sqlOpen(postgresDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureQuotesTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Postgres) DB() *sql.DB { return s.db }

// Write upserts one record.
func (s *Postgres) Write(ctx context.Context, q quote.Quote) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quote %d: %w", q.Metadata.RecordIndex, err)
	}
	const upsert = `INSERT INTO quotes (root_seed, record_index, quote_id, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (root_seed, record_index)
		DO UPDATE SET quote_id = EXCLUDED.quote_id, payload = EXCLUDED.payload`
	_, err = s.db.ExecContext(ctx, upsert,
		int64(q.Metadata.RootSeed), int64(q.Metadata.RecordIndex), q.Metadata.QuoteID, payload)
	if err != nil {
		return fmt.Errorf("upsert quote %d: %w", q.Metadata.RecordIndex, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Postgres) Close(context.Context) error {
	return s.db.Close()
}

func ensureQuotesTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS quotes (
		root_seed BIGINT NOT NULL,
		record_index BIGINT NOT NULL,
		quote_id TEXT NOT NULL,
		payload JSONB NOT NULL,
		PRIMARY KEY (root_seed, record_index)
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure quotes table: %w", err)
	}
	return nil
}
