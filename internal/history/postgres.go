package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfandoo/Attrition-Predict/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS prediction_history (
	id              UUID PRIMARY KEY,
	batch_id        UUID NOT NULL,
	client_id       UUID,
	source          TEXT NOT NULL,
	row_index       INTEGER NOT NULL,
	employee_name   TEXT,
	predicted_class INTEGER NOT NULL,
	bertahan        DOUBLE PRECISION NOT NULL,
	resign          DOUBLE PRECISION NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
ALTER TABLE prediction_history ADD COLUMN IF NOT EXISTS client_id UUID;
CREATE INDEX IF NOT EXISTS idx_prediction_history_created_at ON prediction_history (created_at DESC);
`

// PostgresStore keeps history in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and creates the history table if needed.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Save inserts entries in one batch round trip.
func (s *PostgresStore) Save(ctx context.Context, entries []types.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := checkEntries(entries); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO prediction_history
			 (id, batch_id, client_id, source, row_index, employee_name, predicted_class, bertahan, resign, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, e.BatchID, e.ClientID, e.Source, e.RowIndex, e.EmployeeName,
			e.PredictedClass, e.Bertahan, e.Resign, e.CreatedAt,
		)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save prediction history: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (s *PostgresStore) Recent(ctx context.Context, q types.HistoryQuery) ([]types.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, batch_id, client_id, source, row_index, employee_name, predicted_class, bertahan, resign, created_at
		 FROM prediction_history
		 WHERE ($1 = '' OR source = $1)
		 ORDER BY created_at DESC, row_index ASC
		 LIMIT $2`,
		q.Source, q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prediction history: %w", err)
	}
	defer rows.Close()

	var out []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(&e.ID, &e.BatchID, &e.ClientID, &e.Source, &e.RowIndex, &e.EmployeeName,
			&e.PredictedClass, &e.Bertahan, &e.Resign, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction history: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prediction history: %w", err)
	}
	return out, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
