package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alfandoo/Attrition-Predict/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS prediction_history (
	id              TEXT PRIMARY KEY,
	batch_id        TEXT NOT NULL,
	client_id       TEXT,
	source          TEXT NOT NULL,
	row_index       INTEGER NOT NULL,
	employee_name   TEXT,
	predicted_class INTEGER NOT NULL,
	bertahan        REAL NOT NULL,
	resign          REAL NOT NULL,
	created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prediction_history_created_at ON prediction_history (created_at DESC);
`

// SQLiteStore keeps history in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite history path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer at a time keeps SQLite out of SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts entries in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, entries []types.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := checkEntries(entries); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO prediction_history
		 (id, batch_id, client_id, source, row_index, employee_name, predicted_class, bertahan, resign, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			e.ID.String(), e.BatchID.String(), nullUUID(e.ClientID), e.Source, e.RowIndex, e.EmployeeName,
			e.PredictedClass, e.Bertahan, e.Resign, e.CreatedAt.UnixNano(),
		); err != nil {
			return fmt.Errorf("failed to save prediction history: %w", err)
		}
	}
	return tx.Commit()
}

// Recent returns the newest entries first.
func (s *SQLiteStore) Recent(ctx context.Context, q types.HistoryQuery) ([]types.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, batch_id, client_id, source, row_index, employee_name, predicted_class, bertahan, resign, created_at
		 FROM prediction_history
		 WHERE (? = '' OR source = ?)
		 ORDER BY created_at DESC, row_index ASC
		 LIMIT ?`,
		q.Source, q.Source, q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prediction history: %w", err)
	}
	defer rows.Close()

	var out []types.HistoryEntry
	for rows.Next() {
		var (
			e             types.HistoryEntry
			id, batchID   string
			clientID      sql.NullString
			name          sql.NullString
			createdAtNano int64
		)
		if err := rows.Scan(&id, &batchID, &clientID, &e.Source, &e.RowIndex, &name,
			&e.PredictedClass, &e.Bertahan, &e.Resign, &createdAtNano); err != nil {
			return nil, fmt.Errorf("failed to scan prediction history: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid history id %q: %w", id, err)
		}
		if e.BatchID, err = uuid.Parse(batchID); err != nil {
			return nil, fmt.Errorf("invalid batch id %q: %w", batchID, err)
		}
		if clientID.Valid {
			cid, err := uuid.Parse(clientID.String)
			if err != nil {
				return nil, fmt.Errorf("invalid client id %q: %w", clientID.String, err)
			}
			e.ClientID = &cid
		}
		if name.Valid {
			e.EmployeeName = &name.String
		}
		e.CreatedAt = time.Unix(0, createdAtNano).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prediction history: %w", err)
	}
	return out, nil
}

func nullUUID(id *uuid.UUID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
