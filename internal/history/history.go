// Package history persists served predictions so they can be audited later.
package history

import (
	"context"
	"fmt"

	"github.com/alfandoo/Attrition-Predict/internal/types"
)

// Store records predictions and lists the most recent ones.
type Store interface {
	// Save validates every entry and stores none of them if one is invalid.
	Save(ctx context.Context, entries []types.HistoryEntry) error
	Recent(ctx context.Context, q types.HistoryQuery) ([]types.HistoryEntry, error)
	Close() error
}

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// checkEntries rejects entries that do not describe a served prediction, such as a
// failed CSV row or an entry without ids.
func checkEntries(entries []types.HistoryEntry) error {
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return fmt.Errorf("invalid history entry %d: %w", i, err)
		}
	}
	return nil
}

// Open connects to the store selected by driver and makes sure its table exists.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unknown history driver %q", driver)
	}
}
