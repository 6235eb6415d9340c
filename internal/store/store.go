package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/cloudtree/fieldsync/pkg/soilid"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "cloudtree.db"

// Store is the durable local mirror of the backend. All mutations are
// serialized through a single mutex: the store is a single-writer resource
// and both the data service and the sync engine go through it, so one
// mutation is in flight at a time regardless of how callers overlap.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the data directory if needed, opens (or creates) the database
// file, and applies the schema. An Open failure is fatal to the caller: there
// is no degraded no-persistence mode.
func Open(dataDir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: keeps the foreign_keys pragma in force for every
	// statement and matches the store's single-writer discipline.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply indexes: %w", err)
		}
	}

	logger = logger.Named("store")
	logger.Debug("database opened", zap.String("path", dbPath))

	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle. Close is idempotent; operations after
// Close return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	s.db = nil
	return nil
}

// checkOpen returns ErrStoreClosed when the store has been closed.
func (s *Store) checkOpen() error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	return nil
}

// GenerateLocalID mints the next sequential local ID for the entity type,
// derived from the current row count. Correct only under the store's
// single-writer discipline; two processes sharing one database file could
// mint the same ID.
func (s *Store) GenerateLocalID(entityType types.EntityType) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generateLocalIDLocked(entityType)
}

func (s *Store) generateLocalIDLocked(entityType types.EntityType) (string, error) {
	if err := s.checkOpen(); err != nil {
		return "", err
	}

	var table string
	switch entityType {
	case types.EntitySoil:
		table = "Soils"
	case types.EntityParameter:
		table = "Parameters"
	default:
		return "", types.ErrInvalidEntityType
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return "", fmt.Errorf("count %s: %w", table, err)
	}
	return soilid.FormatLocal(entityType, count+1)
}

// PendingItems returns all rows still awaiting a push, partitioned by
// entity type.
func (s *Store) PendingItems() ([]types.Soil, []types.Parameter, error) {
	if err := s.checkOpen(); err != nil {
		return nil, nil, err
	}

	soils, err := s.querySoils("SELECT " + soilColumns + " FROM Soils WHERE sync_status = ?", string(types.StatusPending))
	if err != nil {
		return nil, nil, fmt.Errorf("pending soils: %w", err)
	}
	params, err := s.queryParameters("SELECT "+parameterColumns+" FROM Parameters WHERE sync_status = ?", string(types.StatusPending))
	if err != nil {
		return nil, nil, fmt.Errorf("pending parameters: %w", err)
	}
	return soils, params, nil
}

// PendingCount reports how many rows are still pending per entity type.
func (s *Store) PendingCount() (types.PendingCount, error) {
	var c types.PendingCount
	if err := s.checkOpen(); err != nil {
		return c, err
	}

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM Soils WHERE sync_status = ?", string(types.StatusPending),
	).Scan(&c.Soils); err != nil {
		return c, fmt.Errorf("count pending soils: %w", err)
	}
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM Parameters WHERE sync_status = ?", string(types.StatusPending),
	).Scan(&c.Parameters); err != nil {
		return c, fmt.Errorf("count pending parameters: %w", err)
	}
	return c, nil
}

// Clear wipes all four tables. Only for an explicit user-initiated reset.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"Parameters", "Soils", "SyncLog", "ID_Mappings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}

	s.logger.Info("local database cleared")
	return nil
}

// now renders the current instant in the canonical local-timestamp format.
// RFC 3339 with nanoseconds in UTC sorts lexicographically, which the
// last_modified orderings rely on.
func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// parseTimestamp accepts both canonical local timestamps and plain RFC 3339.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
