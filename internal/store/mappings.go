package store

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// MapIDs records the association between a local and a backend ID. The
// upsert is idempotent: re-mapping an identical pair leaves one row. Both
// columns are unique; remapping either side to a new partner replaces the
// old row (last write wins). Correct callers never remap, so a replaced
// pair indicates a caller bug, not a condition to recover from.
func (s *Store) MapIDs(localID, backendID string, entityType types.EntityType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if localID == "" || backendID == "" {
		return types.ErrInvalidID
	}
	if !entityType.Valid() {
		return types.ErrInvalidEntityType
	}

	ts := now()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO ID_Mappings (local_id, backend_id, entity_type, created_at, synced_at)
		 VALUES (?, ?, ?, ?, ?)`,
		localID, backendID, string(entityType), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("map %s to %s: %w", localID, backendID, err)
	}

	s.logger.Info("id mapping recorded",
		zap.String("local_id", localID),
		zap.String("backend_id", backendID),
		zap.String("entity_type", string(entityType)))
	return nil
}

// BackendID looks up the backend ID for a local ID. A missing mapping is not
// an error; the second return is false.
func (s *Store) BackendID(localID string) (string, bool, error) {
	if err := s.checkOpen(); err != nil {
		return "", false, err
	}

	var backendID string
	err := s.db.QueryRow(
		"SELECT backend_id FROM ID_Mappings WHERE local_id = ?", localID,
	).Scan(&backendID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup backend id for %s: %w", localID, err)
	}
	return backendID, true, nil
}

// LocalID looks up the local ID for a backend ID. A missing mapping is not
// an error; the second return is false.
func (s *Store) LocalID(backendID string) (string, bool, error) {
	if err := s.checkOpen(); err != nil {
		return "", false, err
	}

	var localID string
	err := s.db.QueryRow(
		"SELECT local_id FROM ID_Mappings WHERE backend_id = ?", backendID,
	).Scan(&localID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup local id for %s: %w", backendID, err)
	}
	return localID, true, nil
}

// IsSynced reports whether a local ID has a backend mapping.
func (s *Store) IsSynced(localID string) (bool, error) {
	_, ok, err := s.BackendID(localID)
	return ok, err
}

// Mappings returns all ID mappings, filtered by entity type when one is
// given; pass the empty string for all.
func (s *Store) Mappings(entityType types.EntityType) ([]types.IDMapping, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT local_id, backend_id, entity_type, created_at, synced_at FROM ID_Mappings"
	var args []any
	if entityType != "" {
		query += " WHERE entity_type = ?"
		args = append(args, string(entityType))
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mappings: %w", err)
	}
	defer rows.Close()

	mappings := []types.IDMapping{}
	for rows.Next() {
		var m types.IDMapping
		var et, createdAt string
		var syncedAt sql.NullString
		if err := rows.Scan(&m.LocalID, &m.BackendID, &et, &createdAt, &syncedAt); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		m.EntityType = types.EntityType(et)
		m.CreatedAt = parseTimestamp(createdAt)
		if syncedAt.Valid {
			m.SyncedAt = parseTimestamp(syncedAt.String)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mappings: %w", err)
	}
	return mappings, nil
}
