package store

import (
	"fmt"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// AppendSyncLog records the outcome of a sync pass. The log is append-only;
// nothing mutates or deletes entries except a full Clear.
func (s *Store) AppendSyncLog(status types.SyncOutcome, message string, itemsSynced int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT INTO SyncLog (sync_date, status, message, items_synced) VALUES (?, ?, ?, ?)",
		now(), string(status), message, itemsSynced,
	)
	if err != nil {
		return fmt.Errorf("append sync log: %w", err)
	}
	return nil
}

// SyncHistory returns the most recent sync log entries, newest first.
func (s *Store) SyncHistory(limit int) ([]types.SyncLogEntry, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		"SELECT id, sync_date, status, message, items_synced FROM SyncLog ORDER BY sync_date DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sync log: %w", err)
	}
	defer rows.Close()

	entries := []types.SyncLogEntry{}
	for rows.Next() {
		var e types.SyncLogEntry
		var ts, status string
		if err := rows.Scan(&e.ID, &ts, &status, &e.Message, &e.ItemsSynced); err != nil {
			return nil, fmt.Errorf("scan sync log entry: %w", err)
		}
		e.Timestamp = parseTimestamp(ts)
		e.Status = types.SyncOutcome(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync log: %w", err)
	}
	return entries, nil
}
