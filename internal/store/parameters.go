package store

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// parameterColumns is the column list every parameter query selects,
// in hydration order.
const parameterColumns = "Parameter_ID, Soil_ID, Hum, Temp, Ec, Ph, Nitrogen, Phosphorus, Potassium, Comments, Date_Recorded, sync_status, last_modified"

// SaveParameter creates a reading locally with a minted local ID and pending
// status. The parent Soil_ID in the request may be either a local or a
// backend ID; it is stored as given and reconciled at sync time.
func (s *Store) SaveParameter(req types.AddParameterRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}
	if req.SoilID == "" {
		return "", types.ErrInvalidID
	}

	paramID, err := s.generateLocalIDLocked(types.EntityParameter)
	if err != nil {
		return "", err
	}

	ts := now()
	p := req.Parameters
	_, err = s.db.Exec(
		`INSERT INTO Parameters (Parameter_ID, Soil_ID, Hum, Temp, Ec, Ph, Nitrogen, Phosphorus, Potassium, Comments, Date_Recorded, sync_status, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paramID, req.SoilID, p.Moisture, p.Temperature, p.EC, p.PH, p.Nitrogen, p.Phosphorus, p.Potassium, p.Comments, ts, string(types.StatusPending), ts,
	)
	if err != nil {
		return "", fmt.Errorf("insert parameter: %w", err)
	}

	s.logger.Info("parameter saved locally",
		zap.String("parameter_id", paramID),
		zap.String("soil_id", req.SoilID))
	return paramID, nil
}

// UpsertParameter inserts or updates a parameter keyed by its ID, stamping
// last_modified and the given sync status.
func (s *Store) UpsertParameter(param types.Parameter, status types.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if param.ID == "" {
		return types.ErrInvalidID
	}

	_, err := s.db.Exec(
		`INSERT INTO Parameters (Parameter_ID, Soil_ID, Hum, Temp, Ec, Ph, Nitrogen, Phosphorus, Potassium, Comments, Date_Recorded, sync_status, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(Parameter_ID) DO UPDATE SET
		   Soil_ID = excluded.Soil_ID,
		   Hum = excluded.Hum,
		   Temp = excluded.Temp,
		   Ec = excluded.Ec,
		   Ph = excluded.Ph,
		   Nitrogen = excluded.Nitrogen,
		   Phosphorus = excluded.Phosphorus,
		   Potassium = excluded.Potassium,
		   Comments = excluded.Comments,
		   Date_Recorded = excluded.Date_Recorded,
		   sync_status = excluded.sync_status,
		   last_modified = excluded.last_modified`,
		param.ID, param.SoilID, param.Moisture, param.Temperature, param.EC, param.PH,
		param.Nitrogen, param.Phosphorus, param.Potassium, param.Comments, param.DateRecorded,
		string(status), now(),
	)
	if err != nil {
		return fmt.Errorf("upsert parameter %s: %w", param.ID, err)
	}
	return nil
}

// UpdateParameter overwrites a reading's measurements and comments, flipping
// it back to pending. Returns ErrNotFound for an unknown ID.
func (s *Store) UpdateParameter(id string, p types.ParameterRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}

	res, err := s.db.Exec(
		`UPDATE Parameters
		 SET Hum = ?, Temp = ?, Ec = ?, Ph = ?, Nitrogen = ?, Phosphorus = ?, Potassium = ?, Comments = ?,
		     sync_status = ?, last_modified = ?
		 WHERE Parameter_ID = ?`,
		p.Moisture, p.Temperature, p.EC, p.PH, p.Nitrogen, p.Phosphorus, p.Potassium, p.Comments,
		string(types.StatusPending), now(), id,
	)
	if err != nil {
		return fmt.Errorf("update parameter %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update parameter %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// ParametersForSoil returns all readings for a soil, most recent first.
func (s *Store) ParametersForSoil(soilID string) ([]types.Parameter, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.queryParameters(
		"SELECT "+parameterColumns+" FROM Parameters WHERE Soil_ID = ? ORDER BY Date_Recorded DESC",
		soilID,
	)
}

// GetParameter returns a single reading or ErrNotFound.
func (s *Store) GetParameter(id string) (*types.Parameter, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := s.db.QueryRow("SELECT "+parameterColumns+" FROM Parameters WHERE Parameter_ID = ?", id)
	param, err := hydrateParameter(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get parameter %s: %w", id, err)
	}
	return param, nil
}

// SetParameterSyncStatus flips a reading's sync status, stamping last_modified.
func (s *Store) SetParameterSyncStatus(id string, status types.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"UPDATE Parameters SET sync_status = ?, last_modified = ? WHERE Parameter_ID = ?",
		string(status), now(), id,
	)
	if err != nil {
		return fmt.Errorf("set parameter %s status: %w", id, err)
	}
	return nil
}

// DeleteParameter removes a single reading.
func (s *Store) DeleteParameter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}

	if _, err := s.db.Exec("DELETE FROM Parameters WHERE Parameter_ID = ?", id); err != nil {
		return fmt.Errorf("delete parameter %s: %w", id, err)
	}

	s.logger.Info("parameter deleted locally", zap.String("parameter_id", id))
	return nil
}

// queryParameters runs a parameter query and hydrates the rows.
func (s *Store) queryParameters(query string, args ...any) ([]types.Parameter, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer rows.Close()

	params := []types.Parameter{}
	for rows.Next() {
		param, err := hydrateParameter(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrate parameter: %w", err)
		}
		params = append(params, *param)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parameters: %w", err)
	}
	return params, nil
}

// hydrateParameter converts one row into a Parameter using the given scan
// function. Comments may be NULL in rows pulled from the backend.
func hydrateParameter(scan func(...any) error) (*types.Parameter, error) {
	var p types.Parameter
	var comments sql.NullString
	var status, lastModified string
	if err := scan(
		&p.ID, &p.SoilID, &p.Moisture, &p.Temperature, &p.EC, &p.PH,
		&p.Nitrogen, &p.Phosphorus, &p.Potassium, &comments, &p.DateRecorded,
		&status, &lastModified,
	); err != nil {
		return nil, err
	}
	p.Comments = comments.String
	p.SyncStatus = types.SyncStatus(status)
	p.LastModified = parseTimestamp(lastModified)
	return &p, nil
}
