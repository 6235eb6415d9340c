package store

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// soilColumns is the column list every soil query selects, in hydration order.
const soilColumns = "Soil_ID, Soil_Name, Loc_Latitude, Loc_Longitude, sync_status, last_modified"

// SaveSoil creates a soil locally together with its first reading, minting
// local IDs for both and marking them pending. This is the offline creation
// path; the backend's create endpoint bundles the first reading the same way.
// Returns the minted soil and parameter IDs.
func (s *Store) SaveSoil(req types.CreateSoilRequest) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return "", "", err
	}
	if req.Soil.Name == "" {
		return "", "", types.ErrNameEmpty
	}

	soilID, err := s.generateLocalIDLocked(types.EntitySoil)
	if err != nil {
		return "", "", err
	}
	paramID, err := s.generateLocalIDLocked(types.EntityParameter)
	if err != nil {
		return "", "", err
	}

	ts := now()

	tx, err := s.db.Begin()
	if err != nil {
		return "", "", fmt.Errorf("begin save soil: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO Soils (Soil_ID, Soil_Name, Loc_Latitude, Loc_Longitude, sync_status, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		soilID, req.Soil.Name, req.Soil.Latitude, req.Soil.Longitude, string(types.StatusPending), ts,
	)
	if err != nil {
		return "", "", fmt.Errorf("insert soil: %w", err)
	}

	p := req.Parameters
	_, err = tx.Exec(
		`INSERT INTO Parameters (Parameter_ID, Soil_ID, Hum, Temp, Ec, Ph, Nitrogen, Phosphorus, Potassium, Comments, Date_Recorded, sync_status, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		paramID, soilID, p.Moisture, p.Temperature, p.EC, p.PH, p.Nitrogen, p.Phosphorus, p.Potassium, p.Comments, ts, string(types.StatusPending), ts,
	)
	if err != nil {
		return "", "", fmt.Errorf("insert first parameter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", "", fmt.Errorf("commit save soil: %w", err)
	}

	s.logger.Info("soil saved locally",
		zap.String("soil_id", soilID),
		zap.String("parameter_id", paramID))
	return soilID, paramID, nil
}

// UpsertSoil inserts or updates a soil keyed by its ID, stamping
// last_modified and the given sync status. The pull path passes
// StatusSynced; everything else passes StatusPending.
func (s *Store) UpsertSoil(soil types.Soil, status types.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if soil.ID == "" {
		return types.ErrInvalidID
	}

	_, err := s.db.Exec(
		`INSERT INTO Soils (Soil_ID, Soil_Name, Loc_Latitude, Loc_Longitude, sync_status, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(Soil_ID) DO UPDATE SET
		   Soil_Name = excluded.Soil_Name,
		   Loc_Latitude = excluded.Loc_Latitude,
		   Loc_Longitude = excluded.Loc_Longitude,
		   sync_status = excluded.sync_status,
		   last_modified = excluded.last_modified`,
		soil.ID, soil.Name, soil.Latitude, soil.Longitude, string(status), now(),
	)
	if err != nil {
		return fmt.Errorf("upsert soil %s: %w", soil.ID, err)
	}
	return nil
}

// Soils returns all local soils, most recently modified first.
func (s *Store) Soils() ([]types.Soil, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.querySoils("SELECT " + soilColumns + " FROM Soils ORDER BY last_modified DESC")
}

// GetSoil returns a single soil or ErrNotFound.
func (s *Store) GetSoil(id string) (*types.Soil, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := s.db.QueryRow("SELECT "+soilColumns+" FROM Soils WHERE Soil_ID = ?", id)
	soil, err := hydrateSoil(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get soil %s: %w", id, err)
	}
	return soil, nil
}

// SetSoilSyncStatus flips a soil's sync status, stamping last_modified.
func (s *Store) SetSoilSyncStatus(id string, status types.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"UPDATE Soils SET sync_status = ?, last_modified = ? WHERE Soil_ID = ?",
		string(status), now(), id,
	)
	if err != nil {
		return fmt.Errorf("set soil %s status: %w", id, err)
	}
	return nil
}

// DeleteSoil removes a soil and cascades to its parameters. The parameter
// delete is explicit rather than left to the FOREIGN KEY clause so the
// cascade does not depend on the connection's foreign_keys pragma.
func (s *Store) DeleteSoil(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete soil: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM Parameters WHERE Soil_ID = ?", id); err != nil {
		return fmt.Errorf("delete parameters of soil %s: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM Soils WHERE Soil_ID = ?", id); err != nil {
		return fmt.Errorf("delete soil %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete soil: %w", err)
	}

	s.logger.Info("soil deleted locally", zap.String("soil_id", id))
	return nil
}

// querySoils runs a soil query and hydrates the rows.
func (s *Store) querySoils(query string, args ...any) ([]types.Soil, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query soils: %w", err)
	}
	defer rows.Close()

	soils := []types.Soil{}
	for rows.Next() {
		soil, err := hydrateSoil(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrate soil: %w", err)
		}
		soils = append(soils, *soil)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate soils: %w", err)
	}
	return soils, nil
}

// hydrateSoil converts one row into a Soil using the given scan function.
func hydrateSoil(scan func(...any) error) (*types.Soil, error) {
	var soil types.Soil
	var status, lastModified string
	if err := scan(&soil.ID, &soil.Name, &soil.Latitude, &soil.Longitude, &status, &lastModified); err != nil {
		return nil, err
	}
	soil.SyncStatus = types.SyncStatus(status)
	soil.LastModified = parseTimestamp(lastModified)
	return &soil, nil
}
