package syncengine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/soilid"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// pushLocked uploads every pending local row. Soils go first so their
// bundled reading is created and mapped before the remaining readings are
// considered. Per-item failures are collected and the batch continues.
func (e *Engine) pushLocked(ctx context.Context) types.SyncResult {
	logger := e.passLogger("push")
	result := types.SyncResult{Success: true}

	soils, _, err := e.store.PendingItems()
	if err != nil {
		result.Fail("list pending items: %v", err)
		result.Message = "push failed"
		e.logPass(logger, result)
		return result
	}
	for _, soil := range soils {
		e.pushSoil(ctx, logger, soil, &result)
	}

	// Re-read pending readings: each soil push above already synced its
	// bundled reading.
	_, params, err := e.store.PendingItems()
	if err != nil {
		result.Fail("list pending parameters: %v", err)
	} else {
		for _, param := range params {
			e.pushParameter(ctx, logger, param, &result)
		}
	}

	result.Message = fmt.Sprintf("push: %d items uploaded", result.ItemsSynced)
	e.logPass(logger, result)
	return result
}

// pushSoil uploads one pending soil bundled with its newest reading, then
// maps and marks both. A soil that already has a backend mapping was pushed
// by an earlier interrupted pass; it is healed to synced without re-uploading.
func (e *Engine) pushSoil(ctx context.Context, logger *zap.Logger, soil types.Soil, result *types.SyncResult) {
	synced, err := e.store.IsSynced(soil.ID)
	if err != nil {
		result.Fail("check mapping for soil %s: %v", soil.ID, err)
		return
	}
	if synced {
		logger.Info("soil already mapped, healing status", zap.String("soil_id", soil.ID))
		if err := e.store.SetSoilSyncStatus(soil.ID, types.StatusSynced); err != nil {
			result.Fail("heal soil %s: %v", soil.ID, err)
		}
		return
	}

	params, err := e.store.ParametersForSoil(soil.ID)
	if err != nil {
		result.Fail("load readings for soil %s: %v", soil.ID, err)
		return
	}
	if len(params) == 0 {
		result.Fail("soil %s has no reading to bundle with the create", soil.ID)
		return
	}
	bundled := params[0] // list is newest-first; the create carries the latest reading

	ids, err := e.gw.CreateSoil(ctx, types.CreateSoilRequest{
		Soil: types.SoilRequest{
			Name:      soil.Name,
			Latitude:  soil.Latitude,
			Longitude: soil.Longitude,
		},
		Parameters: paramRequest(bundled),
	})
	if err != nil {
		result.Fail("create soil %s: %v", soil.ID, err)
		return
	}

	backendSoilID := ids.SoilID
	if backendSoilID == "" {
		backendSoilID, err = e.recoverSoilID(ctx)
		if err != nil {
			result.Fail("recover backend id for soil %s: %v", soil.ID, err)
			return
		}
		logger.Info("backend soil id recovered by append order",
			zap.String("soil_id", soil.ID),
			zap.String("backend_id", backendSoilID))
	}

	if err := e.store.MapIDs(soil.ID, backendSoilID, types.EntitySoil); err != nil {
		result.Fail("map soil %s: %v", soil.ID, err)
		return
	}
	if err := e.store.SetSoilSyncStatus(soil.ID, types.StatusSynced); err != nil {
		result.Fail("mark soil %s synced: %v", soil.ID, err)
		return
	}

	backendParamID := ids.ParameterID
	if backendParamID == "" {
		backendParamID, err = e.recoverParameterID(ctx, backendSoilID)
		if err != nil {
			result.Fail("recover backend id for reading %s: %v", bundled.ID, err)
			return
		}
	}
	if err := e.store.MapIDs(bundled.ID, backendParamID, types.EntityParameter); err != nil {
		result.Fail("map reading %s: %v", bundled.ID, err)
		return
	}
	if err := e.store.SetParameterSyncStatus(bundled.ID, types.StatusSynced); err != nil {
		result.Fail("mark reading %s synced: %v", bundled.ID, err)
		return
	}

	logger.Info("soil pushed",
		zap.String("soil_id", soil.ID),
		zap.String("backend_id", backendSoilID))
	result.ItemsSynced += 2
}

// pushParameter uploads one pending reading. Its parent reference may be in
// either ID space: a local parent translates through its mapping, and a
// parent that has not synced yet leaves the reading pending for the next
// pass. A missing parent row is an error.
func (e *Engine) pushParameter(ctx context.Context, logger *zap.Logger, param types.Parameter, result *types.SyncResult) {
	synced, err := e.store.IsSynced(param.ID)
	if err != nil {
		result.Fail("check mapping for reading %s: %v", param.ID, err)
		return
	}
	if synced {
		logger.Info("reading already mapped, healing status", zap.String("parameter_id", param.ID))
		if err := e.store.SetParameterSyncStatus(param.ID, types.StatusSynced); err != nil {
			result.Fail("heal reading %s: %v", param.ID, err)
		}
		return
	}

	parentID := param.SoilID
	if soilid.IsLocal(parentID) {
		backendID, ok, err := e.store.BackendID(parentID)
		if err != nil {
			result.Fail("resolve parent of reading %s: %v", param.ID, err)
			return
		}
		if !ok {
			if _, err := e.store.GetSoil(parentID); errors.Is(err, types.ErrNotFound) {
				result.Fail("reading %s references missing soil %s", param.ID, parentID)
				return
			}
			logger.Debug("parent soil not synced yet, reading stays pending",
				zap.String("parameter_id", param.ID),
				zap.String("soil_id", parentID))
			return
		}
		parentID = backendID
	}

	ids, err := e.gw.AddParameter(ctx, types.AddParameterRequest{
		SoilID:     parentID,
		Parameters: paramRequest(param),
	})
	if err != nil {
		result.Fail("add reading %s: %v", param.ID, err)
		return
	}

	backendID := ids.ParameterID
	if backendID == "" {
		backendID, err = e.recoverParameterID(ctx, parentID)
		if err != nil {
			result.Fail("recover backend id for reading %s: %v", param.ID, err)
			return
		}
		logger.Info("backend reading id recovered by append order",
			zap.String("parameter_id", param.ID),
			zap.String("backend_id", backendID))
	}

	if err := e.store.MapIDs(param.ID, backendID, types.EntityParameter); err != nil {
		result.Fail("map reading %s: %v", param.ID, err)
		return
	}
	if err := e.store.SetParameterSyncStatus(param.ID, types.StatusSynced); err != nil {
		result.Fail("mark reading %s synced: %v", param.ID, err)
		return
	}

	logger.Info("reading pushed",
		zap.String("parameter_id", param.ID),
		zap.String("backend_id", backendID))
	result.ItemsSynced++
}

// recoverSoilID re-fetches the remote soils and returns the ID of the
// highest-numbered one. The backend allocates IDs in ascending order, so
// right after a create the highest ID is the entity just created. Only sound
// because passes are single-flighted.
func (e *Engine) recoverSoilID(ctx context.Context) (string, error) {
	soils, err := e.gw.Soils(ctx)
	if err != nil {
		return "", fmt.Errorf("refetch soils: %w", err)
	}
	best, bestN := "", -1
	for _, soil := range soils {
		if n, ok := soilid.ToNumber(soil.ID); ok && n > bestN {
			best, bestN = soil.ID, n
		}
	}
	if best == "" {
		return "", fmt.Errorf("no soil came back after create")
	}
	return best, nil
}

// recoverParameterID re-fetches a soil's remote readings and returns the ID
// of the highest-numbered one.
func (e *Engine) recoverParameterID(ctx context.Context, backendSoilID string) (string, error) {
	params, err := e.gw.Parameters(ctx, backendSoilID)
	if err != nil {
		return "", fmt.Errorf("refetch readings of %s: %w", backendSoilID, err)
	}
	best, bestN := "", -1
	for _, param := range params {
		if n, ok := soilid.ToNumber(param.ID); ok && n > bestN {
			best, bestN = param.ID, n
		}
	}
	if best == "" {
		return "", fmt.Errorf("no reading came back after create on %s", backendSoilID)
	}
	return best, nil
}

// paramRequest projects a stored reading back into its request form.
func paramRequest(p types.Parameter) types.ParameterRequest {
	return types.ParameterRequest{
		Moisture:    p.Moisture,
		Temperature: p.Temperature,
		EC:          p.EC,
		PH:          p.PH,
		Nitrogen:    p.Nitrogen,
		Phosphorus:  p.Phosphorus,
		Potassium:   p.Potassium,
		Comments:    p.Comments,
	}
}
