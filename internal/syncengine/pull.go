package syncengine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/types"
)

// pullLocked downloads the remote data set and mirrors it into the local
// store under local IDs. Rows already known through a mapping are refreshed
// in place; unknown ones get a minted local ID. Per-soil failures are
// collected and the batch continues.
func (e *Engine) pullLocked(ctx context.Context) types.SyncResult {
	logger := e.passLogger("pull")
	result := types.SyncResult{Success: true}

	soils, err := e.gw.Soils(ctx)
	if err != nil {
		result.Fail("fetch remote soils: %v", err)
		result.Message = "pull failed"
		e.logPass(logger, result)
		return result
	}

	for _, soil := range soils {
		e.pullSoil(ctx, logger, soil, &result)
	}

	result.Message = fmt.Sprintf("pull: %d items downloaded", result.ItemsSynced)
	e.logPass(logger, result)
	return result
}

// pullSoil mirrors one remote soil and its readings locally.
func (e *Engine) pullSoil(ctx context.Context, logger *zap.Logger, remote types.Soil, result *types.SyncResult) {
	localID, err := e.resolveLocalID(remote.ID, types.EntitySoil)
	if err != nil {
		result.Fail("resolve soil %s: %v", remote.ID, err)
		return
	}

	local := remote
	local.ID = localID
	if err := e.store.UpsertSoil(local, types.StatusSynced); err != nil {
		result.Fail("store soil %s: %v", remote.ID, err)
		return
	}
	if err := e.store.MapIDs(localID, remote.ID, types.EntitySoil); err != nil {
		result.Fail("map soil %s: %v", remote.ID, err)
		return
	}
	result.ItemsSynced++

	params, err := e.gw.Parameters(ctx, remote.ID)
	if err != nil {
		result.Fail("fetch readings of %s: %v", remote.ID, err)
		return
	}
	for _, param := range params {
		e.pullParameter(logger, param, localID, result)
	}

	logger.Debug("soil pulled",
		zap.String("backend_id", remote.ID),
		zap.String("local_id", localID),
		zap.Int("readings", len(params)))
}

// pullParameter mirrors one remote reading locally, with its parent
// reference translated into the local ID space.
func (e *Engine) pullParameter(logger *zap.Logger, remote types.Parameter, localSoilID string, result *types.SyncResult) {
	localID, err := e.resolveLocalID(remote.ID, types.EntityParameter)
	if err != nil {
		result.Fail("resolve reading %s: %v", remote.ID, err)
		return
	}

	local := remote
	local.ID = localID
	local.SoilID = localSoilID
	if err := e.store.UpsertParameter(local, types.StatusSynced); err != nil {
		result.Fail("store reading %s: %v", remote.ID, err)
		return
	}
	if err := e.store.MapIDs(localID, remote.ID, types.EntityParameter); err != nil {
		result.Fail("map reading %s: %v", remote.ID, err)
		return
	}
	result.ItemsSynced++
}

// resolveLocalID decides which local row a backend entity lands on: the
// mapped local ID when one exists, the backend ID itself when a legacy row
// is already keyed by it, or a freshly minted local ID.
func (e *Engine) resolveLocalID(backendID string, entityType types.EntityType) (string, error) {
	localID, ok, err := e.store.LocalID(backendID)
	if err != nil {
		return "", err
	}
	if ok {
		return localID, nil
	}

	switch entityType {
	case types.EntitySoil:
		_, err = e.store.GetSoil(backendID)
	case types.EntityParameter:
		_, err = e.store.GetParameter(backendID)
	default:
		return "", types.ErrInvalidEntityType
	}
	if err == nil {
		// Legacy row stored under the backend ID before mappings existed.
		return backendID, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return "", err
	}

	return e.store.GenerateLocalID(entityType)
}
