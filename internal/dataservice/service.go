// Package dataservice is the façade every caller goes through for soil and
// parameter operations. It hides the online/offline branching: writes land
// on the backend when it is reachable and fall back to the local store when
// it is not, so a write always ends up somewhere durable. The only errors
// that escape are local-store failures.
package dataservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/internal/gateway"
	"github.com/cloudtree/fieldsync/internal/store"
	"github.com/cloudtree/fieldsync/pkg/soilid"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// Gateway is the slice of the backend client the façade consumes.
type Gateway interface {
	Soils(ctx context.Context) ([]types.Soil, error)
	Parameters(ctx context.Context, soilID string) ([]types.Parameter, error)
	CreateSoil(ctx context.Context, req types.CreateSoilRequest) (gateway.CreatedIDs, error)
	AddParameter(ctx context.Context, req types.AddParameterRequest) (gateway.CreatedIDs, error)
	DeleteParameter(ctx context.Context, parameterID string) error
	DeleteSoil(ctx context.Context, soilID string) error
}

// Oracle decides whether the online path may be taken.
type Oracle interface {
	EffectiveOnline(ctx context.Context) bool
}

// Preferences exposes the persisted forced-offline switch.
type Preferences interface {
	OfflineMode() bool
	SetOfflineMode(offline bool) error
}

// Service routes reads and writes between the local store and the backend.
type Service struct {
	store  *store.Store
	gw     Gateway
	oracle Oracle
	prefs  Preferences
	logger *zap.Logger
}

// New creates the data service façade.
func New(st *store.Store, gw Gateway, oracle Oracle, prefs Preferences, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, gw: gw, oracle: oracle, prefs: prefs, logger: logger.Named("dataservice")}
}

// Soils returns all soils: from the backend when effectively online, from
// the local store otherwise. A failed remote read falls back to local data,
// since a read has no side effect to reconcile.
func (s *Service) Soils(ctx context.Context) ([]types.Soil, error) {
	if s.oracle.EffectiveOnline(ctx) {
		soils, err := s.gw.Soils(ctx)
		if err == nil {
			return soils, nil
		}
		s.logger.Warn("remote soils fetch failed, falling back to local", zap.Error(err))
	}
	return s.store.Soils()
}

// Parameters returns the readings for a soil, remote-first with local
// fallback. A local soil ID is translated through its mapping before the
// remote fetch; an unmapped local ID only exists locally and goes straight
// to the store.
func (s *Service) Parameters(ctx context.Context, soilID string) ([]types.Parameter, error) {
	if s.oracle.EffectiveOnline(ctx) {
		remoteID, ok, err := s.remoteSoilID(soilID)
		if err != nil {
			return nil, err
		}
		if ok {
			params, err := s.gw.Parameters(ctx, remoteID)
			if err == nil {
				return params, nil
			}
			s.logger.Warn("remote parameters fetch failed, falling back to local",
				zap.String("soil_id", soilID), zap.Error(err))
		}
	}
	return s.store.ParametersForSoil(soilID)
}

// SaveSoil creates a soil with its first reading. Online, the entity is
// created directly at the backend and not written locally: the authoritative
// copy arrives on the next pull, which avoids duplicate-ID churn. Offline,
// or when the remote create fails, the soil is saved locally with a minted
// local ID and pending status; that ID is returned.
func (s *Service) SaveSoil(ctx context.Context, req types.CreateSoilRequest) (string, error) {
	if s.oracle.EffectiveOnline(ctx) {
		_, err := s.gw.CreateSoil(ctx, req)
		if err == nil {
			return "", nil
		}
		s.logger.Warn("remote soil create failed, saving locally", zap.Error(err))
	}

	localID, _, err := s.store.SaveSoil(req)
	if err != nil {
		return "", err
	}
	return localID, nil
}

// SaveParameter adds a reading to a soil, online-first with local fallback.
// The request's SoilID may be in either ID space; a local parent that has no
// backend mapping yet cannot be written upstream, so the reading is saved
// locally and picked up once the parent syncs.
func (s *Service) SaveParameter(ctx context.Context, req types.AddParameterRequest) (string, error) {
	if s.oracle.EffectiveOnline(ctx) {
		remoteID, ok, err := s.remoteSoilID(req.SoilID)
		if err != nil {
			return "", err
		}
		if ok {
			remote := req
			remote.SoilID = remoteID
			if _, err := s.gw.AddParameter(ctx, remote); err == nil {
				return "", nil
			}
			s.logger.Warn("remote parameter create failed, saving locally",
				zap.String("soil_id", req.SoilID), zap.Error(err))
		} else {
			s.logger.Info("parent soil not synced yet, saving parameter locally",
				zap.String("soil_id", req.SoilID))
		}
	}

	return s.store.SaveParameter(req)
}

// UpdateParameter overwrites a reading. The local row is always updated
// first and flipped to pending; when online, the new values are pushed as a
// fresh reading (the backend has no update endpoint) and the local row is
// marked synced on success.
func (s *Service) UpdateParameter(ctx context.Context, parameterID string, req types.AddParameterRequest) error {
	if err := s.store.UpdateParameter(parameterID, req.Parameters); err != nil {
		return err
	}

	if !s.oracle.EffectiveOnline(ctx) {
		return nil
	}

	remoteID, ok, err := s.remoteSoilID(req.SoilID)
	if err != nil || !ok {
		return err
	}
	remote := req
	remote.SoilID = remoteID
	if _, err := s.gw.AddParameter(ctx, remote); err != nil {
		s.logger.Warn("remote parameter update failed, row stays pending",
			zap.String("parameter_id", parameterID), zap.Error(err))
		return nil
	}
	return s.store.SetParameterSyncStatus(parameterID, types.StatusSynced)
}

// DeleteParameter removes a reading locally and, when online and the ID has
// a backend counterpart, best-effort remotely.
func (s *Service) DeleteParameter(ctx context.Context, parameterID string) error {
	backendID, ok, err := s.backendIDFor(parameterID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteParameter(parameterID); err != nil {
		return err
	}

	if ok && s.oracle.EffectiveOnline(ctx) {
		if err := s.gw.DeleteParameter(ctx, backendID); err != nil {
			s.logger.Warn("remote parameter delete failed",
				zap.String("parameter_id", parameterID), zap.Error(err))
		}
	}
	return nil
}

// DeleteSoil removes a soil and its readings locally and, when online and
// mapped, best-effort remotely.
func (s *Service) DeleteSoil(ctx context.Context, soilID string) error {
	backendID, ok, err := s.backendIDFor(soilID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSoil(soilID); err != nil {
		return err
	}

	if ok && s.oracle.EffectiveOnline(ctx) {
		if err := s.gw.DeleteSoil(ctx, backendID); err != nil {
			s.logger.Warn("remote soil delete failed",
				zap.String("soil_id", soilID), zap.Error(err))
		}
	}
	return nil
}

// OfflineMode reports the persisted forced-offline preference.
func (s *Service) OfflineMode() bool { return s.prefs.OfflineMode() }

// SetOfflineMode persists the forced-offline preference.
func (s *Service) SetOfflineMode(offline bool) error { return s.prefs.SetOfflineMode(offline) }

// remoteSoilID resolves the soil ID form a remote call needs. Backend IDs
// pass through; local IDs translate through their mapping. ok is false when
// the soil exists only locally.
func (s *Service) remoteSoilID(soilID string) (string, bool, error) {
	if !soilid.IsLocal(soilID) {
		return soilID, true, nil
	}
	return s.store.BackendID(soilID)
}

// backendIDFor resolves the backend counterpart of an entity ID for
// best-effort remote deletes. ok is false for unmapped local IDs.
func (s *Service) backendIDFor(id string) (string, bool, error) {
	if !soilid.IsLocal(id) {
		return id, true, nil
	}
	return s.store.BackendID(id)
}
