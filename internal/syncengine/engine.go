// Package syncengine reconciles the local store with the backend: pending
// local rows are pushed up, the authoritative remote data set is pulled down,
// and the ID mapping table records which local row corresponds to which
// backend entity. Passes are idempotent; running one twice in a row changes
// nothing the second time.
package syncengine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/internal/gateway"
	"github.com/cloudtree/fieldsync/internal/store"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// Gateway is the slice of the backend client a sync pass consumes.
type Gateway interface {
	Soils(ctx context.Context) ([]types.Soil, error)
	Parameters(ctx context.Context, soilID string) ([]types.Parameter, error)
	CreateSoil(ctx context.Context, req types.CreateSoilRequest) (gateway.CreatedIDs, error)
	AddParameter(ctx context.Context, req types.AddParameterRequest) (gateway.CreatedIDs, error)
}

// Engine runs sync passes against the store and the backend. The mutex
// single-flights passes: a push triggered while a full sync is running waits
// its turn instead of interleaving, which keeps append-order ID recovery
// sound.
type Engine struct {
	gate   chan struct{}
	store  *store.Store
	gw     Gateway
	logger *zap.Logger
}

// New creates a sync engine.
func New(st *store.Store, gw Gateway, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gate := make(chan struct{}, 1)
	gate <- struct{}{}
	return &Engine{gate: gate, store: st, gw: gw, logger: logger.Named("syncengine")}
}

// acquire takes the single-flight slot, honoring context cancellation while
// waiting.
func (e *Engine) acquire(ctx context.Context) error {
	select {
	case <-e.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) release() { e.gate <- struct{}{} }

// passLogger returns a logger carrying a fresh pass ID so the log lines of
// one pass can be correlated. UUIDv7 keeps pass IDs time-ordered.
func (e *Engine) passLogger(direction string) *zap.Logger {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return e.logger.With(zap.String("pass_id", id.String()), zap.String("direction", direction))
}

// FullSync pushes pending local changes, then pulls the remote data set.
// Both phases always run; a failed push does not block the pull. The merged
// result reports success only when both phases fully succeeded, and is
// appended to the sync log as its own combined entry alongside the two
// per-phase entries.
func (e *Engine) FullSync(ctx context.Context) types.SyncResult {
	if err := e.acquire(ctx); err != nil {
		return types.SyncResult{Message: "sync canceled", Errors: []string{err.Error()}}
	}
	defer e.release()

	logger := e.passLogger("full")
	result := e.pushLocked(ctx)
	result.Absorb(e.pullLocked(ctx))
	result.Message = fmt.Sprintf("full sync: %d items reconciled", result.ItemsSynced)
	e.logPass(logger, result)
	return result
}

// SyncToServer pushes all pending local rows to the backend.
func (e *Engine) SyncToServer(ctx context.Context) types.SyncResult {
	if err := e.acquire(ctx); err != nil {
		return types.SyncResult{Message: "sync canceled", Errors: []string{err.Error()}}
	}
	defer e.release()
	return e.pushLocked(ctx)
}

// SyncFromServer pulls the remote data set into the local store.
func (e *Engine) SyncFromServer(ctx context.Context) types.SyncResult {
	if err := e.acquire(ctx); err != nil {
		return types.SyncResult{Message: "sync canceled", Errors: []string{err.Error()}}
	}
	defer e.release()
	return e.pullLocked(ctx)
}

// HasPendingChanges reports whether any local rows still await a push.
func (e *Engine) HasPendingChanges() (bool, error) {
	count, err := e.store.PendingCount()
	if err != nil {
		return false, err
	}
	return count.Total() > 0, nil
}

// PendingCount reports how many local rows still await a push.
func (e *Engine) PendingCount() (types.PendingCount, error) {
	return e.store.PendingCount()
}

// logPass appends the pass outcome to the audit log. A failed append is only
// logged; it must not turn a successful sync into a failure.
func (e *Engine) logPass(logger *zap.Logger, result types.SyncResult) {
	if err := e.store.AppendSyncLog(result.Outcome(), result.Message, result.ItemsSynced); err != nil {
		logger.Warn("sync log append failed", zap.Error(err))
	}
	logger.Info("sync pass finished",
		zap.Bool("success", result.Success),
		zap.Int("items_synced", result.ItemsSynced),
		zap.Int("errors", len(result.Errors)))
}
