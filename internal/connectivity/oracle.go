// Package connectivity decides whether the data service may take the online
// path: the backend must answer a bounded probe and the user must not have
// forced offline mode.
package connectivity

import (
	"context"

	"go.uber.org/zap"
)

// Pinger probes backend reachability. Satisfied by the gateway client.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// Preferences exposes the persisted forced-offline switch.
type Preferences interface {
	OfflineMode() bool
}

// Oracle combines reachability with the user's offline preference.
type Oracle struct {
	pinger Pinger
	prefs  Preferences
	logger *zap.Logger
}

// NewOracle creates a connectivity oracle.
func NewOracle(pinger Pinger, prefs Preferences, logger *zap.Logger) *Oracle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Oracle{pinger: pinger, prefs: prefs, logger: logger.Named("connectivity")}
}

// Reachable reports whether the backend answered the probe.
func (o *Oracle) Reachable(ctx context.Context) bool {
	return o.pinger.Ping(ctx)
}

// EffectiveOnline reports whether online paths may be taken: not forced
// offline, and reachable. The probe is skipped entirely when offline mode
// is forced.
func (o *Oracle) EffectiveOnline(ctx context.Context) bool {
	if o.prefs.OfflineMode() {
		o.logger.Debug("offline mode forced by preference")
		return false
	}
	return o.pinger.Ping(ctx)
}
