package connectivity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePinger struct {
	reachable bool
	pings     int
}

func (f *fakePinger) Ping(ctx context.Context) bool {
	f.pings++
	return f.reachable
}

type fakePrefs struct{ offline bool }

func (f *fakePrefs) OfflineMode() bool { return f.offline }

func TestEffectiveOnline(t *testing.T) {
	tests := []struct {
		name      string
		offline   bool
		reachable bool
		want      bool
	}{
		{name: "reachable and not forced offline", reachable: true, want: true},
		{name: "unreachable", reachable: false, want: false},
		{name: "forced offline overrides reachability", offline: true, reachable: true, want: false},
		{name: "forced offline and unreachable", offline: true, reachable: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOracle(&fakePinger{reachable: tt.reachable}, &fakePrefs{offline: tt.offline}, zap.NewNop())
			assert.Equal(t, tt.want, o.EffectiveOnline(context.Background()))
		})
	}
}

func TestForcedOfflineSkipsProbe(t *testing.T) {
	pinger := &fakePinger{reachable: true}
	o := NewOracle(pinger, &fakePrefs{offline: true}, zap.NewNop())

	o.EffectiveOnline(context.Background())
	assert.Zero(t, pinger.pings, "no probe when offline mode is forced")
}
