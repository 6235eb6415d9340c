package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfflineModeDefaultsOff(t *testing.T) {
	p, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, p.OfflineMode())
}

func TestOfflineModeRoundTrip(t *testing.T) {
	dir := t.TempDir()

	p, err := Load(dir)
	require.NoError(t, err)
	require.NoError(t, p.SetOfflineMode(true))
	assert.True(t, p.OfflineMode())

	// A fresh load from the same directory sees the persisted value.
	p2, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, p2.OfflineMode())

	require.NoError(t, p2.SetOfflineMode(false))
	p3, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, p3.OfflineMode())
}
