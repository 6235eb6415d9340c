package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudtree/fieldsync/pkg/types"
)

func TestMapIDsIdempotent(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.MapIDs("L_S00001", "S0001", types.EntitySoil))
	require.NoError(t, s.MapIDs("L_S00001", "S0001", types.EntitySoil), "identical re-map is a no-op")

	mappings, err := s.Mappings(types.EntitySoil)
	require.NoError(t, err)
	require.Len(t, mappings, 1, "exactly one mapping row after duplicate map")

	backendID, ok, err := s.BackendID("L_S00001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "S0001", backendID)

	localID, ok, err := s.LocalID("S0001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "L_S00001", localID)
}

func TestMappingLookupsMissAsNotFound(t *testing.T) {
	s := setupStore(t)

	_, ok, err := s.BackendID("L_S00001")
	require.NoError(t, err, "a missing mapping is not an error")
	assert.False(t, ok)

	_, ok, err = s.LocalID("S0042")
	require.NoError(t, err)
	assert.False(t, ok)

	synced, err := s.IsSynced("L_S00001")
	require.NoError(t, err)
	assert.False(t, synced)
}

func TestIsSynced(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.MapIDs("L_P00003", "P0017", types.EntityParameter))

	synced, err := s.IsSynced("L_P00003")
	require.NoError(t, err)
	assert.True(t, synced)
}

func TestMapIDsLastWriteWins(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.MapIDs("L_S00001", "S0001", types.EntitySoil))
	// Remapping either side should not occur in correct operation; when it
	// does, the newest pair replaces the old row deterministically.
	require.NoError(t, s.MapIDs("L_S00001", "S0002", types.EntitySoil))

	backendID, ok, err := s.BackendID("L_S00001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "S0002", backendID)

	_, ok, err = s.LocalID("S0001")
	require.NoError(t, err)
	assert.False(t, ok, "the superseded backend id no longer resolves")
}

func TestMapIDsValidation(t *testing.T) {
	s := setupStore(t)

	assert.ErrorIs(t, s.MapIDs("", "S0001", types.EntitySoil), types.ErrInvalidID)
	assert.ErrorIs(t, s.MapIDs("L_S00001", "", types.EntitySoil), types.ErrInvalidID)
	assert.ErrorIs(t, s.MapIDs("L_S00001", "S0001", types.EntityType("plot")), types.ErrInvalidEntityType)
}

func TestMappingsFilterByEntityType(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.MapIDs("L_S00001", "S0001", types.EntitySoil))
	require.NoError(t, s.MapIDs("L_P00001", "P0001", types.EntityParameter))
	require.NoError(t, s.MapIDs("L_P00002", "P0002", types.EntityParameter))

	all, err := s.Mappings("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	params, err := s.Mappings(types.EntityParameter)
	require.NoError(t, err)
	assert.Len(t, params, 2)
	for _, m := range params {
		assert.Equal(t, types.EntityParameter, m.EntityType)
		assert.False(t, m.SyncedAt.IsZero())
	}
}
