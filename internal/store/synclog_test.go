package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudtree/fieldsync/pkg/types"
)

func TestSyncLogAppendAndHistory(t *testing.T) {
	s := setupStore(t)

	require.NoError(t, s.AppendSyncLog(types.OutcomeSuccess, "synced 2 items", 2))
	require.NoError(t, s.AppendSyncLog(types.OutcomePartial, "synced 1 item with 1 error", 1))
	require.NoError(t, s.AppendSyncLog(types.OutcomeError, "sync failed", 0))

	history, err := s.SyncHistory(10)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest first; the error entry was appended last.
	assert.Equal(t, types.OutcomeError, history[0].Status)
	assert.Equal(t, "sync failed", history[0].Message)
	assert.Equal(t, 0, history[0].ItemsSynced)
	assert.Equal(t, types.OutcomeSuccess, history[2].Status)
	assert.Equal(t, 2, history[2].ItemsSynced)
	assert.False(t, history[0].Timestamp.IsZero())
}

func TestSyncHistoryLimit(t *testing.T) {
	s := setupStore(t)

	for i := 0; i < 15; i++ {
		require.NoError(t, s.AppendSyncLog(types.OutcomeSuccess, fmt.Sprintf("pass %d", i), i))
	}

	history, err := s.SyncHistory(5)
	require.NoError(t, err)
	assert.Len(t, history, 5)

	// Non-positive limits fall back to the default of 10.
	history, err = s.SyncHistory(0)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}
