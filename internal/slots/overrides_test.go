package slots

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrides_Seed(t *testing.T) {
	o := NewOverrides()

	assert.True(t, o.Seed(0, t0))
	assert.Equal(t, map[int]time.Time{1: t0.Add(UnlockAfter)}, o.Snapshot())

	assert.False(t, o.Seed(SlotCount-1, t0), "last slot has no successor")
	assert.False(t, o.Seed(-1, t0))
	assert.Equal(t, 1, o.Len())
}

func TestOverrides_ClearAfter(t *testing.T) {
	o := NewOverrides()
	o.Set(1, t0)
	o.Set(2, t0)
	o.Set(3, t0)

	o.ClearAfter(1)

	assert.Equal(t, map[int]time.Time{1: t0}, o.Snapshot())
}

func TestOverrides_Prune(t *testing.T) {
	o := NewOverrides()
	o.Set(1, t0.Add(time.Minute))
	o.Set(2, t0.Add(2*time.Minute))

	assert.Equal(t, 0, o.Prune(t0))
	assert.Equal(t, 1, o.Prune(t0.Add(time.Minute)), "an override reaching zero is dropped")
	assert.Equal(t, 1, o.Len())
}

func TestOverrides_JSON(t *testing.T) {
	o := NewOverrides()
	o.Set(2, t0)

	data, err := json.Marshal(o)
	require.NoError(t, err)

	restored := NewOverrides()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.True(t, restored.Snapshot()[2].Equal(t0))

	require.NoError(t, json.Unmarshal([]byte(`{"7":"2025-03-14T09:00:00Z"}`), restored))
	assert.Zero(t, restored.Len(), "out of range indexes are discarded")
}

func TestOverrides_SnapshotIsCopy(t *testing.T) {
	o := NewOverrides()
	o.Set(1, t0)

	snap := o.Snapshot()
	delete(snap, 1)

	assert.Equal(t, 1, o.Len())
}
