package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, r *Registry) *Workspace {
	t.Helper()
	ws, created, err := r.GetOrCreate("")
	require.NoError(t, err)
	require.True(t, created)
	return ws
}

func TestGetOrCreateIssuesFreshID(t *testing.T) {
	r := NewRegistry(0)

	ws := mustCreate(t, r)
	assert.NotEmpty(t, ws.ID())

	again, created, err := r.GetOrCreate(ws.ID())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, ws, again)
	assert.Equal(t, 1, r.Len())
}

func TestGetOrCreateIgnoresUnknownClientID(t *testing.T) {
	r := NewRegistry(0)

	ws, created, err := r.GetOrCreate("client-chosen")
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotEqual(t, "client-chosen", ws.ID())
	_, ok := r.Get("client-chosen")
	assert.False(t, ok)
}

func TestGetOrCreateRespectsCap(t *testing.T) {
	r := NewRegistry(2)
	first := mustCreate(t, r)
	mustCreate(t, r)

	ws, created, err := r.GetOrCreate("")
	assert.ErrorIs(t, err, ErrRegistryFull)
	assert.Nil(t, ws)
	assert.False(t, created)
	assert.Equal(t, 2, r.Len())

	// Known sessions keep working when full.
	again, _, err := r.GetOrCreate(first.ID())
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestSweepFreesCapacity(t *testing.T) {
	r := NewRegistry(1)
	now := time.Now()
	r.now = func() time.Time { return now }
	mustCreate(t, r)

	now = now.Add(time.Hour)
	require.Equal(t, 1, r.Sweep(30*time.Minute))

	mustCreate(t, r)
}

func TestWorkspacesAreIsolated(t *testing.T) {
	r := NewRegistry(0)
	a := mustCreate(t, r)
	b := mustCreate(t, r)

	require.NoError(t, a.SetJobRole("Backend Engineer"))

	assert.Empty(t, b.Snapshot().JobRole)
}

func TestSweepEvictsIdleWorkspaces(t *testing.T) {
	r := NewRegistry(0)
	now := time.Now()
	r.now = func() time.Time { return now }

	idle := mustCreate(t, r)
	busy := readyWorkspace(t)
	busy.touch(now)
	r.workspaces[busy.ID()] = busy
	_, err := busy.BeginSubmit()
	require.NoError(t, err)

	now = now.Add(time.Hour)
	fresh := mustCreate(t, r)

	removed := r.Sweep(30 * time.Minute)

	assert.Equal(t, 1, removed)
	_, ok := r.Get(idle.ID())
	assert.False(t, ok)
	_, ok = r.Get(busy.ID())
	assert.True(t, ok, "submitting workspaces survive")
	_, ok = r.Get(fresh.ID())
	assert.True(t, ok)
}
