package workspace

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrRegistryFull = errors.New("too many active sessions, try again later")

// Registry keeps every live workspace in memory, keyed by session ID.
type Registry struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	max        int
	now        func() time.Time
}

// NewRegistry caps live workspaces at max; zero or less means no cap.
func NewRegistry(max int) *Registry {
	return &Registry{
		workspaces: make(map[string]*Workspace),
		max:        max,
		now:        time.Now,
	}
}

func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.workspaces[id]
	if ok {
		ws.touch(r.now())
	}
	return ws, ok
}

// GetOrCreate returns the workspace for id, or a new one under a fresh ID
// when id is unknown. Client-chosen IDs are never adopted. A full registry
// still serves known sessions but refuses new ones with ErrRegistryFull.
func (r *Registry) GetOrCreate(id string) (ws *Workspace, created bool, err error) {
	if ws, ok := r.Get(id); ok {
		return ws, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max > 0 && len(r.workspaces) >= r.max {
		return nil, false, ErrRegistryFull
	}

	ws = New(uuid.NewString())
	ws.touch(r.now())
	r.workspaces[ws.id] = ws

	return ws, true, nil
}

// Sweep drops workspaces idle for longer than timeout. Workspaces with an
// analysis in flight are kept.
func (r *Registry) Sweep(timeout time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, ws := range r.workspaces {
		if ws.idle(now, timeout) {
			delete(r.workspaces, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}
