package workspace

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Janitor interface {
	Start(ctx context.Context)
	Stop()
}

type janitor struct {
	registry    *Registry
	idleTimeout time.Duration
	interval    time.Duration
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// NewJanitor evicts workspaces idle longer than idleTimeout, checking every
// interval.
func NewJanitor(registry *Registry, idleTimeout, interval time.Duration) Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &janitor{
		registry:    registry,
		idleTimeout: idleTimeout,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Janitor.
func (j *janitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go j.sweepIdle(ctx)

	log.Info().
		Dur("idle_timeout", j.idleTimeout).
		Dur("interval", j.interval).
		Msg("🧹 Workspace janitor started")
}

// Stop implements Janitor.
func (j *janitor) Stop() {
	j.stopOnce.Do(func() {
		log.Info().Msg("🛑 Stopping workspace janitor...")
		close(j.stopChan)
		j.wg.Wait()
		log.Info().Msg("✅ Workspace janitor stopped")
	})
}

func (j *janitor) sweepIdle(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := j.registry.Sweep(j.idleTimeout); removed > 0 {
				log.Debug().
					Int("removed", removed).
					Int("live", j.registry.Len()).
					Msg("🧹 Evicted idle workspaces")
			}
		}
	}
}
