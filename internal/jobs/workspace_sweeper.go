package jobs

import (
	"context"
	"log"
	"time"
)

// Sweeper drops idle state.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// WorkspaceSweeper periodically expires workspaces of tabs that went away.
type WorkspaceSweeper struct {
	spaces   Sweeper
	interval time.Duration
}

// NewWorkspaceSweeper creates a sweeper.
func NewWorkspaceSweeper(spaces Sweeper, interval time.Duration) *WorkspaceSweeper {
	return &WorkspaceSweeper{spaces: spaces, interval: interval}
}

// Start begins the sweep loop.
func (s *WorkspaceSweeper) Start(ctx context.Context) {
	log.Printf("Workspace sweeper started (interval: %v)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Workspace sweeper stopped")
			return
		case <-ticker.C:
			if n := s.spaces.Sweep(ctx); n > 0 {
				log.Printf("Workspace sweeper: expired %d workspaces", n)
			}
		}
	}
}
