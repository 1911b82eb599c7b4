package jobs

import (
	"context"
	"log"
	"time"
)

// Refresher reloads a ranking.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// TrendingRefresher periodically rebuilds the trending board.
type TrendingRefresher struct {
	board    Refresher
	interval time.Duration
	timeout  time.Duration
}

// NewTrendingRefresher creates a refresher for board.
func NewTrendingRefresher(board Refresher, interval time.Duration) *TrendingRefresher {
	return &TrendingRefresher{
		board:    board,
		interval: interval,
		timeout:  30 * time.Second,
	}
}

// Start begins the background refresh loop.
func (r *TrendingRefresher) Start(ctx context.Context) {
	log.Printf("Trending refresher started (interval: %v)", r.interval)

	// Run immediately on start
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Trending refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *TrendingRefresher) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.board.Refresh(ctx); err != nil {
		log.Printf("Trending refresher: failed to refresh: %v", err)
	}
}
