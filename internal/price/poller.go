package price

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Update is one polling round's result.
type Update struct {
	Prices map[string]float64
	Err    error
}

// Poller refreshes a fixed symbol set on a ticker and reports each round
// through a callback. Successful rounds also land in the cache.
type Poller struct {
	fetcher  *Fetcher
	cache    *Cache
	symbols  []string
	interval time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewPoller creates a poller. cache may be nil when callers only want the
// callback stream.
func NewPoller(f *Fetcher, cache *Cache, symbols []string, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		fetcher:  f,
		cache:    cache,
		symbols:  symbols,
		interval: interval,
		logger:   logger,
	}
}

// Start begins polling. The first round fires immediately, then every
// interval. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context, onUpdate func(Update)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.running = true

	go p.loop(ctx, onUpdate)
}

func (p *Poller) loop(ctx context.Context, onUpdate func(Update)) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, onUpdate)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, onUpdate)
		}
	}
}

func (p *Poller) poll(ctx context.Context, onUpdate func(Update)) {
	prices, err := p.fetcher.GetMany(ctx, p.symbols)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn().Err(err).Msg("price poll failed")
		onUpdate(Update{Err: err})
		return
	}
	if p.cache != nil {
		p.cache.PutAll(prices)
	}
	onUpdate(Update{Prices: prices})
}

// Stop halts polling and waits for the loop to exit. Safe to call twice.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}
