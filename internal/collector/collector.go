package collector

import (
	"context"
	"log"
	"sync"
	"time"

	"DivergenceSentinel/internal/model"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds concurrent symbol loads.
const defaultWorkers = 4

// Collector loads the series of many symbols from one Source. Each symbol is
// loaded independently: a failure yields an empty series for that symbol and
// never affects the others. Successful loads are cached for the TTL.
type Collector struct {
	Source  Source
	Workers int
	cache   *cache.Cache
}

// NewCollector creates a Collector. ttl <= 0 disables caching.
func NewCollector(src Source, ttl time.Duration) *Collector {
	c := &Collector{Source: src, Workers: defaultWorkers}
	if ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

// Load returns the series for symbol, or an empty series when it cannot be loaded.
func (c *Collector) Load(ctx context.Context, symbol string) model.Series {
	key := c.Source.Name() + ":" + symbol
	if c.cache != nil {
		if v, found := c.cache.Get(key); found {
			return v.(model.Series)
		}
	}

	s, err := c.Source.LoadSeries(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] load %s from %s: %v", symbol, c.Source.Name(), err)
		return model.Series{Symbol: symbol}
	}
	if s.Symbol == "" {
		s.Symbol = symbol
	}
	if c.cache != nil && !s.Empty() {
		c.cache.Set(key, s, cache.DefaultExpiration)
	}
	return s
}

// LoadAll loads every symbol concurrently and returns a settled snapshot.
func (c *Collector) LoadAll(ctx context.Context, symbols []string) map[string]model.Series {
	out := make(map[string]model.Series, len(symbols))
	var mu sync.Mutex

	workers := c.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, sym := range symbols {
		g.Go(func() error {
			s := c.Load(gctx, sym)
			mu.Lock()
			out[sym] = s
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	loaded := 0
	for _, s := range out {
		if !s.Empty() {
			loaded++
		}
	}
	log.Printf("[INFO] loaded %d/%d symbols from %s", loaded, len(symbols), c.Source.Name())
	return out
}

// Invalidate drops every cached series, e.g. after the fetch job ran.
func (c *Collector) Invalidate() {
	if c.cache != nil {
		c.cache.Flush()
	}
}
