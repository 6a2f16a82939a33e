package collector

import (
	"context"
	"fmt"
	"log"
	"os"

	"DivergenceSentinel/internal/store"

	"golang.org/x/sync/errgroup"
)

// Yahoo ranges used by the fetch job.
const (
	dailyInterval  = "1d"
	dailyRange     = "max"
	hourlyInterval = "1h"
	hourlyRange    = "1mo"
)

// FetchJob downloads daily and hourly bars for every symbol and writes the
// CSV files the sources read. Daily closes are also saved to Store.
type FetchJob struct {
	Fetcher Fetcher
	Dir     string
	Store   store.Store
	Workers int
}

func NewFetchJob(f Fetcher, dir string, st store.Store) *FetchJob {
	if st == nil {
		st = store.NewNoopStore()
	}
	return &FetchJob{Fetcher: f, Dir: dir, Store: st, Workers: 2}
}

// Run fetches all symbols. An empty provider response only logs a warning;
// any other error stops the job and is returned.
func (j *FetchJob) Run(ctx context.Context, symbols []string) error {
	if err := os.MkdirAll(j.Dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(j.Workers, 1))
	for _, sym := range symbols {
		g.Go(func() error {
			log.Printf("[INFO] fetching %s from %s", sym, j.Fetcher.Name())
			if err := j.fetchHourly(gctx, sym); err != nil {
				return fmt.Errorf("fetch %s hourly: %w", sym, err)
			}
			if err := j.fetchDaily(gctx, sym); err != nil {
				return fmt.Errorf("fetch %s daily: %w", sym, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("[INFO] all %d symbols fetched", len(symbols))
	return nil
}

func (j *FetchJob) fetchHourly(ctx context.Context, symbol string) error {
	bars, err := j.Fetcher.FetchBars(ctx, symbol, hourlyInterval, hourlyRange)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		log.Printf("[WARN] no hourly data returned for %s", symbol)
		return nil
	}
	path, err := WriteBarsCSV(j.Dir, symbol, bars, true)
	if err != nil {
		return err
	}
	log.Printf("[INFO] %s hourly: %d bars -> %s", symbol, len(bars), path)
	return nil
}

func (j *FetchJob) fetchDaily(ctx context.Context, symbol string) error {
	bars, err := j.Fetcher.FetchBars(ctx, symbol, dailyInterval, dailyRange)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		log.Printf("[WARN] no daily data returned for %s", symbol)
		return nil
	}
	path, err := WriteBarsCSV(j.Dir, symbol, bars, false)
	if err != nil {
		return err
	}
	if err := j.Store.SaveSeries(ctx, DailyCloses(symbol, bars)); err != nil {
		return fmt.Errorf("store closes: %w", err)
	}
	log.Printf("[INFO] %s daily: %d bars -> %s", symbol, len(bars), path)
	return nil
}
