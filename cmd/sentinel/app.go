package main

import (
	"fmt"
	"log"

	"DivergenceSentinel/internal/collector"
	"DivergenceSentinel/internal/config"
	"DivergenceSentinel/internal/store"
	"DivergenceSentinel/internal/strategy"
)

// app holds the components every subcommand shares.
type app struct {
	cfg       *config.Config
	settings  *config.Settings
	store     store.Store
	collector *collector.Collector
	analyzer  *strategy.Analyzer
}

func loadApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	settings, err := config.NewSettings(cfg.Analysis)
	if err != nil {
		return nil, err
	}
	if cfg.Analysis.StateFile != "" {
		if err := settings.Persist(cfg.Analysis.StateFile); err != nil {
			log.Printf("[WARN] settings will not persist: %v", err)
		}
	}

	a := &app{cfg: cfg, settings: settings, store: store.NewNoopStore()}

	hourly := cfg.Data.Interval == config.IntervalHourly
	var src collector.Source
	if cfg.Data.BaseURL != "" {
		src = collector.NewHTTPSource(cfg.Data.BaseURL, cfg.Proxy, hourly)
	} else {
		src = collector.NewFileSource(cfg.Data.Dir, hourly)
	}

	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
		} else {
			a.store = ss
			// the store only holds daily closes
			if !hourly {
				src = collector.NewFallbackSource(src, ss)
			}
		}
	}
	log.Printf("[INFO] data source: %s (%s)", src.Name(), cfg.Data.Interval)

	a.collector = collector.NewCollector(src, cfg.Data.CacheTTL)
	a.analyzer = strategy.NewAnalyzer(a.collector, cfg.Pairs)
	return a, nil
}

func (a *app) fetchJob() *collector.FetchJob {
	return collector.NewFetchJob(collector.NewYahooFetcher(a.cfg.Proxy), a.cfg.Data.Dir, a.store)
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		log.Printf("[WARN] close store: %v", err)
	}
}
