package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sync"

	"DivergenceSentinel/internal/notifier"
	"DivergenceSentinel/internal/report"
	"DivergenceSentinel/internal/scheduler"
	"DivergenceSentinel/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	configPath *string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API, cron jobs and Telegram bot" }
func (*serveCmd) Usage() string {
	return "serve:\n  Run the HTTP API, scheduled fetch/report jobs and Telegram commands.\n"
}
func (*serveCmd) SetFlags(*flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Println("[INFO] DivergenceSentinel starting...")
	a, err := loadApp(*c.configPath)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	var n notifier.Notifier = notifier.NoopNotifier{}
	var tn *notifier.TelegramNotifier
	if a.cfg.Telegram.BotToken != "" && a.cfg.Telegram.ChatID != "" {
		tn, err = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
		if err != nil {
			log.Printf("[WARN] telegram disabled: %v", err)
		} else {
			n = tn
		}
	}

	sched := scheduler.NewScheduler(ctx, a.analyzer, a.settings, n)
	sched.Fetch = a.fetchJob()
	sched.Cache = a.collector
	sched.Symbols = a.cfg.Symbols()
	if err := sched.RegisterAll(a.cfg.Schedule.FetchCron, a.cfg.Schedule.ReportCron); err != nil {
		log.Printf("[FATAL] register cron tasks: %v", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	var wg sync.WaitGroup
	if tn != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tn.StartPolling(ctx, sched.HandleCommand)
		}()
		log.Println("[INFO] telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing report task now")
		go sched.RunReportNow()
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(a.analyzer, a.settings, a.cfg.Data.Dir)
	if err := srv.Run(ctx, a.cfg.Server.Addr); err != nil {
		log.Printf("[ERROR] %v", err)
		return subcommands.ExitFailure
	}
	wg.Wait()
	log.Println("[INFO] DivergenceSentinel stopped")
	return subcommands.ExitSuccess
}

type analyzeCmd struct {
	configPath *string
	lookback   string
	policy     string
	window     string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "evaluate every configured pair and print a table" }
func (*analyzeCmd) Usage() string {
	return "analyze [-lookback N] [-policy recent|highest|current] [-window N|auto]:\n  Evaluate all pairs once.\n"
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lookback, "lookback", "", "lookback length (one of analysis.lookback_choices)")
	f.StringVar(&c.policy, "policy", "", "pivot policy: recent, highest or current")
	f.StringVar(&c.window, "window", "", "neighbor window or auto")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp(*c.configPath)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	cfg, err := a.settings.Override(c.lookback, c.policy, c.window)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return subcommands.ExitUsageError
	}
	reports := a.analyzer.Run(ctx, cfg)
	if err := report.RenderTable(os.Stdout, reports); err != nil {
		log.Printf("[ERROR] render table: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type fetchCmd struct {
	configPath *string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download daily and hourly bars for every symbol" }
func (*fetchCmd) Usage() string {
	return "fetch:\n  Download bars from Yahoo Finance into data.dir (and the SQLite store when configured).\n"
}
func (*fetchCmd) SetFlags(*flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp(*c.configPath)
	if err != nil {
		log.Printf("[FATAL] %v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.fetchJob().Run(ctx, a.cfg.Symbols()); err != nil {
		log.Printf("[ERROR] fetch: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
