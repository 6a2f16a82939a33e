package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"DivergenceSentinel/internal/calculator"
	"DivergenceSentinel/internal/config"
	"DivergenceSentinel/internal/notifier"
	"DivergenceSentinel/internal/strategy"

	"github.com/robfig/cron/v3"
)

// FetchRunner refreshes the input data for a set of symbols.
type FetchRunner interface {
	Run(ctx context.Context, symbols []string) error
}

// Invalidator drops cached series after new data arrives.
type Invalidator interface {
	Invalidate()
}

// Scheduler manages the cron tasks and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *strategy.Analyzer
	Settings *config.Settings
	Notifier notifier.Notifier
	Fetch    FetchRunner // nil disables the fetch task
	Cache    Invalidator
	Symbols  []string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *strategy.Analyzer, st *config.Settings, n notifier.Notifier) *Scheduler {
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Settings: st,
		Notifier: n,
		Symbols:  an.Symbols(),
		Ctx:      ctx,
	}
}

// RegisterAll registers the fetch and report tasks. An empty cron expression skips the task.
func (s *Scheduler) RegisterAll(fetchCron, reportCron string) error {
	if fetchCron != "" && s.Fetch != nil {
		if _, err := s.Cron.AddFunc(fetchCron, s.fetchTask); err != nil {
			return fmt.Errorf("register fetch task: %w", err)
		}
	}
	if reportCron != "" {
		if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
			return fmt.Errorf("register report task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportNow executes the report task immediately (RUN_ON_START).
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) fetchTask() {
	log.Println("[INFO] running fetch task")
	if err := s.Fetch.Run(s.Ctx, s.Symbols); err != nil {
		log.Printf("[ERROR] fetch task: %v", err)
		s.trySend(fmt.Sprintf("❌ Data fetch failed: %v", err))
		return
	}
	if s.Cache != nil {
		s.Cache.Invalidate()
	}
}

func (s *Scheduler) reportTask() {
	log.Println("[INFO] running report task")
	reports := s.Analyzer.Run(s.Ctx, s.Settings.Snapshot())
	s.trySend(notifier.FormatPairReports(reports))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	name := fields[0]
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "/signal":
		reports := s.Analyzer.Run(s.Ctx, s.Settings.Snapshot())
		return notifier.FormatPairReports(reports)
	case "/config":
		return s.formatConfig()
	case "/lookback":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Sprintf("Usage: /lookback N (one of %v)", s.Settings.LookbackChoices())
		}
		if err := s.Settings.SetLookback(n); err != nil {
			return "❌ " + err.Error()
		}
		return "✅ Lookback updated\n\n" + s.formatConfig()
	case "/policy":
		if arg == "" {
			return "Usage: /policy recent|highest|current"
		}
		if err := s.Settings.SetPolicy(arg); err != nil {
			return "❌ " + err.Error()
		}
		return "✅ Policy updated\n\n" + s.formatConfig()
	case "/window":
		if arg == "" {
			return "Usage: /window N|auto"
		}
		if err := s.Settings.SetWindow(arg); err != nil {
			return "❌ " + err.Error()
		}
		return "✅ Window updated\n\n" + s.formatConfig()
	case "/help", "/start":
		return notifier.FormatHelp()
	default:
		return "Unknown command.\n\n" + notifier.FormatHelp()
	}
}

func (s *Scheduler) formatConfig() string {
	snap := s.Settings.Snapshot()
	return notifier.FormatConfig(snap, calculator.EffectiveWindow(snap.Lookback, snap.Window), s.Settings.LookbackChoices())
}

func (s *Scheduler) trySend(text string) {
	if err := notifier.SendWithRetry(s.Ctx, s.Notifier, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
