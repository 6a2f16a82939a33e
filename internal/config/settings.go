package config

import (
	"fmt"
	"log"
	"slices"
	"strconv"
	"sync"

	"DivergenceSentinel/internal/calculator"
	"DivergenceSentinel/internal/model"
)

// Settings is the process-wide, user-adjustable analysis configuration.
// Writers go through the setters; every analysis pass reads one Snapshot.
type Settings struct {
	mu        sync.RWMutex
	current   model.AnalysisConfig
	lookback  []int
	statePath string
}

// NewSettings validates a and wraps it.
func NewSettings(a Analysis) (*Settings, error) {
	snap, err := a.Snapshot()
	if err != nil {
		return nil, err
	}
	return &Settings{current: snap, lookback: slices.Clone(a.LookbackChoices)}, nil
}

// Persist restores settings saved at path, if any, and saves every later
// change there. Saved values that no longer validate are ignored.
func (s *Settings) Persist(path string) error {
	saved, ok, err := LoadState(path)
	if err != nil {
		return fmt.Errorf("load settings state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.statePath = path
	if ok {
		if restored, err := s.validate(saved); err != nil {
			log.Printf("[WARN] ignoring saved settings in %s: %v", path, err)
		} else {
			s.current = restored
			log.Printf("[INFO] restored settings from %s: lookback=%d policy=%s window=%d", path, restored.Lookback, restored.Policy, restored.Window)
		}
	}
	return s.save(s.current)
}

// validate checks c against the lookback choices and returns it with the
// policy in canonical form.
func (s *Settings) validate(c model.AnalysisConfig) (model.AnalysisConfig, error) {
	if !slices.Contains(s.lookback, c.Lookback) {
		return c, fmt.Errorf("lookback %d not in %v", c.Lookback, s.lookback)
	}
	p, err := calculator.ParsePolicy(string(c.Policy))
	if err != nil {
		return c, err
	}
	c.Policy = p
	if c.Window < 0 {
		return c, fmt.Errorf("window %d < 0", c.Window)
	}
	return c, nil
}

// save writes c when persistence is enabled. Callers hold s.mu and
// assign c to s.current only after save succeeds.
func (s *Settings) save(c model.AnalysisConfig) error {
	if s.statePath == "" {
		return nil
	}
	if err := SaveState(s.statePath, c); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// apply saves next and makes it current; on failure the settings are unchanged.
func (s *Settings) apply(next model.AnalysisConfig) error {
	if err := s.save(next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// Snapshot returns the current settings by value.
func (s *Settings) Snapshot() model.AnalysisConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LookbackChoices returns the enumerated lookback lengths.
func (s *Settings) LookbackChoices() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lookback)
}

func (s *Settings) SetLookback(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.lookback, n) {
		return fmt.Errorf("lookback %d not in %v", n, s.lookback)
	}
	next := s.current
	next.Lookback = n
	return s.apply(next)
}

func (s *Settings) SetPolicy(name string) error {
	p, err := calculator.ParsePolicy(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	next.Policy = p
	return s.apply(next)
}

// SetWindow accepts "auto" or a non-negative integer.
func (s *Settings) SetWindow(v string) error {
	n, err := ParseWindow(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.current
	next.Window = n
	return s.apply(next)
}

// Override applies per-request values on top of the current snapshot
// without touching the shared settings. Empty strings keep the current value.
func (s *Settings) Override(lookback, policy, window string) (model.AnalysisConfig, error) {
	snap := s.Snapshot()
	if lookback != "" {
		n, err := strconv.Atoi(lookback)
		if err != nil {
			return snap, fmt.Errorf("invalid lookback %q", lookback)
		}
		if !slices.Contains(s.LookbackChoices(), n) {
			return snap, fmt.Errorf("lookback %d not in %v", n, s.LookbackChoices())
		}
		snap.Lookback = n
	}
	if policy != "" {
		p, err := calculator.ParsePolicy(policy)
		if err != nil {
			return snap, err
		}
		snap.Policy = p
	}
	if window != "" {
		n, err := ParseWindow(window)
		if err != nil {
			return snap, err
		}
		snap.Window = n
	}
	return snap, nil
}
