package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"DivergenceSentinel/internal/model"
)

// savedSettings is the on-disk form of the chat-adjusted settings.
type savedSettings struct {
	model.AnalysisConfig
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadState reads saved settings. ok is false if the file doesn't exist.
func LoadState(filePath string) (cfg model.AnalysisConfig, ok bool, err error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.AnalysisConfig{}, false, nil
		}
		return model.AnalysisConfig{}, false, err
	}
	var saved savedSettings
	if err := json.Unmarshal(data, &saved); err != nil {
		return model.AnalysisConfig{}, false, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return saved.AnalysisConfig, true, nil
}

// SaveState writes settings to a JSON file through a temp file and rename.
func SaveState(filePath string, cfg model.AnalysisConfig) error {
	data, err := json.MarshalIndent(savedSettings{AnalysisConfig: cfg, UpdatedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
