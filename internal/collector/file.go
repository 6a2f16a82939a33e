package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"DivergenceSentinel/internal/model"
)

// FileName returns the file the fetch job writes for symbol, without
// extension: "spy" for daily, "spy_hourly" for hourly.
func FileName(symbol string, hourly bool) string {
	name := strings.ToLower(symbol)
	if hourly {
		name += "_hourly"
	}
	return name
}

// FileSource reads the fetch job's output files from a local directory.
// "{dir}/{symbol}.csv" is preferred, "{dir}/{symbol}.json" is the fallback.
type FileSource struct {
	Dir    string
	Hourly bool
}

func NewFileSource(dir string, hourly bool) *FileSource {
	return &FileSource{Dir: dir, Hourly: hourly}
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) LoadSeries(_ context.Context, symbol string) (model.Series, error) {
	base := filepath.Join(f.Dir, FileName(symbol, f.Hourly))
	for _, ext := range []string{".csv", ".json"} {
		data, err := os.ReadFile(base + ext)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return model.Series{Symbol: symbol}, fmt.Errorf("read %s: %w", base+ext, err)
		}
		return parseFile(bytes.NewReader(data), ext, symbol, base+ext)
	}
	return model.Series{Symbol: symbol}, fmt.Errorf("%s: %w", base, ErrNoData)
}

// parseFile dispatches on extension and logs dropped rows.
func parseFile(r io.Reader, ext, symbol, origin string) (model.Series, error) {
	var (
		s       model.Series
		dropped int
		err     error
	)
	if ext == ".json" {
		s, dropped, err = ParseJSON(r, symbol)
	} else {
		s, dropped, err = ParseCSV(r, symbol)
	}
	if err != nil {
		return model.Series{Symbol: symbol}, fmt.Errorf("parse %s: %w", origin, err)
	}
	if dropped > 0 {
		log.Printf("[WARN] %s: dropped %d malformed rows", origin, dropped)
	}
	return s, nil
}
