package collector

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"DivergenceSentinel/internal/model"

	"github.com/go-resty/resty/v2"
)

// HTTPSource reads the fetch job's output files from a static file host,
// using the same file names as FileSource.
type HTTPSource struct {
	client *resty.Client
	Hourly bool
}

// NewHTTPSource creates a source rooted at baseURL with optional proxy support.
func NewHTTPSource(baseURL, proxyURL string, hourly bool) *HTTPSource {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "text/csv, application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &HTTPSource{client: client, Hourly: hourly}
}

func (h *HTTPSource) Name() string { return "http" }

func (h *HTTPSource) LoadSeries(ctx context.Context, symbol string) (model.Series, error) {
	name := FileName(symbol, h.Hourly)
	for _, ext := range []string{".csv", ".json"} {
		resp, err := h.client.R().SetContext(ctx).Get("/" + name + ext)
		if err != nil {
			return model.Series{Symbol: symbol}, fmt.Errorf("fetch %s%s: %w", name, ext, err)
		}
		if resp.StatusCode() == http.StatusNotFound {
			continue
		}
		if !resp.IsSuccess() {
			return model.Series{Symbol: symbol}, fmt.Errorf("fetch %s%s: status %d", name, ext, resp.StatusCode())
		}
		return parseFile(bytes.NewReader(resp.Body()), ext, symbol, resp.Request.URL)
	}
	return model.Series{Symbol: symbol}, fmt.Errorf("%s: %w", name, ErrNoData)
}
