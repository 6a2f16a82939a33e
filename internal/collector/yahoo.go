package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"DivergenceSentinel/internal/model"

	"github.com/go-resty/resty/v2"
)

// Fetcher retrieves OHLCV bars from a market-data provider.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol, interval, rng string) ([]model.OHLCV, error)
	Name() string
}

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	client    *resty.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return NewYahooFetcherWithBaseURL("https://query1.finance.yahoo.com/v8/finance/chart", proxyURL)
}

func NewYahooFetcherWithBaseURL(baseURL, proxyURL string) *YahooFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeaders(map[string]string{
			"Accept":     "application/json",
			"User-Agent": "Mozilla/5.0",
		})
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		client: client,
		SymbolMap: map[string]string{
			"BTC": "BTC-USD",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	return *vals[i], true
}

// FetchBars returns bars ascending by time, located in the exchange time
// zone. Bars without a close are skipped.
func (f *YahooFetcher) FetchBars(ctx context.Context, symbol, interval, rng string) ([]model.OHLCV, error) {
	var chart yahooChart
	resp, err := f.client.R().
		SetContext(ctx).
		SetPathParam("ticker", f.yahooSymbol(symbol)).
		SetQueryParams(map[string]string{
			"interval": interval,
			"range":    rng,
		}).
		SetResult(&chart).
		SetError(&chart).
		Get("/{ticker}")
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	loc := time.UTC
	if name := result.Meta.ExchangeTimezoneName; name != "" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}

	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c, ok := at(quote.Close, i)
		if !ok {
			continue // null bars (holidays etc.)
		}
		o, _ := at(quote.Open, i)
		h, _ := at(quote.High, i)
		l, _ := at(quote.Low, i)
		v, _ := at(quote.Volume, i)
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).In(loc),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
