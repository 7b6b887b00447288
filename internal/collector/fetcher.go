package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"StockMCP/internal/model"
)

// Fetcher defines the interface for fetching market data.
//
//go:generate mockgen -destination=mocks/mock_fetcher.go -package=mocks -source=fetcher.go Fetcher
type Fetcher interface {
	// FetchDailyBars returns daily bars in [start, end), oldest first.
	// An empty slice with a nil error means no trading days in the window.
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	FetchSnapshot(ctx context.Context, symbol string) (*model.SnapshotInfo, error)
	Name() string
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// nonZeroPtr is for upstream structs that encode an absent number as zero.
func nonZeroPtr(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
