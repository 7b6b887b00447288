package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockMCP/internal/calculator"
	"StockMCP/internal/datecodec"
	"StockMCP/internal/model"
)

// Collector turns user date tokens into fetched series and statistics.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Series parses the MMDDYYYY tokens and fetches the daily bars in [start, end).
func (c *Collector) Series(ctx context.Context, ticker, startToken, endToken string) (*model.PriceSeries, error) {
	rng, err := datecodec.ParseRange(startToken, endToken)
	if err != nil {
		return nil, err
	}
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, rng.Start, rng.End)
	if err != nil {
		log.Printf("[WARN] %s daily bars for %s failed: %v", c.Fetcher.Name(), ticker, err)
		return nil, &UpstreamError{Source: c.Fetcher.Name(), Err: err}
	}
	return &model.PriceSeries{
		Symbol:    ticker,
		StartDate: rng.StartDate(),
		EndDate:   rng.EndDate(),
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// Collect fetches the series and computes its statistics.
func (c *Collector) Collect(ctx context.Context, ticker, name, startToken, endToken string) (*model.StockStats, error) {
	series, err := c.Series(ctx, ticker, startToken, endToken)
	if err != nil {
		return nil, err
	}
	stats, err := calculator.ComputeStats(ticker, name, series.StartDate, series.EndDate, series.Bars)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Snapshot fetches the live company profile.
func (c *Collector) Snapshot(ctx context.Context, ticker string) (*model.SnapshotInfo, error) {
	info, err := c.Fetcher.FetchSnapshot(ctx, ticker)
	if err != nil {
		return nil, &UpstreamError{Source: c.Fetcher.Name(), Err: fmt.Errorf("snapshot %s: %w", ticker, err)}
	}
	return info, nil
}
