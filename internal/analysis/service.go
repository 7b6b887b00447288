// Package analysis implements the operations exposed as tools and resources.
package analysis

import (
	"context"
	"fmt"
	"log"

	"StockMCP/internal/chart"
	"StockMCP/internal/collector"
	"StockMCP/internal/model"
	"StockMCP/internal/report"
)

// Service runs the stock operations against a single data source.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	Collector *collector.Collector
}

// NewService creates a Service backed by fetcher.
func NewService(fetcher collector.Fetcher) *Service {
	return &Service{Collector: collector.NewCollector(fetcher)}
}

// StockData computes summary statistics for ticker over [start, end).
func (s *Service) StockData(ctx context.Context, ticker, name, start, end string) StockDataResult {
	var stats *model.StockStats
	err := guard(func() error {
		var err error
		stats, err = s.Collector.Collect(ctx, ticker, name, start, end)
		return err
	})
	if err == nil {
		return StockDataResult{Stats: stats}
	}

	kind := Classify(err)
	msg := "Failed to fetch data: " + err.Error()
	if kind == model.KindNoData {
		msg = err.Error()
	}
	return StockDataResult{
		Kind: kind,
		Err:  &model.StatsError{Error: msg, Ticker: ticker, Name: name},
	}
}

// PlotPrice renders the price chart. The result is a PNG data URI or a
// plain-text message.
func (s *Service) PlotPrice(ctx context.Context, ticker, name, start, end string) string {
	var out string
	err := guard(func() error {
		series, err := s.Collector.Series(ctx, ticker, start, end)
		if err != nil {
			return err
		}
		out, err = chart.Render(ticker, name, series.StartDate, series.EndDate, series.Bars)
		return err
	})
	switch Classify(err) {
	case "":
		return out
	case model.KindNoData:
		return err.Error()
	default:
		log.Printf("[WARN] plot %s: %v", ticker, err)
		return "Failed to create plot: " + err.Error()
	}
}

// Snapshot returns the company profile text for the stock resource. It
// never fails; errors are rendered into the text.
func (s *Service) Snapshot(ctx context.Context, ticker string) string {
	var info *model.SnapshotInfo
	err := guard(func() error {
		var err error
		info, err = s.Collector.Snapshot(ctx, ticker)
		return err
	})
	if err != nil {
		log.Printf("[WARN] snapshot %s: %v", ticker, err)
		return report.FormatSnapshotError(err)
	}
	return report.FormatSnapshot(ticker, info)
}

// guard converts a panic in fn into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[ERROR] recovered panic: %v", rec)
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()
	return fn()
}
