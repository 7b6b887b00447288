package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"StockMCP/internal/collector"
)

// probeWindow is how far back a probe looks for bars.
const probeWindow = 7 * 24 * time.Hour

// ProbeResult is the outcome of one upstream health probe.
type ProbeResult struct {
	Source string
	Ticker string
	Bars   int
	Took   time.Duration
	Err    error
}

// Scheduler runs periodic health probes against the data source.
type Scheduler struct {
	Cron    *cron.Cron
	Fetcher collector.Fetcher
	Ticker  string
	Ctx     context.Context
	Now     func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, fetcher collector.Fetcher, ticker string) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: fetcher,
		Ticker:  ticker,
		Ctx:     ctx,
		Now:     time.Now,
	}
}

// RegisterProbe schedules the probe on a six-field cron spec.
func (s *Scheduler) RegisterProbe(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.Probe(s.Ctx) }); err != nil {
		return fmt.Errorf("register probe task: %w", err)
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

// Probe fetches the last week of bars for the canary ticker.
func (s *Scheduler) Probe(ctx context.Context) ProbeResult {
	end := s.Now().UTC()
	start := end.Add(-probeWindow)
	began := time.Now()

	bars, err := s.Fetcher.FetchDailyBars(ctx, s.Ticker, start, end)
	res := ProbeResult{
		Source: s.Fetcher.Name(),
		Ticker: s.Ticker,
		Bars:   len(bars),
		Took:   time.Since(began),
		Err:    err,
	}
	switch {
	case err != nil:
		log.Printf("[WARN] probe %s/%s failed: %v", res.Source, res.Ticker, err)
	case res.Bars == 0:
		res.Err = fmt.Errorf("no bars for %s in the last %s", s.Ticker, probeWindow)
		log.Printf("[WARN] probe %s/%s returned no bars", res.Source, res.Ticker)
	default:
		log.Printf("[INFO] probe %s/%s ok: %d bars in %s", res.Source, res.Ticker, res.Bars, res.Took.Round(time.Millisecond))
	}
	return res
}
