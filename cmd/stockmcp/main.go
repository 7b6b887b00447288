package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockMCP/internal/analysis"
	"StockMCP/internal/collector"
	"StockMCP/internal/config"
	"StockMCP/internal/scheduler"
	"StockMCP/internal/server"
)

func main() {
	// stdout carries the JSON-RPC stream; all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the YAML config file")
	check := flag.Bool("check", false, "run the self check against the data source and exit")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *check {
		if err := runCheck(ctx, fetcher, cfg.Probe.Ticker); err != nil {
			log.Fatalf("[FATAL] self check: %v", err)
		}
		log.Println("[INFO] self check passed")
		return
	}

	if cfg.Probe.Cron != "" {
		sched := scheduler.NewScheduler(ctx, fetcher, cfg.Probe.Ticker)
		if err := sched.RegisterProbe(cfg.Probe.Cron); err != nil {
			log.Fatalf("[FATAL] register probe: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := server.New(cfg.Server.Name, cfg.Server.Version, analysis.NewService(fetcher), log.Default())
	log.Printf("[INFO] %s %s serving on stdio", cfg.Server.Name, cfg.Server.Version)
	if err := srv.Serve(ctx, os.Stdin, os.Stdout); err != nil {
		log.Printf("[ERROR] serve: %v", err)
	}
	log.Println("[INFO] stopped")
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case config.ProviderPolygon:
		return collector.NewPolygonFetcher(cfg.DataSource.APIKey, cfg.Proxy, cfg.Timeout())
	case config.ProviderMock:
		return &collector.MockFetcher{Price: 100}
	default:
		f := collector.NewYahooFetcher(cfg.Proxy, cfg.Timeout())
		if cfg.DataSource.ChartURL != "" {
			f.ChartURL = cfg.DataSource.ChartURL
		}
		if cfg.DataSource.SummaryURL != "" {
			f.SummaryURL = cfg.DataSource.SummaryURL
		}
		return f
	}
}
