package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"StockMCP/internal/analysis"
	"StockMCP/internal/chart"
	"StockMCP/internal/collector"
	"StockMCP/internal/datecodec"
	"StockMCP/internal/model"
	"StockMCP/internal/scheduler"
	"StockMCP/internal/server"
)

// runCheck verifies date parsing and chart rendering, probes the upstream,
// then runs get_stock_data through the dispatch table.
func runCheck(ctx context.Context, fetcher collector.Fetcher, ticker string) error {
	if iso, err := datecodec.Parse("02292024"); err != nil || iso != "2024-02-29" {
		return fmt.Errorf("date codec: got %q, %v", iso, err)
	}
	if _, err := datecodec.Parse("02302024"); err == nil {
		return fmt.Errorf("date codec accepted 02302024")
	}
	log.Println("[INFO] date codec ok")

	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	bars := []model.OHLCV{
		{Time: day, Open: 1, High: 2, Low: 1, Close: 2, Volume: 10},
		{Time: day.AddDate(0, 0, 1), Open: 2, High: 3, Low: 1, Close: 3, Volume: 20},
	}
	img, err := chart.Render("TEST", "Self Check", "2024-01-01", "2024-01-04", bars)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	log.Printf("[INFO] chart ok: %d bytes", len(img))

	res := scheduler.NewScheduler(ctx, fetcher, ticker).Probe(ctx)
	if res.Err != nil {
		return fmt.Errorf("upstream %s: %w", res.Source, res.Err)
	}

	handler, ok := server.NewRegistry(analysis.NewService(fetcher)).Lookup("get_stock_data")
	if !ok {
		return fmt.Errorf("get_stock_data is not registered")
	}
	end := time.Now().UTC()
	req := mcp.CallToolRequest{}
	req.Params.Name = "get_stock_data"
	req.Params.Arguments = map[string]any{
		"ticker":     ticker,
		"name":       ticker,
		"start_date": end.AddDate(0, 0, -14).Format("01022006"),
		"end_date":   end.AddDate(0, 0, 1).Format("01022006"),
	}
	out, err := handler(ctx, req)
	if err != nil {
		return fmt.Errorf("get_stock_data: %w", err)
	}
	text, _ := out.Content[0].(mcp.TextContent)
	if out.IsError || gjson.Get(text.Text, "error").Exists() {
		return fmt.Errorf("get_stock_data: %s", text.Text)
	}
	log.Printf("[INFO] get_stock_data ok: %s", text.Text)
	return nil
}
