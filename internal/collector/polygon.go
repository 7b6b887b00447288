package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"StockMCP/internal/calculator"
	"StockMCP/internal/model"
)

// PolygonFetcher implements Fetcher on top of the Polygon.io REST client.
type PolygonFetcher struct {
	Client *polygon.Client
	Now    func() time.Time
}

// NewPolygonFetcher creates a fetcher authenticated with apiKey.
func NewPolygonFetcher(apiKey, proxyURL string, timeout time.Duration) *PolygonFetcher {
	return &PolygonFetcher{
		Client: polygon.NewWithClient(apiKey, newHTTPClient(proxyURL, timeout)),
		Now:    time.Now,
	}
}

func (f *PolygonFetcher) Name() string { return "polygon" }

// FetchDailyBars lists adjusted daily aggregates. Polygon treats both ends of
// the range as inclusive, so the last requested day is end minus one.
func (f *PolygonFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	last := end.AddDate(0, 0, -1)
	if last.Before(start) {
		return []model.OHLCV{}, nil
	}
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(last),
	}.WithOrder(models.Asc).WithLimit(50000).WithAdjusted(true)

	iter := f.Client.ListAggs(ctx, params)
	bars := []model.OHLCV{}
	for iter.Next() {
		bars = append(bars, aggToBar(iter.Item()))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("polygon list aggs: %w", err)
	}
	return bars, nil
}

// FetchSnapshot combines ticker details, the previous close and a year of
// daily aggregates. Polygon has no sector field; the SIC description is
// reported as the industry.
func (f *PolygonFetcher) FetchSnapshot(ctx context.Context, symbol string) (*model.SnapshotInfo, error) {
	details, err := f.Client.GetTickerDetails(ctx, &models.GetTickerDetailsParams{Ticker: symbol})
	if err != nil {
		return nil, fmt.Errorf("polygon ticker details: %w", err)
	}
	info := &model.SnapshotInfo{
		Name:      strPtr(details.Results.Name),
		Industry:  strPtr(details.Results.SICDescription),
		MarketCap: nonZeroPtr(details.Results.MarketCap),
	}

	prev, err := f.Client.GetPreviousCloseAgg(ctx, &models.GetPreviousCloseAggParams{Ticker: symbol})
	if err != nil {
		log.Printf("[WARN] polygon previous close for %s failed: %v", symbol, err)
	} else if len(prev.Results) > 0 {
		price := prev.Results[len(prev.Results)-1].Close
		info.CurrentPrice = &price
	}

	today := f.Now().UTC().Truncate(24 * time.Hour)
	year, err := f.FetchDailyBars(ctx, symbol, today.AddDate(-1, 0, 0), today.AddDate(0, 0, 1))
	if err != nil {
		log.Printf("[WARN] polygon 52-week range for %s failed: %v", symbol, err)
	} else if high, low, err := calculator.Calculate52WeekRange(year); err == nil {
		info.FiftyTwoWeekHigh = &high
		info.FiftyTwoWeekLow = &low
	}
	return info, nil
}

func aggToBar(a models.Agg) model.OHLCV {
	return model.OHLCV{
		Time:   time.Time(a.Timestamp).UTC(),
		Open:   a.Open,
		High:   a.High,
		Low:    a.Low,
		Close:  a.Close,
		Volume: a.Volume,
	}
}
