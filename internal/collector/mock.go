package collector

import (
	"context"
	"time"

	"StockMCP/internal/model"
)

// MockFetcher returns deterministic synthetic data for offline runs.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Info      *model.SnapshotInfo
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, start, end time.Time) ([]model.OHLCV, error) {
	if m.DailyData != nil {
		var out []model.OHLCV
		for _, b := range m.DailyData {
			if !b.Time.Before(start) && b.Time.Before(end) {
				out = append(out, b)
			}
		}
		return out, nil
	}
	return generateMockBars(m.basePrice(), start, end), nil
}

func (m *MockFetcher) FetchSnapshot(_ context.Context, symbol string) (*model.SnapshotInfo, error) {
	if m.Info != nil {
		return m.Info, nil
	}
	name := symbol + " (mock)"
	price := m.basePrice()
	high := price * 1.2
	low := price * 0.8
	return &model.SnapshotInfo{
		Name:             &name,
		CurrentPrice:     &price,
		FiftyTwoWeekHigh: &high,
		FiftyTwoWeekLow:  &low,
	}, nil
}

func (m *MockFetcher) basePrice() float64 {
	if m.Price <= 0 {
		return 100
	}
	return m.Price
}

// generateMockBars emits one bar per weekday in [start, end) with a gentle uptrend.
func generateMockBars(basePrice float64, start, end time.Time) []model.OHLCV {
	bars := []model.OHLCV{}
	i := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i)*0.001)
		bars = append(bars, model.OHLCV{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
		i++
	}
	return bars
}
