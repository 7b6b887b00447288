package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the bars returned for one ticker over a requested window.
type PriceSeries struct {
	Symbol    string
	StartDate string // YYYY-MM-DD, inclusive
	EndDate   string // YYYY-MM-DD, exclusive
	Bars      []OHLCV
	FetchedAt time.Time
}

// SnapshotInfo is the current company profile served by the stock resource.
// A nil field means the upstream did not report it.
type SnapshotInfo struct {
	Name             *string
	Sector           *string
	Industry         *string
	CurrentPrice     *float64
	MarketCap        *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
}
