package model

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	KindInvalidDateFormat ErrorKind = "INVALID_DATE_FORMAT"
	KindNoData            ErrorKind = "NO_DATA_AVAILABLE"
	KindUpstream          ErrorKind = "UPSTREAM_FAILURE"
)

// StockStats is the summary of a price series over a date window.
type StockStats struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	DataPoints       int     `json:"data_points"`
	OpeningPrice     float64 `json:"opening_price"`
	ClosingPrice     float64 `json:"closing_price"`
	HighestPrice     float64 `json:"highest_price"`
	LowestPrice      float64 `json:"lowest_price"`
	AveragePrice     float64 `json:"average_price"`
	PriceChange      float64 `json:"price_change"`
	PercentageChange float64 `json:"percentage_change"`
	AverageVolume    int64   `json:"average_volume"`
}

// StatsError is the JSON shape returned when stats could not be produced.
type StatsError struct {
	Error  string `json:"error"`
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// LegSummary is one side of a comparison.
type LegSummary struct {
	Ticker           string  `json:"ticker"`
	PercentageChange float64 `json:"percentage_change"`
	PriceChange      float64 `json:"price_change"`
	FinalPrice       float64 `json:"final_price"`
}

// ComparisonResult is the outcome of comparing two tickers over the same window.
type ComparisonResult struct {
	ComparisonPeriod      string     `json:"comparison_period"`
	Stock1                LegSummary `json:"stock1"`
	Stock2                LegSummary `json:"stock2"`
	BetterPerformer       string     `json:"better_performer"`
	PerformanceDifference float64    `json:"performance_difference"`
}

// ComparisonFailure is returned when either leg of a comparison failed.
type ComparisonFailure struct {
	Error       string `json:"error"`
	Stock1Error string `json:"stock1_error"`
	Stock2Error string `json:"stock2_error"`
}
