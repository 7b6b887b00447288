package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"StockMCP/internal/model"
)

// ErrZeroOpeningPrice is returned when the first bar opened at zero and no
// percentage change can be derived.
var ErrZeroOpeningPrice = errors.New("opening price is zero, percentage change is undefined")

// NoDataError reports an empty series for the requested window.
type NoDataError struct {
	Ticker string
	Name   string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("No data found for ticker %s in the specified date range", e.Ticker)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ComputeStats summarises bars, which must be ordered oldest first.
func ComputeStats(ticker, name, startDate, endDate string, bars []model.OHLCV) (*model.StockStats, error) {
	if len(bars) == 0 {
		return nil, &NoDataError{Ticker: ticker, Name: name}
	}

	opening := bars[0].Open
	closing := bars[len(bars)-1].Close
	if opening == 0 {
		return nil, ErrZeroOpeningPrice
	}
	high, low, err := PriceRange(bars)
	if err != nil {
		return nil, err
	}

	return &model.StockStats{
		Ticker:           ticker,
		Name:             name,
		StartDate:        startDate,
		EndDate:          endDate,
		DataPoints:       len(bars),
		OpeningPrice:     Round2(opening),
		ClosingPrice:     Round2(closing),
		HighestPrice:     Round2(high),
		LowestPrice:      Round2(low),
		AveragePrice:     Round2(MeanClose(bars)),
		PriceChange:      Round2(closing - opening),
		PercentageChange: Round2((closing/opening - 1) * 100),
		AverageVolume:    int64(MeanVolume(bars)),
	}, nil
}
