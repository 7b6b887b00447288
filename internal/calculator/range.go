package calculator

import (
	"errors"
	"math"

	"StockMCP/internal/model"
)

var errNoBars = errors.New("no daily bars provided")

// PriceRange returns the highest high and lowest low across all bars.
func PriceRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errNoBars
	}
	high, low = scanRange(bars)
	return high, low, nil
}

// Calculate52WeekRange scans the most recent 252 trading days and returns the high and low.
func Calculate52WeekRange(dailyBars []model.OHLCV) (high, low float64, err error) {
	if len(dailyBars) == 0 {
		return 0, 0, errNoBars
	}
	start := len(dailyBars) - 252
	if start < 0 {
		start = 0
	}
	high, low = scanRange(dailyBars[start:])
	return high, low, nil
}

func scanRange(bars []model.OHLCV) (high, low float64) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := range bars {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low
}
