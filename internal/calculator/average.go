package calculator

import "StockMCP/internal/model"

// MeanClose returns the arithmetic mean of the closing prices.
func MeanClose(bars []model.OHLCV) float64 {
	return mean(extractCloses(bars))
}

// MeanVolume returns the arithmetic mean of the traded volumes.
func MeanVolume(bars []model.OHLCV) float64 {
	return mean(extractVolumes(bars))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractVolumes(bars []model.OHLCV) []float64 {
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return volumes
}
