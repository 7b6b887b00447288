package chart

import (
	"math"

	"gonum.org/v1/plot"

	"StockMCP/internal/model"
)

const maxDateLabels = 10

// dateTicker labels trading-day indices with their calendar dates.
type dateTicker struct {
	bars []model.OHLCV
}

func (t dateTicker) Ticks(min, max float64) []plot.Tick {
	n := len(t.bars)
	if n == 0 {
		return nil
	}
	step := int(math.Ceil(float64(n) / maxDateLabels))
	if step < 1 {
		step = 1
	}
	var ticks []plot.Tick
	for i := 0; i < n; i++ {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		label := ""
		if i%step == 0 {
			label = t.bars[i].Time.Format("2006-01-02")
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: label})
	}
	return ticks
}
