package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"StockMCP/internal/calculator"
	"StockMCP/internal/model"
)

// Compare fetches both tickers concurrently and picks the one with the larger
// percentage change. On a tie the second ticker is reported.
func (s *Service) Compare(ctx context.Context, ticker1, ticker2, start, end string) ComparisonOutcome {
	var leg1, leg2 StockDataResult

	var g errgroup.Group
	g.Go(func() error {
		leg1 = s.StockData(ctx, ticker1, ticker1, start, end)
		return nil
	})
	g.Go(func() error {
		leg2 = s.StockData(ctx, ticker2, ticker2, start, end)
		return nil
	})
	// legs report through leg1 and leg2; the group only joins them
	g.Wait()

	if !leg1.OK() || !leg2.OK() {
		return ComparisonOutcome{Failure: &model.ComparisonFailure{
			Error:       compareFailure,
			Stock1Error: legError(leg1),
			Stock2Error: legError(leg2),
		}}
	}

	a, b := leg1.Stats, leg2.Stats
	better := b.Ticker
	if a.PercentageChange > b.PercentageChange {
		better = a.Ticker
	}
	return ComparisonOutcome{Result: &model.ComparisonResult{
		ComparisonPeriod:      a.StartDate + " to " + a.EndDate,
		Stock1:                summary(a),
		Stock2:                summary(b),
		BetterPerformer:       better,
		PerformanceDifference: roundGap(a.PercentageChange, b.PercentageChange),
	}}
}

func summary(st *model.StockStats) model.LegSummary {
	return model.LegSummary{
		Ticker:           st.Ticker,
		PercentageChange: st.PercentageChange,
		PriceChange:      st.PriceChange,
		FinalPrice:       st.ClosingPrice,
	}
}

func legError(r StockDataResult) string {
	if r.OK() {
		return legOK
	}
	return r.Err.Error
}

// roundGap is the absolute difference of two percentages at 2dp.
func roundGap(a, b float64) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	return calculator.Round2(d)
}
