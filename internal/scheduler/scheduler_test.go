package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"StockMCP/internal/collector"
	"StockMCP/internal/collector/mocks"
	"StockMCP/internal/model"
)

func TestProbe_OK(t *testing.T) {
	t.Parallel()

	// Wed 2024-01-10 looks back over five weekdays.
	s := NewScheduler(t.Context(), &collector.MockFetcher{}, "SPY")
	s.Now = func() time.Time { return time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC) }

	res := s.Probe(t.Context())
	require.NoError(t, res.Err)
	require.Equal(t, "mock", res.Source)
	require.Equal(t, "SPY", res.Ticker)
	require.Equal(t, 5, res.Bars)
}

func TestProbe_Failure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Name().Return("yahoo").AnyTimes()
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("yahoo: status 429"))

	res := NewScheduler(t.Context(), fetcher, "SPY").Probe(t.Context())
	require.EqualError(t, res.Err, "yahoo: status 429")
	require.Equal(t, "yahoo", res.Source)
}

func TestProbe_Empty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Name().Return("yahoo").AnyTimes()
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "SPY", gomock.Any(), gomock.Any()).
		Return([]model.OHLCV{}, nil)

	res := NewScheduler(t.Context(), fetcher, "SPY").Probe(t.Context())
	require.Error(t, res.Err)
	require.Zero(t, res.Bars)
}

func TestRegisterProbe(t *testing.T) {
	t.Parallel()

	s := NewScheduler(t.Context(), &collector.MockFetcher{}, "SPY")
	require.NoError(t, s.RegisterProbe("0 */5 * * * *"))
	require.Len(t, s.Cron.Entries(), 1)
	require.Error(t, s.RegisterProbe("not a cron spec"))
}
