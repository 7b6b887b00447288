package collector_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"StockMCP/internal/calculator"
	"StockMCP/internal/collector"
	"StockMCP/internal/collector/mocks"
	"StockMCP/internal/datecodec"
	"StockMCP/internal/model"
)

func TestCollect(t *testing.T) {
	t.Parallel()

	// Arrange: a fetcher that expects the parsed half-open window.
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "AAPL", start, end).
		Return([]model.OHLCV{
			{Time: start.AddDate(0, 0, 1), Open: 100, High: 101, Low: 99, Close: 100, Volume: 10},
			{Time: start.AddDate(0, 0, 2), Open: 100, High: 111, Low: 98, Close: 110, Volume: 20},
		}, nil).
		Times(1)

	// Act
	stats, err := collector.NewCollector(fetcher).Collect(t.Context(), "AAPL", "Apple", "01012024", "02012024")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", stats.StartDate)
	require.Equal(t, "2024-02-01", stats.EndDate)
	require.Equal(t, 10.0, stats.PercentageChange)
	require.Equal(t, int64(15), stats.AverageVolume)
}

func TestCollect_InvalidDateSkipsFetch(t *testing.T) {
	t.Parallel()

	// Arrange: no calls expected on the fetcher.
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	// Act
	_, err := collector.NewCollector(fetcher).Collect(t.Context(), "AAPL", "Apple", "2024-01-01", "02012024")

	// Assert
	var dateErr *datecodec.InvalidDateFormatError
	require.ErrorAs(t, err, &dateErr)
}

func TestCollect_UpstreamFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Name().Return("yahoo").AnyTimes()
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("yahoo fetch: connection refused"))

	_, err := collector.NewCollector(fetcher).Collect(t.Context(), "AAPL", "Apple", "01012024", "02012024")

	var upstream *collector.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, "yahoo", upstream.Source)
	require.Equal(t, "yahoo fetch: connection refused", err.Error())
}

func TestCollect_NoData(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "ZZZZ", gomock.Any(), gomock.Any()).
		Return([]model.OHLCV{}, nil)

	_, err := collector.NewCollector(fetcher).Collect(t.Context(), "ZZZZ", "Nothing", "01012024", "02012024")

	var noData *calculator.NoDataError
	require.ErrorAs(t, err, &noData)
}

func TestMockFetcher(t *testing.T) {
	t.Parallel()

	// Mon 2024-01-01 .. Sun 2024-01-07 holds five weekdays.
	f := &collector.MockFetcher{Price: 50}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	bars, err := f.FetchDailyBars(t.Context(), "ANY", start, start.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, bars, 5)
	require.Equal(t, 50.0, bars[0].Close)
	require.Greater(t, bars[4].Close, bars[0].Close)

	info, err := f.FetchSnapshot(t.Context(), "ANY")
	require.NoError(t, err)
	require.Equal(t, "ANY (mock)", *info.Name)
	require.Nil(t, info.Sector)
}
