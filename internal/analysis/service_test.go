package analysis_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	"StockMCP/internal/analysis"
	"StockMCP/internal/chart"
	"StockMCP/internal/collector/mocks"
	"StockMCP/internal/model"
)

func trend(open, close float64) []model.OHLCV {
	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	return []model.OHLCV{
		{Time: day, Open: open, High: open + 1, Low: open - 1, Close: open, Volume: 100},
		{Time: day.AddDate(0, 0, 1), Open: open, High: close + 1, Low: open - 1, Close: close, Volume: 300},
	}
}

func newService(t *testing.T) (*analysis.Service, *mocks.MockFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Name().Return("mock").AnyTimes()
	return analysis.NewService(fetcher), fetcher
}

func TestStockData(t *testing.T) {
	t.Parallel()

	// Arrange
	svc, fetcher := newService(t)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		Return(trend(100, 110), nil)

	// Act
	res := svc.StockData(t.Context(), "AAPL", "Apple Inc.", "01012024", "02012024")

	// Assert
	require.True(t, res.OK())
	doc := gjson.Parse(res.JSON())
	require.Equal(t, "AAPL", doc.Get("ticker").String())
	require.Equal(t, "Apple Inc.", doc.Get("name").String())
	require.Equal(t, "2024-01-01", doc.Get("start_date").String())
	require.Equal(t, "2024-02-01", doc.Get("end_date").String())
	require.Equal(t, int64(2), doc.Get("data_points").Int())
	require.Equal(t, 10.0, doc.Get("percentage_change").Float())
	require.Equal(t, 10.0, doc.Get("price_change").Float())
	require.Equal(t, int64(200), doc.Get("average_volume").Int())
	require.False(t, doc.Get("error").Exists())
}

func TestStockData_NoData(t *testing.T) {
	t.Parallel()

	svc, fetcher := newService(t)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "ZZZZ", gomock.Any(), gomock.Any()).
		Return([]model.OHLCV{}, nil)

	res := svc.StockData(t.Context(), "ZZZZ", "Nothing", "01012024", "02012024")

	require.False(t, res.OK())
	require.Equal(t, model.KindNoData, res.Kind)
	doc := gjson.Parse(res.JSON())
	require.Equal(t, "No data found for ticker ZZZZ in the specified date range", doc.Get("error").String())
	require.Equal(t, "ZZZZ", doc.Get("ticker").String())
	require.Equal(t, "Nothing", doc.Get("name").String())
}

func TestStockData_InvalidDate(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	res := svc.StockData(t.Context(), "AAPL", "Apple", "2024-01-01", "02012024")

	require.Equal(t, model.KindInvalidDateFormat, res.Kind)
	require.Equal(t, "Failed to fetch data: Invalid date format: 2024-01-01. Expected mmddyyyy format.", res.Err.Error)
}

func TestStockData_Upstream(t *testing.T) {
	t.Parallel()

	svc, fetcher := newService(t)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("yahoo: status 503"))

	res := svc.StockData(t.Context(), "AAPL", "Apple", "01012024", "02012024")

	require.Equal(t, model.KindUpstream, res.Kind)
	require.Equal(t, "Failed to fetch data: yahoo: status 503", res.Err.Error)
}

func TestStockData_RecoversPanic(t *testing.T) {
	t.Parallel()

	svc, fetcher := newService(t)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _, _, _ any) ([]model.OHLCV, error) {
			panic("kaboom")
		})

	res := svc.StockData(t.Context(), "AAPL", "Apple", "01012024", "02012024")

	require.False(t, res.OK())
	require.Contains(t, res.Err.Error, "kaboom")
}

func TestPlotPrice(t *testing.T) {
	t.Parallel()

	svc, fetcher := newService(t)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "AAPL", gomock.Any(), gomock.Any()).
		Return(trend(100, 110), nil)

	out := svc.PlotPrice(t.Context(), "AAPL", "Apple", "01012024", "02012024")
	require.True(t, chart.IsImage(out))
}

func TestPlotPrice_TextFallbacks(t *testing.T) {
	t.Parallel()

	svc, fetcher := newService(t)
	fetcher.EXPECT().
		FetchDailyBars(gomock.Any(), "ZZZZ", gomock.Any(), gomock.Any()).
		Return([]model.OHLCV{}, nil)

	require.Equal(t,
		"No data found for ticker ZZZZ in the specified date range",
		svc.PlotPrice(t.Context(), "ZZZZ", "Nothing", "01012024", "02012024"))
	require.Equal(t,
		"Failed to create plot: Invalid date format: 1312024. Expected mmddyyyy format.",
		svc.PlotPrice(t.Context(), "ZZZZ", "Nothing", "1312024", "02012024"))
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	svc, fetcher := newService(t)
	name := "Apple Inc."
	fetcher.EXPECT().FetchSnapshot(gomock.Any(), "AAPL").Return(&model.SnapshotInfo{Name: &name}, nil)
	fetcher.EXPECT().FetchSnapshot(gomock.Any(), "BAD").Return(nil, errors.New("yahoo: status 404"))

	out := svc.Snapshot(t.Context(), "AAPL")
	require.Contains(t, out, "Stock Information for AAPL:\nCompany Name: Apple Inc.\nSector: N/A")

	out = svc.Snapshot(t.Context(), "BAD")
	require.Equal(t, "Error fetching stock resource: snapshot BAD: yahoo: status 404", out)
}
