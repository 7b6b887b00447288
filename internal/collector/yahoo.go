package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"StockMCP/internal/model"
)

const (
	defaultChartURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultSummaryURL = "https://query2.finance.yahoo.com/v10/finance/quoteSummary"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client     *http.Client
	ChartURL   string
	SummaryURL string
	SymbolMap  map[string]string // maps user symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	return &YahooFetcher{
		Client:     newHTTPClient(proxyURL, timeout),
		ChartURL:   defaultChartURL,
		SummaryURL: defaultSummaryURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				LongName           string  `json:"longName"`
				ShortName          string  `json:"shortName"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				FiftyTwoWeekHigh   *float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    *float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(vals []interface{}, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	switch n := vals[i].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("yahoo read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol string, query url.Values) (*yahooChart, error) {
	u := fmt.Sprintf("%s/%s?%s", f.ChartURL, url.PathEscape(f.yahooSymbol(symbol)), query.Encode())
	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
		}
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return &chart, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no chart result for %s", symbol)
	}
	return &chart, nil
}

// FetchDailyBars returns the daily bars in [start, end). Unknown symbols
// yield an empty series rather than an error.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprint(start.Unix()))
	q.Set("period2", fmt.Sprint(end.Unix()))
	q.Set("interval", "1d")
	q.Set("events", "history")

	chart, err := f.fetchChart(ctx, symbol, q)
	if err != nil {
		if chart != nil && chart.Chart.Error.Code == "Not Found" {
			return []model.OHLCV{}, nil
		}
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return []model.OHLCV{}, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open, i)
		h := toFloat(quote.High, i)
		l := toFloat(quote.Low, i)
		c := toFloat(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchSnapshot reads the company profile from quoteSummary, falling back to
// the chart metadata when the summary endpoint refuses the request.
func (f *YahooFetcher) FetchSnapshot(ctx context.Context, symbol string) (*model.SnapshotInfo, error) {
	info, err := f.fetchSummary(ctx, symbol)
	if err == nil {
		return info, nil
	}
	log.Printf("[WARN] yahoo quoteSummary for %s failed: %v, using chart metadata", symbol, err)

	q := url.Values{}
	q.Set("range", "5d")
	q.Set("interval", "1d")
	chart, err := f.fetchChart(ctx, symbol, q)
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta
	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	return &model.SnapshotInfo{
		Name:             strPtr(name),
		CurrentPrice:     meta.RegularMarketPrice,
		FiftyTwoWeekHigh: meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  meta.FiftyTwoWeekLow,
	}, nil
}

func (f *YahooFetcher) fetchSummary(ctx context.Context, symbol string) (*model.SnapshotInfo, error) {
	u := fmt.Sprintf("%s/%s?modules=price,summaryProfile,summaryDetail", f.SummaryURL, url.PathEscape(f.yahooSymbol(symbol)))
	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", status)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo: invalid quoteSummary payload")
	}

	root := gjson.ParseBytes(body)
	if msg := root.Get("quoteSummary.error.description"); msg.Exists() {
		return nil, fmt.Errorf("yahoo api error: %s", msg.String())
	}
	res := root.Get("quoteSummary.result.0")
	if !res.Exists() {
		return nil, fmt.Errorf("yahoo: no quoteSummary result for %s", symbol)
	}

	name := res.Get("price.longName").String()
	if name == "" {
		name = res.Get("price.shortName").String()
	}
	marketCap := res.Get("price.marketCap.raw")
	if !marketCap.Exists() {
		marketCap = res.Get("summaryDetail.marketCap.raw")
	}
	return &model.SnapshotInfo{
		Name:             strPtr(name),
		Sector:           strPtr(res.Get("summaryProfile.sector").String()),
		Industry:         strPtr(res.Get("summaryProfile.industry").String()),
		CurrentPrice:     numberPtr(res.Get("price.regularMarketPrice.raw")),
		MarketCap:        numberPtr(marketCap),
		FiftyTwoWeekHigh: numberPtr(res.Get("summaryDetail.fiftyTwoWeekHigh.raw")),
		FiftyTwoWeekLow:  numberPtr(res.Get("summaryDetail.fiftyTwoWeekLow.raw")),
	}, nil
}

// numberPtr returns nil unless r holds a JSON number; zero is a real value.
func numberPtr(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	f := r.Float()
	return &f
}
