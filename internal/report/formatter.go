// Package report renders human-readable text blocks for the stock resource.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"StockMCP/internal/model"
)

const notAvailable = "N/A"

// FormatSnapshot formats the company profile served at stock://data/{ticker}.
func FormatSnapshot(ticker string, info *model.SnapshotInfo) string {
	if info == nil {
		info = &model.SnapshotInfo{}
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Stock Information for %s:\n", ticker))
	b.WriteString(fmt.Sprintf("Company Name: %s\n", text(info.Name)))
	b.WriteString(fmt.Sprintf("Sector: %s\n", text(info.Sector)))
	b.WriteString(fmt.Sprintf("Industry: %s\n", text(info.Industry)))
	b.WriteString(fmt.Sprintf("Current Price: $%s\n", price(info.CurrentPrice)))
	b.WriteString(fmt.Sprintf("Market Cap: $%s\n", marketCap(info.MarketCap)))
	b.WriteString(fmt.Sprintf("52 Week High: $%s\n", price(info.FiftyTwoWeekHigh)))
	b.WriteString(fmt.Sprintf("52 Week Low: $%s", price(info.FiftyTwoWeekLow)))
	return b.String()
}

// FormatSnapshotError is the text served when the snapshot fetch failed.
func FormatSnapshotError(err error) string {
	return "Error fetching stock resource: " + err.Error()
}

func text(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}

func price(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func marketCap(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return humanize.Comma(int64(math.Round(*v)))
}
