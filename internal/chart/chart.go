// Package chart renders a two-panel price and volume chart as a PNG data URI.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"StockMCP/internal/calculator"
	"StockMCP/internal/model"
)

// DataURIPrefix starts every rendered chart.
const DataURIPrefix = "data:image/png;base64,"

const (
	width  = 12 * vg.Inch
	height = 8 * vg.Inch
	dpi    = 150
)

var (
	closeColor  = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	openColor   = color.NRGBA{R: 0, G: 128, B: 0, A: 179}
	volumeColor = color.NRGBA{R: 255, G: 165, B: 0, A: 153}
	gridColor   = color.NRGBA{R: 128, G: 128, B: 128, A: 77}
)

// IsImage reports whether s is a rendered chart rather than a text message.
func IsImage(s string) bool {
	return strings.HasPrefix(s, DataURIPrefix)
}

// Render draws close/open lines above a volume bar panel and returns the PNG
// as a base64 data URI. Bars must be ordered oldest first.
func Render(ticker, name, startDate, endDate string, bars []model.OHLCV) (string, error) {
	if len(bars) == 0 {
		return "", &calculator.NoDataError{Ticker: ticker, Name: name}
	}

	price, err := pricePanel(ticker, name, startDate, endDate, bars)
	if err != nil {
		return "", fmt.Errorf("price panel: %w", err)
	}
	volume, bc, err := volumePanel(bars)
	if err != nil {
		return "", fmt.Errorf("volume panel: %w", err)
	}

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(16),
		PadY:      vg.Points(24),
	}
	canvases := plot.Align([][]*plot.Plot{{price}, {volume}}, tiles, dc)
	price.Draw(canvases[0][0])
	// size bars from the laid-out data area so neighbours never touch
	area := volume.DataCanvas(canvases[1][0])
	bc.Width = barWidth(area.Max.X-area.Min.X, len(bars))
	volume.Draw(canvases[1][0])

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func pricePanel(ticker, name, startDate, endDate string, bars []model.OHLCV) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s) - Stock Price Chart\n%s to %s", name, ticker, startDate, endDate)
	p.Y.Label.Text = "Price ($)"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(newGrid())

	closes := make(plotter.XYs, len(bars))
	opens := make(plotter.XYs, len(bars))
	for i, b := range bars {
		closes[i].X, closes[i].Y = float64(i), b.Close
		opens[i].X, opens[i].Y = float64(i), b.Open
	}

	closeLine, err := plotter.NewLine(closes)
	if err != nil {
		return nil, err
	}
	closeLine.LineStyle.Color = closeColor
	closeLine.LineStyle.Width = vg.Points(2)

	openLine, err := plotter.NewLine(opens)
	if err != nil {
		return nil, err
	}
	openLine.LineStyle.Color = openColor
	openLine.LineStyle.Width = vg.Points(1)

	p.Add(closeLine, openLine)
	p.Legend.Add("Close Price", closeLine)
	p.Legend.Add("Open Price", openLine)

	dateAxis(p, bars)
	return p, nil
}

func volumePanel(bars []model.OHLCV) (*plot.Plot, *plotter.BarChart, error) {
	p := plot.New()
	p.Title.Text = "Trading Volume"
	p.Y.Label.Text = "Volume"
	p.X.Label.Text = "Date"
	p.Add(newGrid())

	volumes := make(plotter.Values, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	bc, err := plotter.NewBarChart(volumes, barWidth(width, len(bars)))
	if err != nil {
		return nil, nil, err
	}
	bc.Color = volumeColor
	bc.LineStyle.Width = 0
	p.Add(bc)
	p.Legend.Add("Volume", bc)
	p.Legend.Top = true
	p.Legend.Left = true

	dateAxis(p, bars)
	return p, bc, nil
}

func newGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = gridColor
	g.Horizontal.Color = gridColor
	return g
}

// dateAxis pins both panels to the same index range so the bars line up
// under the price points.
func dateAxis(p *plot.Plot, bars []model.OHLCV) {
	p.X.Min = -0.5
	p.X.Max = float64(len(bars)) - 0.5
	p.X.Tick.Marker = dateTicker{bars: bars}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

// barWidth fills 80% of each trading-day slot in a data region of the given width.
func barWidth(area vg.Length, n int) vg.Length {
	slot := area / vg.Length(n)
	w := slot * 0.8
	if w < vg.Points(0.5) {
		return vg.Length(math.Min(float64(vg.Points(0.5)), float64(slot)))
	}
	return w
}
