package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/mfalab/flowdyn/internal/array"
	"github.com/mfalab/flowdyn/internal/mfa"
	"github.com/mfalab/flowdyn/internal/stock"
)

const (
	defaultWidth  = 70
	defaultHeight = 8
)

// TimeSeries reduces an array to its time dimension by summation.
func TimeSeries(a *array.Array, timeLetter string) ([]float64, error) {
	reduced, err := a.SumTo(timeLetter)
	if err != nil {
		return nil, err
	}
	return reduced.Values(), nil
}

// PlotArray draws the time series of an array as an ascii chart.
func PlotArray(a *array.Array, timeLetter, caption string, width, height int) (string, error) {
	series, err := TimeSeries(a, timeLetter)
	if err != nil {
		return "", err
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	chart := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return ChartStyle.Render(chart), nil
}

// StockPanel draws stock, inflow and outflow of one stock as three
// stacked charts.
func StockPanel(st stock.Stock, timeLetter string, width, height int) (string, error) {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(st.Name()) + "\n")
	for _, part := range []struct {
		caption string
		a       *array.Array
	}{
		{"stock", st.Stock()},
		{"inflow", st.Inflow()},
		{"outflow", st.Outflow()},
	} {
		chart, err := PlotArray(part.a, timeLetter, part.caption, width, height)
		if err != nil {
			return "", err
		}
		b.WriteString(chart + "\n")
	}
	return b.String(), nil
}

// RenderBalanceReport formats the outcome of a mass balance check.
func RenderBalanceReport(violations []mfa.BalanceViolation) string {
	if len(violations) == 0 {
		return OKStyle.Render("mass balance ok")
	}
	var b strings.Builder
	b.WriteString(WarnStyle.Render(fmt.Sprintf("%d mass balance violations", len(violations))) + "\n")
	for _, v := range violations {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			LabelStyle.Render(v.Process),
			LabelStyle.Render(v.TimeItem),
			WarnStyle.Render(fmt.Sprintf("%+.6g", v.Residual))))
	}
	return b.String()
}
