package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
Slice is one category of the revenue-share chart.
*/
type Slice struct {
	Label string
	Value float64
}

/*
Point is one day of the revenue-trend chart.
*/
type Point struct {
	Day   time.Time
	Value float64
}

/*
RenderCategoryShare renders the revenue-share pie chart into destinationPath.

Each slice label carries its percentage of the shown-category total at one
decimal place, e.g. "X (41.2%)". An empty or all-zero slice list produces the
fixed-size placeholder panel instead of an error.
*/
func RenderCategoryShare(slices []Slice, destinationPath string) (artifact Artifact, err error) {
	shownTotal := 0.0
	for _, slice := range slices {
		shownTotal += slice.Value
	}

	if len(slices) == 0 || shownTotal <= 0 {
		return savePlaceholder(KindCategoryShare, ShareWidth, ShareHeight, destinationPath)
	}

	tl.Log(
		tl.Info1, palette.Blue, "Rendering %s chart with %s slices into '%s'",
		KindCategoryShare, fmt.Sprintf("%d", len(slices)), destinationPath,
	)

	values := make([]chart.Value, 0, len(slices))
	for _, slice := range slices {
		percent := slice.Value / shownTotal * 100.0
		values = append(values, chart.Value{
			Value: slice.Value,
			Label: fmt.Sprintf("%s (%.1f%%)", slice.Label, percent),
		})
	}

	pie := chart.PieChart{
		Width:  ShareWidth,
		Height: ShareHeight,
		Values: values,
	}

	var buffer bytes.Buffer
	renderErr := pie.Render(chart.PNG, &buffer)
	if renderErr != nil {
		return artifact, &RenderError{Kind: KindCategoryShare, Err: renderErr}
	}

	return saveAtSize(KindCategoryShare, &buffer, ShareWidth, ShareHeight, destinationPath)
}

/*
RenderDailyTrend renders the daily revenue line chart into destinationPath.

Points must already be sorted ascending by day. The y-axis draws major
gridlines for readability. A single point gets an explicit padded axis range
so the chart does not degenerate into a zero-width domain. An empty series
produces the fixed-size placeholder panel instead of an error.
*/
func RenderDailyTrend(points []Point, destinationPath string) (artifact Artifact, err error) {
	if len(points) == 0 {
		return savePlaceholder(KindDailyTrend, TrendWidth, TrendHeight, destinationPath)
	}

	tl.Log(
		tl.Info1, palette.Blue, "Rendering %s chart with %s points into '%s'",
		KindDailyTrend, fmt.Sprintf("%d", len(points)), destinationPath,
	)

	xValues := make([]time.Time, 0, len(points))
	yValues := make([]float64, 0, len(points))
	minValue := points[0].Value
	maxValue := points[0].Value

	for _, point := range points {
		xValues = append(xValues, point.Day)
		yValues = append(yValues, point.Value)
		if point.Value < minValue {
			minValue = point.Value
		}
		if point.Value > maxValue {
			maxValue = point.Value
		}
	}

	graph := chart.Chart{
		Width:  TrendWidth,
		Height: TrendHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
					DotColor:    chart.ColorBlue,
					DotWidth:    3.0,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	// A single day or a flat series leaves an axis with a zero-width range,
	// which the renderer rejects. Pad such ranges explicitly.
	if len(points) == 1 {
		day := points[0].Day
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: float64(day.Add(-12 * time.Hour).UnixNano()),
			Max: float64(day.Add(12 * time.Hour).UnixNano()),
		}
	}
	if minValue == maxValue {
		padding := maxValue * 0.1
		if padding <= 0 {
			padding = 1.0
		}
		graph.YAxis.Range = &chart.ContinuousRange{
			Min: minValue - padding,
			Max: maxValue + padding,
		}
	}

	var buffer bytes.Buffer
	renderErr := graph.Render(chart.PNG, &buffer)
	if renderErr != nil {
		return artifact, &RenderError{Kind: KindDailyTrend, Err: renderErr}
	}

	return saveAtSize(KindDailyTrend, &buffer, TrendWidth, TrendHeight, destinationPath)
}
