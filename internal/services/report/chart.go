package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/ratiolens/internal/models"
)

// peerPalette colors benchmark lines in entity order.
var peerPalette = []drawing.Color{
	drawing.ColorFromHex("f97316"), // orange-500
	drawing.ColorFromHex("10b981"), // emerald-500
	drawing.ColorFromHex("8b5cf6"), // violet-500
	drawing.ColorFromHex("ec4899"), // pink-500
	drawing.ColorFromHex("9ca3af"), // gray-400
}

// RenderRatioChart renders a PNG line chart of one ratio across fiscal
// periods: the primary entity blue solid, benchmarks dashed, the index
// near-black dash-dot. Entities with fewer than two defined points are left
// off the chart. Returns raw PNG bytes.
func RenderRatioChart(ratio string, category models.Category, cmp *models.Comparison, width, height int) ([]byte, error) {
	if cmp == nil {
		return nil, fmt.Errorf("no comparison data")
	}
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 400
	}

	var allSeries []chart.Series
	peerIdx := 0
	for _, ticker := range cmp.Entities {
		es := cmp.Series[ticker]
		if es == nil {
			continue
		}
		series := es.Categories[category]
		if series == nil {
			continue
		}

		var xValues []time.Time
		var yValues []float64
		for _, p := range series.Periods {
			if v := series.At(p, ratio); v.Valid {
				xValues = append(xValues, p.Date)
				yValues = append(yValues, v.Value)
			}
		}
		if len(xValues) < 2 {
			continue
		}

		style := chart.Style{StrokeWidth: 1.5}
		switch es.Role {
		case models.RolePrimary:
			style.StrokeColor = drawing.ColorFromHex("2563eb") // blue-600
			style.StrokeWidth = 2.5
		case models.RoleIndex:
			style.StrokeColor = drawing.ColorFromHex("111827") // gray-900
			style.StrokeDashArray = []float64{6.0, 3.0, 1.0, 3.0}
		default:
			style.StrokeColor = peerPalette[peerIdx%len(peerPalette)]
			style.StrokeDashArray = []float64{5.0, 3.0}
			peerIdx++
		}

		allSeries = append(allSeries, chart.TimeSeries{
			Name:    ticker,
			Style:   style,
			XValues: xValues,
			YValues: yValues,
		})
	}

	if len(allSeries) == 0 {
		return nil, fmt.Errorf("no entity has enough data points for %s", ratio)
	}

	graph := chart.Chart{
		Title:  ratio,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: allSeries,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
