package stats

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChart writes a standalone HTML bar chart of the window's
// bucketed series to w.
func RenderChart(w io.Writer, mantra string, totals Totals, series []Point) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Japa: %s", totals.Label),
			Subtitle: fmt.Sprintf("%s · %d chants · %d malas", mantra, totals.Chants, totals.Malas),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Chants",
			NameLocation: "middle",
			NameGap:      50,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "shadow",
			},
		}),
	)

	labels := make([]string, len(series))
	data := make([]opts.BarData, len(series))
	for i, p := range series {
		labels[i] = p.Label
		data[i] = opts.BarData{Value: p.Value}
	}

	bar.SetXAxis(labels)
	bar.AddSeries("chants", data)

	return bar.Render(w)
}
