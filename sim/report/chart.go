package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/inference-sim/debt-sim/sim"
)

// Chart file names written by SaveCharts.
const (
	DebtChartFile    = "debt_accumulation.png"
	UnpaidChartFile  = "percentage_unpaid.png"
	WinnersChartFile = "winners_losers.png"
)

var (
	red     = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	blue    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	magenta = color.RGBA{R: 188, G: 38, B: 188, A: 255}
	green   = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

type series struct {
	label string
	color color.Color
	ys    []float64
}

// SaveCharts renders the three yearly charts as PNG files in dir, creating
// it if needed: debt accumulation, unpaid debt relative to principal, and
// winners against losers.
func SaveCharts(r *sim.Result, dir string) error {
	if r == nil || len(r.Years) == 0 {
		return fmt.Errorf("no yearly records to chart")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}

	s := Summarize(r)
	n := len(r.Years)
	years := make([]float64, n)
	debt := make([]float64, n)
	unpaid := make([]float64, n)
	winners := make([]float64, n)
	losers := make([]float64, n)
	for i, y := range r.Years {
		years[i] = float64(y.Year)
		debt[i] = y.TotalDebtBeforeRepayment.InexactFloat64()
		unpaid[i] = y.UnpaidDebtCarriedOver.InexactFloat64()
		winners[i] = float64(y.Winners)
		losers[i] = float64(y.Losers)
	}

	charts := []struct {
		file, title, yLabel string
		width, height       vg.Length
		series              []series
	}{
		{
			file: DebtChartFile, title: "Randomized Debt Simulation: Debt Accumulation", yLabel: "Debt (dinars)",
			width: 12 * vg.Inch, height: 6 * vg.Inch,
			series: []series{
				{"Debt before repayment", red, debt},
				{"Unpaid Debt Carried Over", blue, unpaid},
			},
		},
		{
			file:   UnpaidChartFile,
			title:  fmt.Sprintf("Percentage of Unpaid Debt Relative to Principal (%.0f dinars)", s.TotalPrincipal),
			yLabel: "Unpaid Debt (%)",
			width:  10 * vg.Inch, height: 6 * vg.Inch,
			series: []series{
				{"% Unpaid Debt to Principal", magenta, s.PercentUnpaid},
			},
		},
		{
			file: WinnersChartFile, title: "Number of Winners and Losers Each Year", yLabel: "Number of Villagers",
			width: 10 * vg.Inch, height: 6 * vg.Inch,
			series: []series{
				{"Winners (Fully Repaid)", green, winners},
				{"Losers (Not Fully Repaid)", red, losers},
			},
		},
	}

	for _, c := range charts {
		path := filepath.Join(dir, c.file)
		if err := saveLineChart(path, c.title, c.yLabel, years, c.series, c.width, c.height); err != nil {
			return fmt.Errorf("rendering %s: %w", c.file, err)
		}
		logrus.Debugf("Successfully wrote chart to '%s'", path)
	}
	return nil
}

func saveLineChart(path, title, yLabel string, xs []float64, lines []series, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for _, s := range lines {
		xys := make(plotter.XYs, len(xs))
		for i := range xs {
			xys[i].X = xs[i]
			xys[i].Y = s.ys[i]
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = s.color
		points.Color = s.color
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.label, line, points)
	}
	return p.Save(width, height, path)
}
