// Copyright 2025 the densiq authors
// This file is part of densiq, a quantile-based density approximation toolkit
//
// densiq is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// densiq is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with densiq. If not, see <http://www.gnu.org/licenses/>.

package visualizer

import (
	"fmt"
	"net/http"

	"github.com/densiq/densiq/density"
	"github.com/densiq/densiq/logger"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// HTML references for the rendered pages.
const densityRef = "density-curves"
const cdfRef = "cdf-curves"
const divergenceRef = "divergence-stats"

// MainHtml is the index page.
const MainHtml = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>densiq: Quantile Density Explorer</title>
    <link rel="stylesheet" href="style.css">
    <script src="script.js"></script>
  </head>
  <body>
    <h1>densiq: Quantile Density Explorer</h1>
    <ul>
    <li> <h3> <a href="/` + densityRef + `"> Density Curves </a> </h3> </li>
    <li> <h3> <a href="/` + cdfRef + `"> CDF Curves </a> </h3> </li>
    <li> <h3> <a href="/` + divergenceRef + `"> Divergence Statistics </a> </h3> </li>
    </ul>
</body>
</html>
`

// renderMain renders the main menu.
func renderMain(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprint(w, MainHtml)
}

// convertCurveData converts curve points to chart points.
func convertCurveData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// convertKnotData converts quantile knots to scatter points.
func convertKnotData(data [][2]float64) []opts.ScatterData {
	items := []opts.ScatterData{}
	for _, pair := range data {
		items = append(items, opts.ScatterData{Value: pair, SymbolSize: 8})
	}
	return items
}

// newCurveChart creates a line chart comparing the truth and reconstruction
// series. The truth series may be nil.
func newCurveChart(title, subtitle string, truth, approx [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme: types.ThemeChalk,
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}))
	if truth != nil {
		chart.AddSeries("Truth", convertCurveData(truth))
	}
	chart.AddSeries("Reconstruction", convertCurveData(approx))
	return chart
}

// renderDensity renders the density comparison.
func renderDensity(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	subtitle := fmt.Sprintf("on [%.4g, %.4g]", view.lower, view.upper)
	chart := newCurveChart("Density Curves", subtitle, view.truthDensity, view.approxDensity)
	_ = chart.Render(w)
}

// renderCDF renders the CDF comparison with the quantile knots overlaid.
// The knots sit exactly on the reconstructed CDF.
func renderCDF(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	subtitle := fmt.Sprintf("on [%.4g, %.4g]", view.lower, view.upper)
	chart := newCurveChart("CDF Curves", subtitle, view.truthCDF, view.approxCDF)
	if len(view.knots) > 0 {
		scatter := charts.NewScatter()
		scatter.AddSeries("Quantile Knots", convertKnotData(view.knots))
		chart.Overlap(scatter)
	}
	_ = chart.Render(w)
}

// convertDivergenceLabel produces the window labels.
func convertDivergenceLabel(data []metricDatum) []string {
	items := []string{}
	for i := 0; i < len(data); i++ {
		items = append(items, data[i].label)
	}
	return items
}

// convertDivergenceData produces one divergence series.
func convertDivergenceData(data []metricDatum, pick func(metricDatum) float64) []opts.BarData {
	items := []opts.BarData{}
	for i := 0; i < len(data); i++ {
		items = append(items, opts.BarData{Value: pick(data[i])})
	}
	return items
}

// renderDivergence renders the window divergence readouts.
func renderDivergence(w http.ResponseWriter, r *http.Request) {
	view, err := currentView()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if len(view.divergences) == 0 {
		http.Error(w, "visualizer: no truth distribution to compare against", http.StatusServiceUnavailable)
		return
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Divergence Statistics",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Divergence Statistics",
			Subtitle: "reconstruction against truth over widening windows",
		}))
	bar.SetXAxis(convertDivergenceLabel(view.divergences)).
		AddSeries("KLD [nats]", convertDivergenceData(view.divergences, func(m metricDatum) float64 { return m.kld })).
		AddSeries("RMS", convertDivergenceData(view.divergences, func(m metricDatum) float64 { return m.rms }))
	_ = bar.Render(w)
}

// FireUpWeb produces a view model for the density facade and visualizes it
// with a local web-server.
func FireUpWeb(p *density.PDF, addr string, log logger.Logger) error {
	if err := setViewState(p); err != nil {
		return err
	}
	log.Noticef("serving density charts on http://%s", addr)

	// create web server
	http.HandleFunc("/", renderMain)
	http.HandleFunc("/"+densityRef, renderDensity)
	http.HandleFunc("/"+cdfRef, renderCDF)
	http.HandleFunc("/"+divergenceRef, renderDivergence)
	return http.ListenAndServe(addr, nil)
}
