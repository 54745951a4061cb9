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

	"github.com/cockroachdb/errors"
	"github.com/densiq/densiq/density"
	"github.com/densiq/densiq/density/metrics"
	"gonum.org/v1/gonum/floats"
)

// windowCuts are the symmetric tail cuts of the widening comparison
// windows: each window keeps the named share of central probability mass of
// the truth distribution.
var windowCuts = []struct {
	label string
	cut   float64
}{
	{"central 50%", 0.25},
	{"central 80%", 0.10},
	{"central 99.8%", density.DefaultRangeCut},
}

// metricDatum is one divergence readout of the approximation against the
// truth over one window.
type metricDatum struct {
	label string
	kld   float64
	rms   float64
}

// viewState is the immutable snapshot the handlers render from. The truth
// series and the divergences stay empty when the facade carries no truth
// distribution.
type viewState struct {
	truthDensity  [][2]float64
	approxDensity [][2]float64
	truthCDF      [][2]float64
	approxCDF     [][2]float64
	knots         [][2]float64
	divergences   []metricDatum
	lower, upper  float64
}

// buildViewState samples the facade's curves over its plotting range and
// computes the window divergences. The curves are compacted to the
// rendering budget before they reach a chart.
func buildViewState(p *density.PDF) (*viewState, error) {
	lower, upper, err := p.Range()
	if err != nil {
		return nil, fmt.Errorf("visualizer: plotting range: %w", err)
	}
	grid := make([]float64, metrics.DefaultGridPoints)
	floats.Span(grid, lower, upper)

	approxDensity, err := p.ApproxCurve(grid)
	if err != nil {
		return nil, fmt.Errorf("visualizer: density curve: %w", err)
	}
	approxCDF, err := p.ApproxCDFCurve(grid)
	if err != nil {
		return nil, fmt.Errorf("visualizer: CDF curve: %w", err)
	}

	state := &viewState{
		approxDensity: density.Compact(approxDensity, density.NumCurvePoints),
		approxCDF:     density.Compact(approxCDF, density.NumCurvePoints),
		knots:         p.QuantilePoints(),
		lower:         lower,
		upper:         upper,
	}

	truthDensity, err := p.TruthCurve(grid)
	switch {
	case err == nil:
		state.truthDensity = density.Compact(truthDensity, density.NumCurvePoints)
		truthCDF, err := p.TruthCDFCurve(grid)
		if err != nil {
			return nil, fmt.Errorf("visualizer: truth CDF curve: %w", err)
		}
		state.truthCDF = density.Compact(truthCDF, density.NumCurvePoints)
		divergences, err := computeDivergences(p)
		if err != nil {
			return nil, err
		}
		state.divergences = divergences
	case errors.Is(err, density.ErrMissingTruth):
		// approximation only
	default:
		return nil, fmt.Errorf("visualizer: truth curve: %w", err)
	}
	return state, nil
}

// computeDivergences reads the truth-relative divergences over the widening
// central windows.
func computeDivergences(p *density.PDF) ([]metricDatum, error) {
	d, err := p.Dist()
	if err != nil {
		return nil, fmt.Errorf("visualizer: window bounds: %w", err)
	}
	out := make([]metricDatum, 0, len(windowCuts))
	for _, w := range windowCuts {
		lo := d.Quantile(w.cut)
		hi := d.Quantile(1 - w.cut)
		kld, err := p.KLD(lo, hi, metrics.Config{})
		if err != nil {
			return nil, fmt.Errorf("visualizer: divergence on the %s window: %w", w.label, err)
		}
		rms, err := p.RMS(lo, hi, metrics.Config{})
		if err != nil {
			return nil, fmt.Errorf("visualizer: distance on the %s window: %w", w.label, err)
		}
		out = append(out, metricDatum{label: w.label, kld: kld, rms: rms})
	}
	return out, nil
}
