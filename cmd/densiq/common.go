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

package main

import (
	"github.com/densiq/densiq/density"
	"github.com/densiq/densiq/density/analytic"
	"github.com/densiq/densiq/density/quantile"
	"github.com/densiq/densiq/logger"
	"github.com/densiq/densiq/utils"
	"gonum.org/v1/gonum/stat/distuv"
)

// newTruth assembles the analytic truth distribution from the component
// flags: a single normal, or a weighted mixture when --mean repeats.
func newTruth(cfg *utils.Config) (density.Distribution, error) {
	if len(cfg.Means) == 1 {
		return distuv.Normal{Mu: cfg.Means[0], Sigma: cfg.Sigmas[0]}, nil
	}
	components := make([]analytic.Component, len(cfg.Means))
	for i := range cfg.Means {
		w := 1.0
		if len(cfg.Weights) > 0 {
			w = cfg.Weights[i]
		}
		components[i] = analytic.Component{
			Weight: w,
			Dist:   distuv.Normal{Mu: cfg.Means[i], Sigma: cfg.Sigmas[i]},
		}
	}
	m, err := analytic.NewMixture(components...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// cutPoints resolves the quantization cut points; explicit --cuts win over
// the --percent spacing.
func cutPoints(cfg *utils.Config) ([]float64, error) {
	if len(cfg.CutPoints) > 0 {
		return cfg.CutPoints, nil
	}
	return quantile.EvenCuts(cfg.Percent)
}

// newQuantizedPDF builds a facade around the configured truth and quantizes
// it at the configured cut points.
func newQuantizedPDF(cfg *utils.Config, log logger.Logger) (*density.PDF, error) {
	truth, err := newTruth(cfg)
	if err != nil {
		return nil, err
	}
	p, err := density.NewFrom(density.Sources{Truth: truth}, log)
	if err != nil {
		return nil, err
	}
	cuts, err := cutPoints(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := p.QuantizeAt(cuts); err != nil {
		return nil, err
	}
	return p, nil
}
