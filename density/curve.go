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

package density

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// The three read-only series a renderer needs: the truth density on a grid,
// the quantile knots, and the approximated density on a grid. The facade
// issues no rendering calls itself.

// TruthCurve samples the truth density at every grid point, returning
// (location, density) pairs.
func (p *PDF) TruthCurve(grid []float64) ([][2]float64, error) {
	if p.truth == nil {
		return nil, classify(fmt.Errorf("TruthCurve: no truth distribution to sample"), ErrMissingTruth)
	}
	return curve(p.truth, grid), nil
}

// ApproxCurve samples the derived approximation at every grid point,
// building the reconstruction if it does not exist yet.
func (p *PDF) ApproxCurve(grid []float64) ([][2]float64, error) {
	d, err := p.derived()
	if err != nil {
		return nil, err
	}
	return curve(d, grid), nil
}

// TruthCDFCurve samples the truth CDF at every grid point.
func (p *PDF) TruthCDFCurve(grid []float64) ([][2]float64, error) {
	if p.truth == nil {
		return nil, classify(fmt.Errorf("TruthCDFCurve: no truth distribution to sample"), ErrMissingTruth)
	}
	return curveOf(p.truth.CDF, grid), nil
}

// ApproxCDFCurve samples the CDF of the derived approximation at every grid
// point.
func (p *PDF) ApproxCDFCurve(grid []float64) ([][2]float64, error) {
	d, err := p.derived()
	if err != nil {
		return nil, err
	}
	return curveOf(d.CDF, grid), nil
}

// QuantilePoints returns the stored quantile knots as (location, cumulative
// probability) pairs, or nil when no set is stored.
func (p *PDF) QuantilePoints() [][2]float64 {
	if p.quantiles == nil {
		return nil
	}
	return p.quantiles.Points()
}

// Range returns the central window of the preferred representation,
// cutting DefaultRangeCut of probability mass off each tail. Renderers use
// it to pick their grid.
func (p *PDF) Range() (float64, float64, error) {
	d, err := p.active()
	if err != nil {
		return 0, 0, err
	}
	return d.Quantile(DefaultRangeCut), d.Quantile(1 - DefaultRangeCut), nil
}

func curve(d Distribution, grid []float64) [][2]float64 {
	return curveOf(d.Prob, grid)
}

func curveOf(f func(float64) float64, grid []float64) [][2]float64 {
	pts := make([][2]float64, len(grid))
	for i, x := range grid {
		pts[i] = [2]float64{x, f(x)}
	}
	return pts
}

// Compact reduces a series to at most keep points with the
// Visvalingam-Whyatt algorithm, keeping the end points and the overall
// shape. Series already within the budget are returned unchanged.
func Compact(series [][2]float64, keep int) [][2]float64 {
	if keep < 2 || len(series) <= keep {
		return series
	}
	ls := make(orb.LineString, len(series))
	for i, pt := range series {
		ls[i] = orb.Point(pt)
	}
	simplifier := simplify.VisvalingamKeep(keep)
	ls = simplifier.Simplify(ls).(orb.LineString)
	out := make([][2]float64, len(ls))
	for i := range ls {
		out[i] = [2]float64(ls[i])
	}
	return out
}
