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

// Package reconstruction rebuilds a full density/CDF/quantile surface from a
// quantile set alone, without access to the distribution that produced it.
// The cumulative function is known exactly at every quantile location, so
// the CDF is interpolated through those control points with a monotone
// shape-preserving cubic and the density is its slope.
package reconstruction

import (
	"fmt"
	"math"

	"github.com/densiq/densiq/density/quantile"
	"gonum.org/v1/gonum/interp"
)

// Density is the distribution reconstructed from a quantile set. It
// satisfies the same Prob/CDF/Quantile contract as an analytic
// distribution, so the two are interchangeable to callers.
type Density struct {
	fwd interp.FritschButland // cumulative probability over location
	inv interp.FritschButland // location over cumulative probability
	lo  float64               // augmented support, carries CDF 0
	hi  float64               // augmented support, carries CDF 1
}

// FromSet builds the reconstruction from a quantile set. At least two pairs
// are required to define a slope.
//
// The support is extended beyond the outermost quantile locations by one
// tail knot per side. The boundary slope of each tail is taken from the
// outermost quantile gap, and the tail width is chosen so that a linear
// decay of that slope to zero carries exactly the cumulative probability
// missing outside the quantile range. The interpolant through the augmented
// knots therefore spans the full [0,1] probability range and the
// reconstruction integrates to one.
func FromSet(s *quantile.Set) (*Density, error) {
	if s == nil {
		return nil, fmt.Errorf("FromSet: no quantile set")
	}
	n := s.Len()
	if n < 2 {
		return nil, fmt.Errorf("FromSet: need at least 2 quantile pairs, got %d", n)
	}
	cuts := s.CutPoints()
	locs := s.Locations()

	dLo := (cuts[1] - cuts[0]) / (locs[1] - locs[0])
	dHi := (cuts[n-1] - cuts[n-2]) / (locs[n-1] - locs[n-2])
	wLo := 2 * cuts[0] / dLo
	wHi := 2 * (1 - cuts[n-1]) / dHi

	xs := make([]float64, 0, n+2)
	ps := make([]float64, 0, n+2)
	xs = append(xs, locs[0]-wLo)
	ps = append(ps, 0)
	xs = append(xs, locs...)
	ps = append(ps, cuts...)
	xs = append(xs, locs[n-1]+wHi)
	ps = append(ps, 1)

	d := &Density{lo: xs[0], hi: xs[len(xs)-1]}
	if err := d.fwd.Fit(xs, ps); err != nil {
		return nil, fmt.Errorf("FromSet: fitting CDF interpolant: %v", err)
	}
	if err := d.inv.Fit(ps, xs); err != nil {
		return nil, fmt.Errorf("FromSet: fitting quantile interpolant: %v", err)
	}
	return d, nil
}

// Prob returns the reconstructed density at x: the slope of the CDF
// interpolant inside the support, zero outside it. The result is finite and
// non-negative for every finite or infinite x.
func (d *Density) Prob(x float64) float64 {
	if math.IsNaN(x) || x <= d.lo || x >= d.hi {
		return 0
	}
	return math.Max(0, d.fwd.PredictDerivative(x))
}

// CDF returns the reconstructed cumulative probability at x.
func (d *Density) CDF(x float64) float64 {
	if x <= d.lo {
		return 0
	}
	if x >= d.hi {
		return 1
	}
	return math.Min(1, math.Max(0, d.fwd.Predict(x)))
}

// Quantile returns the location at which the reconstructed CDF reaches
// cumulative probability p. Probabilities at or beyond 0 and 1 map to the
// respective support boundary.
func (d *Density) Quantile(p float64) float64 {
	if p <= 0 {
		return d.lo
	}
	if p >= 1 {
		return d.hi
	}
	return math.Min(d.hi, math.Max(d.lo, d.inv.Predict(p)))
}

// Support reports the augmented range over which the reconstruction carries
// probability mass.
func (d *Density) Support() (float64, float64) {
	return d.lo, d.hi
}
