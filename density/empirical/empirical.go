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

// Package empirical turns raw sample draws into a reconstructed density.
// The sorted samples form an empirical CDF with midrank cumulative
// probabilities; the curve is reduced to a manageable number of control
// points and handed to the quantile reconstruction.
package empirical

import (
	"fmt"
	"math"
	"sort"

	"github.com/densiq/densiq/density/quantile"
	"github.com/densiq/densiq/density/reconstruction"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// maxControlPoints caps the number of empirical CDF control points kept for
// interpolation.
const maxControlPoints = 300

// FromSamples reconstructs a density from sample draws. Each sorted sample
// receives the midrank cumulative probability (i+0.5)/n; tied values
// collapse to the highest midrank of the run. Curves larger than
// maxControlPoints are reduced with the Visvalingam-Whyatt algorithm before
// interpolation. At least two distinct finite values are required.
func FromSamples(xs []float64) (*reconstruction.Density, error) {
	if len(xs) < 2 {
		return nil, fmt.Errorf("FromSamples: need at least 2 samples, got %d", len(xs))
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("FromSamples: sample at index %d is not finite", i)
		}
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	ls := orb.LineString{}
	for i, x := range sorted {
		p := (float64(i) + 0.5) / n
		if len(ls) > 0 && x == ls[len(ls)-1][0] {
			ls[len(ls)-1][1] = p
			continue
		}
		ls = append(ls, orb.Point{x, p})
	}
	if len(ls) < 2 {
		return nil, fmt.Errorf("FromSamples: need at least 2 distinct values")
	}
	if len(ls) > maxControlPoints {
		simplifier := simplify.VisvalingamKeep(maxControlPoints)
		ls = simplifier.Simplify(ls).(orb.LineString)
	}

	cuts := make([]float64, len(ls))
	locs := make([]float64, len(ls))
	for i, pt := range ls {
		locs[i] = pt[0]
		cuts[i] = pt[1]
	}
	s, err := quantile.New(cuts, locs)
	if err != nil {
		return nil, fmt.Errorf("FromSamples: %v", err)
	}
	return reconstruction.FromSet(s)
}
