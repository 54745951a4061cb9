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

// Package quantile derives ordered quantile sets from a distribution. A
// quantile set pairs strictly increasing cumulative-probability cut points
// in (0,1) with the strictly increasing locations at which the distribution
// reaches them. All functions are pure and deterministic.
package quantile

import (
	"fmt"
	"math"
)

// Quantiler is the part of a distribution the quantizer needs: the
// percent-point function mapping a cumulative probability to a location.
type Quantiler interface {
	Quantile(p float64) float64
}

// divisorEps bounds how far 100/percent may deviate from a whole number
// before an evenly spaced request is rejected.
const divisorEps = 1e-9

// Set is an immutable ordered sequence of (cut point, location) pairs.
// Construct one through New or FromDistribution; the accessors return
// copies so a set can never be modified after validation.
type Set struct {
	cuts      []float64
	locations []float64
}

// EvenCuts returns the interior cut points of a uniform partition of (0,1)
// with the given percent spacing: percent/100, 2*percent/100, and so on.
// The end points 0 and 1 are excluded; they map to the open boundary of the
// support. The request fails when percent does not evenly divide 100.
func EvenCuts(percent float64) ([]float64, error) {
	if !(percent > 0 && percent < 100) {
		return nil, fmt.Errorf("EvenCuts: percent %v outside (0, 100)", percent)
	}
	parts := 100 / percent
	m := math.Round(parts)
	if math.Abs(parts-m) > divisorEps {
		return nil, fmt.Errorf("EvenCuts: percent %v does not evenly divide 100", percent)
	}
	cuts := make([]float64, int(m)-1)
	for i := range cuts {
		cuts[i] = float64(i+1) / m
	}
	return cuts, nil
}

// CountCuts returns n evenly spaced interior cut points i/(n+1) for
// i = 1..n.
func CountCuts(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("CountCuts: count %d must be positive", n)
	}
	cuts := make([]float64, n)
	m := float64(n + 1)
	for i := range cuts {
		cuts[i] = float64(i+1) / m
	}
	return cuts, nil
}

// Cuts validates an explicit list of cut points. Exact repeats are dropped;
// the remaining values must be strictly increasing within (0, 1).
func Cuts(ps []float64) ([]float64, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("Cuts: empty cut point list")
	}
	uniq := make([]float64, 0, len(ps))
	seen := make(map[float64]struct{}, len(ps))
	for _, p := range ps {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	for i, p := range uniq {
		if !(p > 0 && p < 1) {
			return nil, fmt.Errorf("Cuts: cut point %v outside (0, 1)", p)
		}
		if i > 0 && p <= uniq[i-1] {
			return nil, fmt.Errorf("Cuts: cut points not ascending at %v", p)
		}
	}
	return uniq, nil
}

// New builds a validated quantile set from matching cut-point and location
// sequences. Cut points must be strictly increasing within (0,1) and
// locations strictly increasing and finite; a location tie would make the
// represented CDF vertical and is rejected as degenerate.
func New(cuts, locations []float64) (*Set, error) {
	if len(cuts) != len(locations) {
		return nil, fmt.Errorf("New: %d cut points for %d locations", len(cuts), len(locations))
	}
	if len(cuts) == 0 {
		return nil, fmt.Errorf("New: empty quantile set")
	}
	for i, p := range cuts {
		if !(p > 0 && p < 1) {
			return nil, fmt.Errorf("New: cut point %v outside (0, 1)", p)
		}
		if i > 0 && p <= cuts[i-1] {
			return nil, fmt.Errorf("New: cut points not ascending at index %d", i)
		}
	}
	for i, x := range locations {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("New: location at index %d is not finite", i)
		}
		if i > 0 && x <= locations[i-1] {
			return nil, fmt.Errorf("New: locations not strictly increasing at index %d", i)
		}
	}
	return &Set{
		cuts:      append([]float64(nil), cuts...),
		locations: append([]float64(nil), locations...),
	}, nil
}

// FromDistribution evaluates the percent-point function of q at every cut
// point and returns the resulting quantile set. The cut points pass through
// the same validation as Cuts; a distribution whose percent-point function
// is flat across two cut points yields a location tie and fails.
func FromDistribution(q Quantiler, cuts []float64) (*Set, error) {
	checked, err := Cuts(cuts)
	if err != nil {
		return nil, err
	}
	locations := make([]float64, len(checked))
	for i, p := range checked {
		locations[i] = q.Quantile(p)
	}
	return New(checked, locations)
}

// Len returns the number of quantile pairs.
func (s *Set) Len() int {
	return len(s.cuts)
}

// Cut returns the i-th cumulative-probability cut point.
func (s *Set) Cut(i int) float64 {
	return s.cuts[i]
}

// Location returns the i-th quantile location.
func (s *Set) Location(i int) float64 {
	return s.locations[i]
}

// CutPoints returns a copy of the cumulative-probability cut points.
func (s *Set) CutPoints() []float64 {
	return append([]float64(nil), s.cuts...)
}

// Locations returns a copy of the quantile locations.
func (s *Set) Locations() []float64 {
	return append([]float64(nil), s.locations...)
}

// Points returns the set as (location, cumulative probability) pairs in
// plotting order.
func (s *Set) Points() [][2]float64 {
	pts := make([][2]float64, len(s.cuts))
	for i := range s.cuts {
		pts[i] = [2]float64{s.locations[i], s.cuts[i]}
	}
	return pts
}
