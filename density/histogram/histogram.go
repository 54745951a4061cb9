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

// Package histogram represents a distribution as a piecewise-constant
// density over explicit bin edges. The cumulative function is the
// piecewise-linear polyline through the accumulated bin masses, and the
// quantile function is its linear inverse.
package histogram

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// CDFer is the part of a distribution the binning needs.
type CDFer interface {
	CDF(x float64) float64
}

// Histogram is an immutable binned density. Heights are normalized at
// construction so the density integrates to one over the bin range.
type Histogram struct {
	edges   []float64 // len(heights)+1, strictly increasing
	heights []float64 // non-negative densities per bin
	cum     []float64 // cumulative mass at each edge, cum[0]=0, cum[last]=1
}

// New builds a histogram from bin edges and per-bin density heights. Edges
// must be strictly increasing and finite, heights non-negative and finite
// with a positive total mass. Heights are rescaled so the total mass is
// exactly one.
func New(edges, heights []float64) (*Histogram, error) {
	if len(edges) != len(heights)+1 {
		return nil, fmt.Errorf("New: %d edges for %d bins, want one more edge than bins", len(edges), len(heights))
	}
	if len(heights) < 1 {
		return nil, fmt.Errorf("New: no bins")
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("New: edge at index %d is not finite", i)
		}
		if i > 0 && e <= edges[i-1] {
			return nil, fmt.Errorf("New: edges not strictly increasing at index %d", i)
		}
	}
	mass := 0.0
	for i, h := range heights {
		if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
			return nil, fmt.Errorf("New: height at index %d must be finite and non-negative", i)
		}
		mass += h * (edges[i+1] - edges[i])
	}
	if mass <= 0 {
		return nil, fmt.Errorf("New: total mass %g must be positive", mass)
	}

	h := &Histogram{
		edges:   append([]float64(nil), edges...),
		heights: make([]float64, len(heights)),
		cum:     make([]float64, len(edges)),
	}
	for i, v := range heights {
		h.heights[i] = v / mass
		h.cum[i+1] = h.cum[i] + h.heights[i]*(edges[i+1]-edges[i])
	}
	h.cum[len(h.cum)-1] = 1
	return h, nil
}

// FromDistribution bins a distribution over the given edges: each height is
// the cumulative-probability difference across the bin divided by the bin
// width. Mass outside the edge range is discarded and the remainder is
// renormalized by New.
func FromDistribution(d CDFer, edges []float64) (*Histogram, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("FromDistribution: need at least 2 edges, got %d", len(edges))
	}
	heights := make([]float64, len(edges)-1)
	for i := range heights {
		delta := d.CDF(edges[i+1]) - d.CDF(edges[i])
		heights[i] = math.Max(0, delta) / (edges[i+1] - edges[i])
	}
	return New(edges, heights)
}

// UniformEdges returns n+1 equally spaced edges covering [lo, hi].
func UniformEdges(lo, hi float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("UniformEdges: bin count %d must be positive", n)
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("UniformEdges: range [%g, %g] must be finite and ascending", lo, hi)
	}
	return floats.Span(make([]float64, n+1), lo, hi), nil
}

// Len returns the number of bins.
func (h *Histogram) Len() int {
	return len(h.heights)
}

// Prob returns the density at x: the height of the bin containing x, zero
// outside the bin range.
func (h *Histogram) Prob(x float64) float64 {
	if math.IsNaN(x) || x < h.edges[0] || x > h.edges[len(h.edges)-1] {
		return 0
	}
	for i := range h.heights {
		if x < h.edges[i+1] {
			return h.heights[i]
		}
	}
	return h.heights[len(h.heights)-1]
}

// CDF returns the cumulative probability at x by walking the polyline
// through the accumulated bin masses.
func (h *Histogram) CDF(x float64) float64 {
	if x <= h.edges[0] {
		return 0
	}
	last := len(h.edges) - 1
	if x >= h.edges[last] {
		return 1
	}
	for i := 0; i < last; i++ {
		if x < h.edges[i+1] {
			return h.cum[i] + h.heights[i]*(x-h.edges[i])
		}
	}
	return 1
}

// Quantile returns the location at which the cumulative probability reaches
// p. Probabilities at or beyond 0 and 1 map to the corresponding edge of
// the bin range.
func (h *Histogram) Quantile(p float64) float64 {
	if p <= 0 {
		return h.edges[0]
	}
	if p >= 1 {
		return h.edges[len(h.edges)-1]
	}
	for i := range h.heights {
		if h.cum[i+1] >= p {
			if h.heights[i] <= 0 {
				return h.edges[i]
			}
			return h.edges[i] + (p-h.cum[i])/h.heights[i]
		}
	}
	return h.edges[len(h.edges)-1]
}

// Edges returns a copy of the bin edges.
func (h *Histogram) Edges() []float64 {
	return append([]float64(nil), h.edges...)
}

// Heights returns a copy of the normalized bin densities.
func (h *Histogram) Heights() []float64 {
	return append([]float64(nil), h.heights...)
}

// Points returns the cumulative polyline as (location, cumulative
// probability) pairs in plotting order.
func (h *Histogram) Points() [][2]float64 {
	pts := make([][2]float64, len(h.edges))
	for i, e := range h.edges {
		pts[i] = [2]float64{e, h.cum[i]}
	}
	return pts
}
