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

// Package analytic supplies distribution helpers built on top of closed-form
// components: weighted mixtures and inverse-transform sampling. Single
// analytic families come straight from gonum's distuv package and need no
// wrapper.
package analytic

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/densiq/densiq/density"
)

const (
	// bisectSteps caps the quantile bisection; 200 halvings exhaust double
	// precision on any bracket.
	bisectSteps = 200
	// bisectTol is the relative bracket width at which bisection stops.
	bisectTol = 1e-13
)

// Quantiler is the part of a distribution inverse-transform sampling needs.
type Quantiler interface {
	Quantile(p float64) float64
}

// Component weighs a distribution inside a Mixture.
type Component struct {
	Weight float64
	Dist   density.Distribution
}

// Mixture is a finite weighted combination of component distributions. It
// satisfies the same Prob/CDF/Quantile contract as its components.
type Mixture struct {
	components []Component // weights normalized to sum to one
}

// NewMixture builds a weighted mixture. Weights must be positive and
// finite; they are normalized so the mixture integrates to one.
func NewMixture(components ...Component) (*Mixture, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("NewMixture: no components")
	}
	total := 0.0
	for i, c := range components {
		if c.Dist == nil {
			return nil, fmt.Errorf("NewMixture: component %d has no distribution", i)
		}
		if !(c.Weight > 0) || math.IsInf(c.Weight, 0) {
			return nil, fmt.Errorf("NewMixture: component %d weight %v must be positive and finite", i, c.Weight)
		}
		total += c.Weight
	}
	m := &Mixture{components: make([]Component, len(components))}
	for i, c := range components {
		m.components[i] = Component{Weight: c.Weight / total, Dist: c.Dist}
	}
	return m, nil
}

// Prob returns the mixture density at x.
func (m *Mixture) Prob(x float64) float64 {
	p := 0.0
	for _, c := range m.components {
		p += c.Weight * c.Dist.Prob(x)
	}
	return p
}

// CDF returns the mixture cumulative probability at x.
func (m *Mixture) CDF(x float64) float64 {
	p := 0.0
	for _, c := range m.components {
		p += c.Weight * c.Dist.CDF(x)
	}
	return p
}

// Quantile returns the location at which the mixture CDF reaches p. The
// component quantiles bracket the answer: every component has reached at
// most p at the smallest of them and at least p at the largest, so the
// mixture CDF crosses p in between and bisection converges on the crossing.
// Panics when p is outside [0, 1], like the distuv distributions do.
func (m *Mixture) Quantile(p float64) float64 {
	if p < 0 || p > 1 || math.IsNaN(p) {
		panic("analytic: cumulative probability out of range [0, 1]")
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range m.components {
		q := c.Dist.Quantile(p)
		lo = math.Min(lo, q)
		hi = math.Max(hi, q)
	}
	if p == 0 {
		return lo
	}
	if p == 1 {
		return hi
	}
	if !(lo < hi) {
		return lo
	}
	for i := 0; i < bisectSteps && hi-lo > bisectTol*math.Max(1, math.Abs(lo)+math.Abs(hi)); i++ {
		mid := 0.5 * (lo + hi)
		if m.CDF(mid) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// Sample draws n independent values from d by inverse-transform sampling.
func Sample(rg *rand.Rand, d Quantiler, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		u := rg.Float64()
		for u == 0 {
			u = rg.Float64()
		}
		xs[i] = d.Quantile(u)
	}
	return xs
}
