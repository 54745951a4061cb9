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

// Package metrics quantifies the distance between two density surfaces over
// a bounded interval. Both measures evaluate the densities on a shared
// uniform grid and reduce them with trapezoidal quadrature; the interval is
// supplied per call because the compared supports may be unbounded.
package metrics

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// DefaultGridPoints is the grid resolution used when a Config does not
// request one.
const DefaultGridPoints = 1000

var (
	// ErrDivergenceUndefined reports a Kullback-Leibler computation whose
	// result does not exist: a compared density carries no mass on the
	// interval, or the reference density vanishes where the leading one
	// does not while Reject mode is selected.
	ErrDivergenceUndefined = errors.New("divergence undefined")

	// ErrNonFinite reports a NaN or infinity produced where a finite value
	// is required, either by a density evaluation or by the quadrature.
	ErrNonFinite = errors.New("non-finite value")
)

// Evaluator yields density values for the numerical comparison. Both the
// analytic distributions and the reconstructed densities satisfy it.
type Evaluator interface {
	Prob(x float64) float64
}

// Base selects the logarithm base of a divergence result.
type Base byte

const (
	// Nats reports the divergence in units of the natural logarithm.
	Nats Base = iota
	// Bits reports the divergence in units of the base-2 logarithm.
	Bits
)

// ZeroMode selects the behavior when the reference density vanishes at a
// grid point where the leading density does not.
type ZeroMode byte

const (
	// Infinity reports the divergence as +Inf without an error.
	Infinity ZeroMode = iota
	// Reject fails with ErrDivergenceUndefined instead.
	Reject
)

// Config tunes the numerical comparison. The zero value selects
// DefaultGridPoints grid points, Nats and Infinity. GridPoints below 2
// also select the default resolution.
type Config struct {
	GridPoints int
	Base       Base
	ZeroMode   ZeroMode
}

func (c Config) gridPoints() int {
	if c.GridPoints < 2 {
		return DefaultGridPoints
	}
	return c.GridPoints
}

// KullbackLeibler computes the divergence of a from b over [lower, upper],
// in the argument order of D(a||b). Each density is renormalized by its own
// integrated mass on the interval, so truncating an unbounded support does
// not bias the result. Grid points where a vanishes contribute nothing;
// grid points where b vanishes but a does not are governed by the ZeroMode.
func KullbackLeibler(a, b Evaluator, lower, upper float64, cfg Config) (float64, error) {
	grid, err := span(lower, upper, cfg.gridPoints())
	if err != nil {
		return 0, fmt.Errorf("KullbackLeibler: %w", err)
	}
	ya, err := sample(a, grid)
	if err != nil {
		return 0, fmt.Errorf("KullbackLeibler: %w", err)
	}
	yb, err := sample(b, grid)
	if err != nil {
		return 0, fmt.Errorf("KullbackLeibler: %w", err)
	}
	massA := integrate.Trapezoidal(grid, ya)
	massB := integrate.Trapezoidal(grid, yb)
	if !(massA > 0) || !(massB > 0) {
		return 0, fmt.Errorf("KullbackLeibler: %w: densities integrate to %g and %g on [%g, %g]", ErrDivergenceUndefined, massA, massB, lower, upper)
	}

	// Per-point trapezoid weights turn the renormalized densities into two
	// discrete distributions whose masses sum to the quadrature exactly.
	w := cellWeights(grid)
	p := make([]float64, len(grid))
	q := make([]float64, len(grid))
	for i := range grid {
		p[i] = ya[i] * w[i] / massA
		q[i] = yb[i] * w[i] / massB
		if p[i] > 0 && q[i] == 0 {
			if cfg.ZeroMode == Reject {
				return 0, fmt.Errorf("KullbackLeibler: %w: reference density vanishes at %g", ErrDivergenceUndefined, grid[i])
			}
			return math.Inf(1), nil
		}
	}
	v := stat.KullbackLeibler(p, q)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("KullbackLeibler: %w: divergence evaluated to %g", ErrNonFinite, v)
	}
	if cfg.Base == Bits {
		v /= math.Ln2
	}
	return v, nil
}

// RootMeanSquare computes sqrt(mean((a-b)^2)) over a uniform grid spanning
// [lower, upper]. The raw density values are compared without
// renormalization, making the measure symmetric in its arguments.
func RootMeanSquare(a, b Evaluator, lower, upper float64, cfg Config) (float64, error) {
	grid, err := span(lower, upper, cfg.gridPoints())
	if err != nil {
		return 0, fmt.Errorf("RootMeanSquare: %w", err)
	}
	ya, err := sample(a, grid)
	if err != nil {
		return 0, fmt.Errorf("RootMeanSquare: %w", err)
	}
	yb, err := sample(b, grid)
	if err != nil {
		return 0, fmt.Errorf("RootMeanSquare: %w", err)
	}
	sq := make([]float64, len(grid))
	for i := range grid {
		d := ya[i] - yb[i]
		sq[i] = d * d
	}
	v := math.Sqrt(stat.Mean(sq, nil))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("RootMeanSquare: %w: distance evaluated to %g", ErrNonFinite, v)
	}
	return v, nil
}

func span(lower, upper float64, n int) ([]float64, error) {
	if math.IsNaN(lower) || math.IsInf(lower, 0) || math.IsNaN(upper) || math.IsInf(upper, 0) {
		return nil, fmt.Errorf("interval [%g, %g] must be finite", lower, upper)
	}
	if lower >= upper {
		return nil, fmt.Errorf("interval [%g, %g] must be ascending", lower, upper)
	}
	return floats.Span(make([]float64, n), lower, upper), nil
}

func sample(d Evaluator, grid []float64) ([]float64, error) {
	ys := make([]float64, len(grid))
	for i, x := range grid {
		y := d.Prob(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("%w: density at %g is %g", ErrNonFinite, x, y)
		}
		ys[i] = y
	}
	return ys, nil
}

func cellWeights(grid []float64) []float64 {
	w := make([]float64, len(grid))
	last := len(grid) - 1
	w[0] = (grid[1] - grid[0]) / 2
	w[last] = (grid[last] - grid[last-1]) / 2
	for i := 1; i < last; i++ {
		w[i] = (grid[i+1] - grid[i-1]) / 2
	}
	return w
}
