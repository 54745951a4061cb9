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

// Package density represents one-dimensional continuous probability
// distributions by finite quantile sets, reconstructs densities from such
// sets, and measures how well a reconstruction tracks the original. The PDF
// type is the entry point; the subpackages hold the numerical kernels.
package density

// Distribution is the capability contract for a one-dimensional continuous
// probability distribution: Prob is the density at a point, CDF the
// cumulative distribution function, and Quantile its generalized inverse
// (the percent-point function). The continuous distributions of gonum's
// distuv package satisfy the contract as-is.
//
//go:generate mockgen -source density.go -destination distribution_mock.go -package density
type Distribution interface {
	Prob(x float64) float64
	CDF(x float64) float64
	Quantile(p float64) float64
}

// ProbEach evaluates the density of d at every point of xs. A scalar query
// is the length-1 case.
func ProbEach(d Distribution, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = d.Prob(x)
	}
	return ys
}

// CDFEach evaluates the cumulative distribution function of d at every
// point of xs.
func CDFEach(d Distribution, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = d.CDF(x)
	}
	return ys
}

// QuantileEach evaluates the percent-point function of d at every
// cumulative probability of ps.
func QuantileEach(d Distribution, ps []float64) []float64 {
	xs := make([]float64, len(ps))
	for i, p := range ps {
		xs[i] = d.Quantile(p)
	}
	return xs
}
