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

import "github.com/cockroachdb/errors"

// Error kinds reported by the public operations of this package. The cause
// keeps its own message; the kind is attached so that callers can match it
// with errors.Is.
var (
	// ErrInvalidArgument covers malformed quantile requests, non-monotone or
	// out-of-range cut points, bad integration intervals, and construction
	// without any representation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientData flags a representation with too few points to
	// reconstruct a density, e.g. fewer than two quantile pairs.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingTruth flags an operation that needs the truth distribution
	// on a PDF that was built without one.
	ErrMissingTruth = errors.New("missing truth distribution")

	// ErrMissingData flags an evaluation with no populated representation.
	ErrMissingData = errors.New("no density representation available")

	// ErrDivergenceUndefined flags a Kullback-Leibler comparison whose
	// denominator vanishes where the numerator does not, or whose window
	// carries no probability mass.
	ErrDivergenceUndefined = errors.New("divergence undefined")

	// ErrNonFinite flags an internal defect: a numerical kernel produced
	// NaN or an unexpected infinity for well-posed inputs.
	ErrNonFinite = errors.New("non-finite numerical result")
)

// classify attaches an error kind to err; errors.Is reports both err's own
// chain and the kind afterwards.
func classify(err error, kind error) error {
	return errors.Mark(err, kind)
}
