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

package quantile

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// flatQuantiler is a degenerate distribution whose percent-point function
// is constant.
type flatQuantiler struct {
	at float64
}

func (f flatQuantiler) Quantile(float64) float64 {
	return f.at
}

func TestQuantile_EvenCuts(t *testing.T) {
	t.Run("Deciles", func(t *testing.T) {
		cuts, err := EvenCuts(10)
		if err != nil {
			t.Fatalf("EvenCuts(10): unexpected failure: %v", err)
		}
		if len(cuts) != 9 {
			t.Fatalf("EvenCuts(10): want 9 cut points, got %d", len(cuts))
		}
		for i, p := range cuts {
			if !almostEqual(p, float64(i+1)/10) {
				t.Fatalf("EvenCuts(10): cut %d: want %g, got %g", i, float64(i+1)/10, p)
			}
		}
	})
	t.Run("Quartiles", func(t *testing.T) {
		cuts, err := EvenCuts(25)
		if err != nil {
			t.Fatalf("EvenCuts(25): unexpected failure: %v", err)
		}
		if len(cuts) != 3 {
			t.Fatalf("EvenCuts(25): want 3 cut points, got %d", len(cuts))
		}
		if !almostEqual(cuts[1], 0.5) {
			t.Fatalf("EvenCuts(25): middle cut: want 0.5, got %g", cuts[1])
		}
	})
	t.Run("FractionalSpacing", func(t *testing.T) {
		cuts, err := EvenCuts(12.5)
		if err != nil {
			t.Fatalf("EvenCuts(12.5): unexpected failure: %v", err)
		}
		if len(cuts) != 7 {
			t.Fatalf("EvenCuts(12.5): want 7 cut points, got %d", len(cuts))
		}
	})
}

func TestQuantile_EvenCutsRejects(t *testing.T) {
	for _, percent := range []float64{37, 33.3, 0, -10, 100, 150, math.NaN()} {
		if _, err := EvenCuts(percent); err == nil {
			t.Fatalf("EvenCuts(%v): expected failure", percent)
		}
	}
}

func TestQuantile_CountCuts(t *testing.T) {
	cuts, err := CountCuts(9)
	if err != nil {
		t.Fatalf("CountCuts(9): unexpected failure: %v", err)
	}
	if len(cuts) != 9 {
		t.Fatalf("CountCuts(9): want 9 cut points, got %d", len(cuts))
	}
	if !almostEqual(cuts[0], 0.1) || !almostEqual(cuts[8], 0.9) {
		t.Fatalf("CountCuts(9): want range [0.1, 0.9], got [%g, %g]", cuts[0], cuts[8])
	}
	if _, err := CountCuts(0); err == nil {
		t.Fatalf("CountCuts(0): expected failure")
	}
}

func TestQuantile_Cuts(t *testing.T) {
	t.Run("DropsRepeats", func(t *testing.T) {
		cuts, err := Cuts([]float64{0.25, 0.25, 0.5, 0.75, 0.75})
		if err != nil {
			t.Fatalf("Cuts: unexpected failure: %v", err)
		}
		if len(cuts) != 3 {
			t.Fatalf("Cuts: want 3 cut points after deduplication, got %d", len(cuts))
		}
	})
	t.Run("RejectsDescending", func(t *testing.T) {
		if _, err := Cuts([]float64{0.5, 0.25}); err == nil {
			t.Fatalf("Cuts: expected failure for descending cut points")
		}
	})
	t.Run("RejectsOutOfRange", func(t *testing.T) {
		for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
			if _, err := Cuts([]float64{p}); err == nil {
				t.Fatalf("Cuts(%v): expected failure", p)
			}
		}
	})
	t.Run("RejectsEmpty", func(t *testing.T) {
		if _, err := Cuts(nil); err == nil {
			t.Fatalf("Cuts: expected failure for empty list")
		}
	})
}

func TestQuantile_FromDistributionNormalDeciles(t *testing.T) {
	cuts, err := EvenCuts(10)
	if err != nil {
		t.Fatalf("EvenCuts(10): unexpected failure: %v", err)
	}
	s, err := FromDistribution(distuv.Normal{Mu: 0, Sigma: 1}, cuts)
	if err != nil {
		t.Fatalf("FromDistribution: unexpected failure: %v", err)
	}
	if s.Len() != 9 {
		t.Fatalf("FromDistribution: want 9 pairs, got %d", s.Len())
	}
	locs := s.Locations()
	for i := 0; i < len(locs)/2; i++ {
		if !almostEqual(locs[i], -locs[len(locs)-1-i]) {
			t.Fatalf("decile locations not antisymmetric: %g vs %g", locs[i], locs[len(locs)-1-i])
		}
	}
	if !almostEqual(locs[4], 0) {
		t.Fatalf("median location: want 0, got %g", locs[4])
	}
	if math.Abs(locs[8]-1.2815515655446004) > epsilon {
		t.Fatalf("0.9 decile location: want 1.2815515655, got %g", locs[8])
	}
}

func TestQuantile_FromDistributionRejectsFlatPPF(t *testing.T) {
	cuts, err := EvenCuts(25)
	if err != nil {
		t.Fatalf("EvenCuts(25): unexpected failure: %v", err)
	}
	if _, err := FromDistribution(flatQuantiler{at: 1}, cuts); err == nil {
		t.Fatalf("FromDistribution: expected failure for a flat percent-point function")
	}
}

func TestQuantile_New(t *testing.T) {
	t.Run("LengthMismatch", func(t *testing.T) {
		if _, err := New([]float64{0.5}, []float64{1, 2}); err == nil {
			t.Fatalf("New: expected failure for mismatched lengths")
		}
	})
	t.Run("LocationTie", func(t *testing.T) {
		if _, err := New([]float64{0.25, 0.75}, []float64{1, 1}); err == nil {
			t.Fatalf("New: expected failure for tied locations")
		}
	})
	t.Run("NonFiniteLocation", func(t *testing.T) {
		if _, err := New([]float64{0.25, 0.75}, []float64{1, math.Inf(1)}); err == nil {
			t.Fatalf("New: expected failure for infinite location")
		}
	})
}

func TestQuantile_SetAccessorsCopy(t *testing.T) {
	s, err := New([]float64{0.25, 0.5, 0.75}, []float64{-1, 0, 1})
	if err != nil {
		t.Fatalf("New: unexpected failure: %v", err)
	}
	locs := s.Locations()
	locs[0] = 42
	if s.Location(0) != -1 {
		t.Fatalf("Locations: mutating the copy changed the set")
	}
	pts := s.Points()
	if pts[1] != [2]float64{0, 0.5} {
		t.Fatalf("Points: want (0, 0.5), got (%g, %g)", pts[1][0], pts[1][1])
	}
}
