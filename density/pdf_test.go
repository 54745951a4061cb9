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
	"math"
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/densiq/densiq/density/histogram"
	"github.com/densiq/densiq/density/metrics"
	"github.com/densiq/densiq/density/quantile"
	"github.com/densiq/densiq/logger"
	"go.uber.org/mock/gomock"
	"gonum.org/v1/gonum/stat/distuv"
)

const epsilon = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func stdNormal() distuv.Normal {
	return distuv.Normal{Mu: 0, Sigma: 1}
}

// decileSet quantizes the standard normal at the nine decile cut points.
func decileSet(t *testing.T) *quantile.Set {
	t.Helper()
	cuts, err := quantile.EvenCuts(10)
	if err != nil {
		t.Fatalf("EvenCuts: unexpected error: %v", err)
	}
	s, err := quantile.FromDistribution(stdNormal(), cuts)
	if err != nil {
		t.Fatalf("FromDistribution: unexpected error: %v", err)
	}
	return s
}

func TestPDF_NewRequiresARepresentation(t *testing.T) {
	if _, err := NewFrom(Sources{}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty sources: want ErrInvalidArgument, got %v", err)
	}
	if _, err := New(nil, nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("New(nil, nil): want ErrInvalidArgument, got %v", err)
	}
}

func TestPDF_NewRejectsNonFiniteSamples(t *testing.T) {
	tests := map[string][]float64{
		"NaN":    {0, 1, math.NaN()},
		"PosInf": {0, math.Inf(1), 1},
		"NegInf": {math.Inf(-1), 0, 1},
	}
	for name, samples := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewFrom(Sources{Samples: samples}, nil); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPDF_QuantizeStoresTheSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debugf("stored %d quantile points", 9)
	log.EXPECT().Debugf("stored %d quantile points", 4)
	log.EXPECT().Debugf("stored %d quantile points", 1)

	p, err := New(stdNormal(), nil, log)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}

	s, err := p.Quantize(10)
	if err != nil {
		t.Fatalf("Quantize: unexpected error: %v", err)
	}
	if s.Len() != 9 {
		t.Fatalf("decile set size: want 9, got %d", s.Len())
	}
	if got := len(p.QuantilePoints()); got != 9 {
		t.Fatalf("stored points: want 9, got %d", got)
	}

	if s, err = p.QuantizeCount(4); err != nil {
		t.Fatalf("QuantizeCount: unexpected error: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("counted set size: want 4, got %d", s.Len())
	}
	if got := p.QuantilePoints(); len(got) != 4 || !almostEqual(got[0][1], 0.2, epsilon) {
		t.Fatalf("counted set replaced the stored one badly: %v", got)
	}

	if s, err = p.QuantizeAt([]float64{0.5}); err != nil {
		t.Fatalf("QuantizeAt: unexpected error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("explicit set size: want 1, got %d", s.Len())
	}
}

func TestPDF_QuantizeCallsTruthAtCutPoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	truth := NewMockDistribution(ctrl)
	gomock.InOrder(
		truth.EXPECT().Quantile(0.25).Return(-0.6745),
		truth.EXPECT().Quantile(0.5).Return(0.0),
		truth.EXPECT().Quantile(0.75).Return(0.6745),
	)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debugf("stored %d quantile points", 3)

	p, err := New(truth, nil, log)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	s, err := p.Quantize(25)
	if err != nil {
		t.Fatalf("Quantize: unexpected error: %v", err)
	}
	want := []float64{-0.6745, 0, 0.6745}
	for i, x := range s.Locations() {
		if x != want[i] {
			t.Fatalf("location %d: want %v, got %v", i, want[i], x)
		}
	}
}

func TestPDF_QuantizeRejectsBadCutPoints(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	tests := map[string]func() error{
		"UnevenPercent": func() error { _, err := p.Quantize(37); return err },
		"ZeroPercent":   func() error { _, err := p.Quantize(0); return err },
		"FullPercent":   func() error { _, err := p.Quantize(100); return err },
		"ZeroCount":     func() error { _, err := p.QuantizeCount(0); return err },
		"EmptyCuts":     func() error { _, err := p.QuantizeAt(nil); return err },
		"Descending":    func() error { _, err := p.QuantizeAt([]float64{0.5, 0.25}); return err },
		"OutOfRange":    func() error { _, err := p.QuantizeAt([]float64{0, 0.5}); return err },
	}
	for name, call := range tests {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPDF_OperationsWithoutTruth(t *testing.T) {
	p, err := New(nil, decileSet(t), nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	tests := map[string]func() error{
		"Quantize":      func() error { _, err := p.Quantize(10); return err },
		"QuantizeCount": func() error { _, err := p.QuantizeCount(4); return err },
		"QuantizeAt":    func() error { _, err := p.QuantizeAt([]float64{0.5}); return err },
		"Histogramize":  func() error { _, err := p.Histogramize([]float64{-1, 0, 1}); return err },
		"KLD":           func() error { _, err := p.KLD(-1, 1, metrics.Config{}); return err },
		"RMS":           func() error { _, err := p.RMS(-1, 1, metrics.Config{}); return err },
		"TruthCurve":    func() error { _, err := p.TruthCurve([]float64{0}); return err },
	}
	for name, call := range tests {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrMissingTruth) {
				t.Fatalf("want ErrMissingTruth, got %v", err)
			}
		})
	}
}

func TestPDF_FailedQuantizeKeepsStoredSet(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, err = p.Quantize(25); err != nil {
		t.Fatalf("Quantize: unexpected error: %v", err)
	}
	before := p.QuantilePoints()

	if _, err = p.Quantize(37); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Quantize(37): want ErrInvalidArgument, got %v", err)
	}
	after := p.QuantilePoints()
	if len(after) != len(before) {
		t.Fatalf("stored set changed on failure: %d points, was %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Fatalf("stored point %d changed on failure: want %v, got %v", i, before[i], after[i])
		}
	}
}

func TestPDF_HistogramizeStoresTheHistogram(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debugf("stored a histogram of %d bins", 4)

	p, err := New(stdNormal(), nil, log)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	h, err := p.Histogramize([]float64{-2, -1, 0, 1, 2})
	if err != nil {
		t.Fatalf("Histogramize: unexpected error: %v", err)
	}
	if h.Len() != 4 {
		t.Fatalf("histogram bins: want 4, got %d", h.Len())
	}
	if _, err = p.Histogramize([]float64{2, -2}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("descending edges: want ErrInvalidArgument, got %v", err)
	}
}

func TestPDF_ApproximatePrefersTruth(t *testing.T) {
	shifted := distuv.Normal{Mu: 5, Sigma: 1}
	cuts, _ := quantile.EvenCuts(10)
	s, err := quantile.FromDistribution(shifted, cuts)
	if err != nil {
		t.Fatalf("FromDistribution: unexpected error: %v", err)
	}
	p, err := New(stdNormal(), s, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	ys, err := p.Approximate([]float64{0})
	if err != nil {
		t.Fatalf("Approximate: unexpected error: %v", err)
	}
	if want := stdNormal().Prob(0); !almostEqual(ys[0], want, epsilon) {
		t.Fatalf("truth must outrank quantiles: want %v, got %v", want, ys[0])
	}
}

func TestPDF_ApproximateFromQuantiles(t *testing.T) {
	p, err := New(nil, decileSet(t), nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	xs := []float64{-1, -0.5, 0, 0.5, 1}
	ys, err := p.Approximate(xs)
	if err != nil {
		t.Fatalf("Approximate: unexpected error: %v", err)
	}
	truth := stdNormal()
	for i, x := range xs {
		if want := truth.Prob(x); !almostEqual(ys[i], want, 1e-2) {
			t.Fatalf("density at %v: want %v within 1e-2, got %v", x, want, ys[i])
		}
	}
}

func TestPDF_ReconstructionIsBuiltOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Debugf("built the reconstruction from %d quantile points", 9).Times(1)

	p, err := New(nil, decileSet(t), log)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, err = p.Approximate([]float64{0}); err != nil {
		t.Fatalf("first Approximate: unexpected error: %v", err)
	}
	built := p.recon
	if built == nil {
		t.Fatal("no reconstruction memoized after the first evaluation")
	}
	if _, err = p.Approximate([]float64{1}); err != nil {
		t.Fatalf("second Approximate: unexpected error: %v", err)
	}
	if p.recon != built {
		t.Fatal("reconstruction was rebuilt on the second evaluation")
	}
}

func TestPDF_DerivedRanksRepresentations(t *testing.T) {
	edges := []float64{-2, -1, 0, 1, 2}
	hist, err := histogram.FromDistribution(stdNormal(), edges)
	if err != nil {
		t.Fatalf("FromDistribution: unexpected error: %v", err)
	}
	samples := make([]float64, 100)
	rg := rand.New(rand.NewSource(42))
	for i := range samples {
		samples[i] = rg.NormFloat64()
	}

	p, err := NewFrom(Sources{Histogram: hist, Samples: samples}, nil)
	if err != nil {
		t.Fatalf("NewFrom: unexpected error: %v", err)
	}
	d, err := p.Dist()
	if err != nil {
		t.Fatalf("Dist: unexpected error: %v", err)
	}
	if _, ok := d.(*histogram.Histogram); !ok {
		t.Fatalf("histogram must outrank samples, got %T", d)
	}

	p, err = NewFrom(Sources{Quantiles: decileSet(t), Histogram: hist}, nil)
	if err != nil {
		t.Fatalf("NewFrom: unexpected error: %v", err)
	}
	if d, err = p.Dist(); err != nil {
		t.Fatalf("Dist: unexpected error: %v", err)
	}
	if _, ok := d.(*histogram.Histogram); ok {
		t.Fatal("quantiles must outrank the histogram")
	}
}

func TestPDF_ApproximateFromSamples(t *testing.T) {
	rg := rand.New(rand.NewSource(999))
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = rg.NormFloat64()
	}
	p, err := NewFrom(Sources{Samples: samples}, nil)
	if err != nil {
		t.Fatalf("NewFrom: unexpected error: %v", err)
	}
	d, err := p.Dist()
	if err != nil {
		t.Fatalf("Dist: unexpected error: %v", err)
	}
	if got := d.CDF(0); !almostEqual(got, 0.5, 0.03) {
		t.Fatalf("empirical CDF at 0: want 0.5 within 0.03, got %v", got)
	}
}

func TestPDF_InsufficientDataIsMemoized(t *testing.T) {
	single, err := quantile.New([]float64{0.5}, []float64{0})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	p, err := NewFrom(Sources{Quantiles: single}, nil)
	if err != nil {
		t.Fatalf("NewFrom: unexpected error: %v", err)
	}
	if _, err = p.Approximate([]float64{0}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("first evaluation: want ErrInsufficientData, got %v", err)
	}
	if _, err = p.Approximate([]float64{0}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("second evaluation: want the memoized ErrInsufficientData, got %v", err)
	}
}

func TestPDF_MissingData(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, err = p.KLD(-1, 1, metrics.Config{}); !errors.Is(err, ErrMissingData) {
		t.Fatalf("KLD without a derived representation: want ErrMissingData, got %v", err)
	}
	if _, err = p.ApproxCurve([]float64{0}); !errors.Is(err, ErrMissingData) {
		t.Fatalf("ApproxCurve without a derived representation: want ErrMissingData, got %v", err)
	}
}

func TestPDF_Integrate(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	mass, err := p.Integrate(-1, 1)
	if err != nil {
		t.Fatalf("Integrate: unexpected error: %v", err)
	}
	if want := stdNormal().CDF(1) - stdNormal().CDF(-1); !almostEqual(mass, want, 1e-12) {
		t.Fatalf("central mass: want %v, got %v", want, mass)
	}

	tests := map[string][2]float64{
		"Reversed": {1, -1},
		"Empty":    {1, 1},
		"NaN":      {math.NaN(), 1},
		"Inf":      {-1, math.Inf(1)},
	}
	for name, iv := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Integrate(iv[0], iv[1]); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPDF_IntegrateQuantileMassNearOne(t *testing.T) {
	p, err := New(nil, decileSet(t), nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	mass, err := p.Integrate(-10, 10)
	if err != nil {
		t.Fatalf("Integrate: unexpected error: %v", err)
	}
	if mass < 0.999 || mass > 1+epsilon {
		t.Fatalf("reconstructed mass: want close to 1, got %v", mass)
	}
}

func TestPDF_Sample(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	rg := rand.New(rand.NewSource(7))
	xs, err := p.Sample(rg, 4000)
	if err != nil {
		t.Fatalf("Sample: unexpected error: %v", err)
	}
	if len(xs) != 4000 {
		t.Fatalf("sample count: want 4000, got %d", len(xs))
	}
	var sum float64
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("non-finite draw %v", x)
		}
		sum += x
	}
	if mean := sum / float64(len(xs)); !almostEqual(mean, 0, 0.1) {
		t.Fatalf("sample mean: want 0 within 0.1, got %v", mean)
	}

	if _, err = p.Sample(nil, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil source: want ErrInvalidArgument, got %v", err)
	}
	if _, err = p.Sample(rg, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero count: want ErrInvalidArgument, got %v", err)
	}
}

func TestPDF_SampleFromReconstructionStaysInSupport(t *testing.T) {
	p, err := New(nil, decileSet(t), nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	rg := rand.New(rand.NewSource(11))
	xs, err := p.Sample(rg, 500)
	if err != nil {
		t.Fatalf("Sample: unexpected error: %v", err)
	}
	for _, x := range xs {
		if x < -2.5 || x > 2.5 {
			t.Fatalf("draw %v outside the reconstructed support", x)
		}
	}
}

func TestPDF_DivergenceMetrics(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, err = p.Quantize(10); err != nil {
		t.Fatalf("Quantize: unexpected error: %v", err)
	}

	kld, err := p.KLD(-1, 1, metrics.Config{})
	if err != nil {
		t.Fatalf("KLD: unexpected error: %v", err)
	}
	if kld <= 0 || kld > 1e-3 {
		t.Fatalf("decile KLD on the central window: want within (0, 1e-3], got %v", kld)
	}

	rms, err := p.RMS(-1, 1, metrics.Config{})
	if err != nil {
		t.Fatalf("RMS: unexpected error: %v", err)
	}
	if rms <= 0 || rms > 0.01 {
		t.Fatalf("decile RMS on the central window: want within (0, 0.01], got %v", rms)
	}

	bits, err := p.KLD(-1, 1, metrics.Config{Base: metrics.Bits})
	if err != nil {
		t.Fatalf("KLD in bits: unexpected error: %v", err)
	}
	if !almostEqual(bits*math.Ln2, kld, 1e-12) {
		t.Fatalf("base conversion: want %v nats, got %v", kld, bits*math.Ln2)
	}
}

func TestPDF_DivergenceErrorKinds(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, err = p.Quantize(10); err != nil {
		t.Fatalf("Quantize: unexpected error: %v", err)
	}

	// The reconstruction carries no mass beyond its support.
	if _, err = p.KLD(10, 11, metrics.Config{}); !errors.Is(err, ErrDivergenceUndefined) {
		t.Fatalf("zero-mass window: want ErrDivergenceUndefined, got %v", err)
	}
	if _, err = p.KLD(1, -1, metrics.Config{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("reversed window: want ErrInvalidArgument, got %v", err)
	}
	if _, err = p.RMS(1, -1, metrics.Config{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("reversed window: want ErrInvalidArgument, got %v", err)
	}
}

func TestPDF_Curves(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if _, err = p.Quantize(25); err != nil {
		t.Fatalf("Quantize: unexpected error: %v", err)
	}

	grid := []float64{-1, 0, 1}
	truth, err := p.TruthCurve(grid)
	if err != nil {
		t.Fatalf("TruthCurve: unexpected error: %v", err)
	}
	if len(truth) != 3 || !almostEqual(truth[1][1], stdNormal().Prob(0), epsilon) {
		t.Fatalf("truth curve at 0: want %v, got %v", stdNormal().Prob(0), truth[1])
	}

	approx, err := p.ApproxCurve(grid)
	if err != nil {
		t.Fatalf("ApproxCurve: unexpected error: %v", err)
	}
	for i, pt := range approx {
		if pt[0] != grid[i] {
			t.Fatalf("approx curve abscissa %d: want %v, got %v", i, grid[i], pt[0])
		}
		if math.IsNaN(pt[1]) || pt[1] < 0 {
			t.Fatalf("approx curve ordinate at %v: got %v", pt[0], pt[1])
		}
	}

	knots := p.QuantilePoints()
	if len(knots) != 3 {
		t.Fatalf("knots: want 3, got %d", len(knots))
	}
	if !almostEqual(knots[1][0], 0, epsilon) || knots[1][1] != 0.5 {
		t.Fatalf("median knot: want (0, 0.5), got %v", knots[1])
	}
}

func TestPDF_QuantilePointsWithoutSet(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if pts := p.QuantilePoints(); pts != nil {
		t.Fatalf("want no knots, got %v", pts)
	}
}

func TestPDF_Range(t *testing.T) {
	p, err := New(stdNormal(), nil, nil)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	lo, hi, err := p.Range()
	if err != nil {
		t.Fatalf("Range: unexpected error: %v", err)
	}
	if !almostEqual(lo, -3.0902, 1e-3) || !almostEqual(hi, 3.0902, 1e-3) {
		t.Fatalf("plotting range: want about [-3.0902, 3.0902], got [%v, %v]", lo, hi)
	}
}

func TestCompact(t *testing.T) {
	series := make([][2]float64, 100)
	for i := range series {
		x := float64(i) / 99 * 2 * math.Pi
		series[i] = [2]float64{x, math.Sin(x)}
	}

	out := Compact(series, 10)
	if len(out) > 10 || len(out) < 2 {
		t.Fatalf("compacted size: want within [2, 10], got %d", len(out))
	}
	if out[0] != series[0] || out[len(out)-1] != series[len(series)-1] {
		t.Fatalf("end points must survive compaction: got %v .. %v", out[0], out[len(out)-1])
	}

	if got := Compact(series, 100); len(got) != len(series) {
		t.Fatalf("series within budget must pass through, got %d points", len(got))
	}
	if got := Compact(series, 1); len(got) != len(series) {
		t.Fatalf("budget below 2 must pass through, got %d points", len(got))
	}
}
