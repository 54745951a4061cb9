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
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/densiq/densiq/density/empirical"
	"github.com/densiq/densiq/density/histogram"
	"github.com/densiq/densiq/density/metrics"
	"github.com/densiq/densiq/density/quantile"
	"github.com/densiq/densiq/density/reconstruction"
	"github.com/densiq/densiq/logger"
)

// Sources lists the representations a PDF can be built from. At least one
// field must be populated; when several are, they rank truth first, then
// quantiles, histogram and samples.
type Sources struct {
	Truth     Distribution
	Quantiles *quantile.Set
	Histogram *histogram.Histogram
	Samples   []float64
}

// PDF is the facade over one probability distribution. It owns an optional
// analytic truth and any derived representations of it, and presents a
// single evaluation and comparison surface.
//
// A PDF mutates in exactly two documented ways: Quantize and Histogramize
// store the representation they derive, and the first evaluation without a
// truth distribution memoizes the reconstruction it builds. The memoized
// reconstruction binds to the representation present at that moment and is
// never rebuilt. A PDF is safe for concurrent readers; the storing
// operations need external coordination with readers.
type PDF struct {
	truth     Distribution
	quantiles *quantile.Set
	hist      *histogram.Histogram
	samples   []float64

	buildOnce sync.Once
	recon     *reconstruction.Density
	buildErr  error

	log logger.Logger
}

// New builds a PDF over a truth distribution, a quantile set, or both.
// Construction fails when neither is given. A nil log selects a default
// logger.
func New(truth Distribution, quantiles *quantile.Set, log logger.Logger) (*PDF, error) {
	return NewFrom(Sources{Truth: truth, Quantiles: quantiles}, log)
}

// NewFrom builds a PDF from any combination of representations.
func NewFrom(src Sources, log logger.Logger) (*PDF, error) {
	if src.Truth == nil && src.Quantiles == nil && src.Histogram == nil && len(src.Samples) == 0 {
		return nil, classify(fmt.Errorf("NewFrom: a PDF needs at least one representation: truth, quantiles, histogram or samples"), ErrInvalidArgument)
	}
	for i, x := range src.Samples {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, classify(fmt.Errorf("NewFrom: sample at index %d is not finite", i), ErrInvalidArgument)
		}
	}
	if log == nil {
		log = logger.NewLogger("info", "pdf")
	}
	return &PDF{
		truth:     src.Truth,
		quantiles: src.Quantiles,
		hist:      src.Histogram,
		samples:   append([]float64(nil), src.Samples...),
		log:       log,
	}, nil
}

// Quantize derives quantiles from the truth distribution at evenly spaced
// cut points with the given percent separation, e.g. 10 for deciles. The
// resulting set replaces the stored one and is returned.
func (p *PDF) Quantize(percent float64) (*quantile.Set, error) {
	if p.truth == nil {
		return nil, classify(fmt.Errorf("Quantize: no truth distribution to quantize"), ErrMissingTruth)
	}
	cuts, err := quantile.EvenCuts(percent)
	if err != nil {
		return nil, classify(err, ErrInvalidArgument)
	}
	return p.storeQuantiles(quantile.FromDistribution(p.truth, cuts))
}

// QuantizeCount derives n quantiles from the truth distribution at the
// evenly spaced interior cut points i/(n+1).
func (p *PDF) QuantizeCount(n int) (*quantile.Set, error) {
	if p.truth == nil {
		return nil, classify(fmt.Errorf("QuantizeCount: no truth distribution to quantize"), ErrMissingTruth)
	}
	cuts, err := quantile.CountCuts(n)
	if err != nil {
		return nil, classify(err, ErrInvalidArgument)
	}
	return p.storeQuantiles(quantile.FromDistribution(p.truth, cuts))
}

// QuantizeAt derives quantiles from the truth distribution at an explicit
// list of cut points.
func (p *PDF) QuantizeAt(cuts []float64) (*quantile.Set, error) {
	if p.truth == nil {
		return nil, classify(fmt.Errorf("QuantizeAt: no truth distribution to quantize"), ErrMissingTruth)
	}
	return p.storeQuantiles(quantile.FromDistribution(p.truth, cuts))
}

func (p *PDF) storeQuantiles(s *quantile.Set, err error) (*quantile.Set, error) {
	if err != nil {
		return nil, classify(err, ErrInvalidArgument)
	}
	p.quantiles = s
	p.log.Debugf("stored %d quantile points", s.Len())
	return s, nil
}

// Histogramize bins the truth distribution between the given edges and
// stores the histogram the way Quantize stores its set.
func (p *PDF) Histogramize(edges []float64) (*histogram.Histogram, error) {
	if p.truth == nil {
		return nil, classify(fmt.Errorf("Histogramize: no truth distribution to bin"), ErrMissingTruth)
	}
	h, err := histogram.FromDistribution(p.truth, edges)
	if err != nil {
		return nil, classify(err, ErrInvalidArgument)
	}
	p.hist = h
	p.log.Debugf("stored a histogram of %d bins", len(h.Heights()))
	return h, nil
}

// Approximate evaluates the density at every point of xs. With a truth
// distribution present the truth density is evaluated directly; otherwise
// the reconstruction derived from the stored representation serves the
// query, built on first use and reused afterwards. A scalar query is the
// length-1 case.
func (p *PDF) Approximate(xs []float64) ([]float64, error) {
	d, err := p.active()
	if err != nil {
		return nil, err
	}
	return ProbEach(d, xs), nil
}

// Dist returns the preferred representation as a distribution capability:
// the truth when present, otherwise the derived reconstruction. The result
// can be handed to the metrics engine or evaluated with the *Each helpers.
func (p *PDF) Dist() (Distribution, error) {
	return p.active()
}

// Integrate computes the probability mass between lower and upper on the
// preferred representation.
func (p *PDF) Integrate(lower, upper float64) (float64, error) {
	if math.IsNaN(lower) || math.IsInf(lower, 0) || math.IsNaN(upper) || math.IsInf(upper, 0) {
		return 0, classify(fmt.Errorf("Integrate: interval [%g, %g] must be finite", lower, upper), ErrInvalidArgument)
	}
	if lower >= upper {
		return 0, classify(fmt.Errorf("Integrate: interval [%g, %g] must be ascending", lower, upper), ErrInvalidArgument)
	}
	d, err := p.active()
	if err != nil {
		return 0, err
	}
	return d.CDF(upper) - d.CDF(lower), nil
}

// Sample draws n values from the preferred representation by inverse
// transform of rg's uniform variates.
func (p *PDF) Sample(rg *rand.Rand, n int) ([]float64, error) {
	if rg == nil {
		return nil, classify(fmt.Errorf("Sample: no random source"), ErrInvalidArgument)
	}
	if n < 1 {
		return nil, classify(fmt.Errorf("Sample: sample count %d must be positive", n), ErrInvalidArgument)
	}
	d, err := p.active()
	if err != nil {
		return nil, err
	}
	xs := make([]float64, n)
	for i := range xs {
		u := rg.Float64()
		for u == 0 {
			u = rg.Float64()
		}
		xs[i] = d.Quantile(u)
	}
	return xs, nil
}

// KLD computes the Kullback-Leibler divergence of the stored approximation
// from the truth distribution over [lower, upper]. The approximation leads:
// the result is D(approximation || truth).
func (p *PDF) KLD(lower, upper float64, cfg metrics.Config) (float64, error) {
	truth, approx, err := p.comparable()
	if err != nil {
		return 0, err
	}
	v, err := metrics.KullbackLeibler(approx, truth, lower, upper, cfg)
	if err != nil {
		return 0, classifyMetric(err)
	}
	return v, nil
}

// RMS computes the root-mean-square difference between the stored
// approximation and the truth distribution over [lower, upper].
func (p *PDF) RMS(lower, upper float64, cfg metrics.Config) (float64, error) {
	truth, approx, err := p.comparable()
	if err != nil {
		return 0, err
	}
	v, err := metrics.RootMeanSquare(approx, truth, lower, upper, cfg)
	if err != nil {
		return 0, classifyMetric(err)
	}
	return v, nil
}

// comparable resolves the two sides of a self comparison.
func (p *PDF) comparable() (truth, approx Distribution, err error) {
	if p.truth == nil {
		return nil, nil, classify(fmt.Errorf("no truth distribution to compare against"), ErrMissingTruth)
	}
	approx, err = p.derived()
	if err != nil {
		return nil, nil, err
	}
	return p.truth, approx, nil
}

// active returns the preferred representation: the truth when present,
// otherwise the derived one.
func (p *PDF) active() (Distribution, error) {
	if p.truth != nil {
		return p.truth, nil
	}
	return p.derived()
}

// derived returns the approximation, ranking quantiles before the histogram
// and the histogram before raw samples. The quantile and sample
// reconstructions are built at most once and memoized together with their
// error.
func (p *PDF) derived() (Distribution, error) {
	switch {
	case p.quantiles != nil:
		p.buildOnce.Do(p.buildReconstruction)
		if p.buildErr != nil {
			return nil, p.buildErr
		}
		return p.recon, nil
	case p.hist != nil:
		return p.hist, nil
	case len(p.samples) > 0:
		p.buildOnce.Do(p.buildReconstruction)
		if p.buildErr != nil {
			return nil, p.buildErr
		}
		return p.recon, nil
	}
	return nil, classify(fmt.Errorf("no density representation available"), ErrMissingData)
}

func (p *PDF) buildReconstruction() {
	if p.quantiles != nil {
		d, err := reconstruction.FromSet(p.quantiles)
		if err != nil {
			p.buildErr = classify(err, ErrInsufficientData)
			return
		}
		p.recon = d
		p.log.Debugf("built the reconstruction from %d quantile points", p.quantiles.Len())
		return
	}
	d, err := empirical.FromSamples(p.samples)
	if err != nil {
		p.buildErr = classify(err, ErrInsufficientData)
		return
	}
	p.recon = d
	p.log.Debugf("built the reconstruction from %d samples", len(p.samples))
}

func classifyMetric(err error) error {
	switch {
	case errors.Is(err, metrics.ErrDivergenceUndefined):
		return classify(err, ErrDivergenceUndefined)
	case errors.Is(err, metrics.ErrNonFinite):
		return classify(err, ErrNonFinite)
	}
	return classify(err, ErrInvalidArgument)
}
