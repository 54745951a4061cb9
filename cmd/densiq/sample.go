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

package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/densiq/densiq/density"
	"github.com/densiq/densiq/density/quantile"
	"github.com/densiq/densiq/logger"
	"github.com/densiq/densiq/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/stat"
)

// SampleCommand data structure for the sample app
var SampleCommand = cli.Command{
	Action: sampleAction,
	Name:   "sample",
	Usage:  "draw random values from the quantile reconstruction",
	Flags: []cli.Flag{
		&utils.MeanFlag,
		&utils.SigmaFlag,
		&utils.WeightFlag,
		&utils.PercentFlag,
		&utils.CutPointsFlag,
		&utils.SamplesFlag,
		&utils.SeedFlag,
		&utils.BinsFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The sample command quantizes the truth, drops the truth and draws from the
reconstruction alone by inverse-transform sampling. The draws are summarized
in a moment table and a bin-count table; with --output the raw draws are
appended to a file, one per line.`,
}

// sampleAction implements reconstruction sampling.
func sampleAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "DensiqSample")

	truth, err := newTruth(cfg)
	if err != nil {
		return err
	}
	cuts, err := cutPoints(cfg)
	if err != nil {
		return err
	}
	set, err := quantile.FromDistribution(truth, cuts)
	if err != nil {
		return err
	}
	// quantiles only, so the draws exercise the reconstruction rather than
	// the truth the knots came from
	p, err := density.NewFrom(density.Sources{Quantiles: set}, log)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	xs, err := p.Sample(rand.New(rand.NewSource(seed)), cfg.Samples)
	if err != nil {
		return err
	}
	log.Infof("drew %d samples with seed %d", len(xs), seed)

	report := sampleReport(xs, seed, cfg.Bins)
	printers := utils.NewPrinters()
	defer printers.Close()
	printers.AddPrinterToConsole(false, func() string { return report })
	printers.AddPrinterToFile(cfg.Output, func() string { return rawSamples(xs) })
	printers.Print()
	return nil
}

// sampleReport summarizes the draws: moments plus a bin-count table.
func sampleReport(xs []float64, seed int64, bins int) string {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		lo = utils.Min(lo, x)
		hi = utils.Max(hi, x)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	summary := utils.FormatTable(
		table.Row{"n", "seed", "mean", "std", "min", "max"},
		[]table.Row{{
			len(xs),
			seed,
			fmt.Sprintf("%.4g", mean),
			fmt.Sprintf("%.4g", std),
			fmt.Sprintf("%.4g", lo),
			fmt.Sprintf("%.4g", hi),
		}},
	)
	if !(hi > lo) {
		return summary
	}

	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, x := range xs {
		i := int((x - lo) / width)
		counts[utils.Clamp(i, 0, bins-1)]++
	}
	rows := make([]table.Row, 0, bins)
	for i, c := range counts {
		share := float64(c) / float64(len(xs))
		rows = append(rows, table.Row{
			fmt.Sprintf("[%.4g, %.4g)", lo+float64(i)*width, lo+float64(i+1)*width),
			c,
			strings.Repeat("#", int(share*50+0.5)),
		})
	}
	return summary + "\n" + utils.FormatTable(table.Row{"bin", "count", "share"}, rows)
}

// rawSamples renders the draws one per line for file output.
func rawSamples(xs []float64) string {
	var sb strings.Builder
	for _, x := range xs {
		fmt.Fprintf(&sb, "%g\n", x)
	}
	return sb.String()
}
