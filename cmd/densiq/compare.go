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

	"github.com/densiq/densiq/density/metrics"
	"github.com/densiq/densiq/logger"
	"github.com/densiq/densiq/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// CompareCommand data structure for the compare app
var CompareCommand = cli.Command{
	Action: compareAction,
	Name:   "compare",
	Usage:  "measure how far the quantile reconstruction drifts from the truth",
	Flags: []cli.Flag{
		&utils.MeanFlag,
		&utils.SigmaFlag,
		&utils.WeightFlag,
		&utils.PercentFlag,
		&utils.CutPointsFlag,
		&utils.LowerFlag,
		&utils.UpperFlag,
		&utils.GridPointsFlag,
		&utils.BitsFlag,
		&utils.StrictFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The compare command quantizes the truth, rebuilds a density from the knots
and reports the Kullback-Leibler divergence and root-mean-square distance of
the reconstruction against the truth. Without an explicit --lower/--upper
window the report covers the truth's one, two and three sigma windows.`,
}

// demonstrationWindows are the symmetric truth-quantile windows the compare
// report defaults to. The tail cuts put the bounds at one, two and three
// standard deviations for a normal truth.
var demonstrationWindows = []struct {
	label string
	cut   float64
}{
	{"1 sigma", 0.15865525393145707},
	{"2 sigma", 0.022750131948179207},
	{"3 sigma", 0.0013498980316300933},
}

// compareAction implements the divergence report.
func compareAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "DensiqCompare")

	p, err := newQuantizedPDF(cfg, log)
	if err != nil {
		return err
	}

	mcfg := metrics.Config{GridPoints: cfg.GridPoints}
	if cfg.Bits {
		mcfg.Base = metrics.Bits
	}
	if cfg.Strict {
		mcfg.ZeroMode = metrics.Reject
	}

	type window struct {
		label        string
		lower, upper float64
	}
	var windows []window
	if ctx.IsSet(utils.LowerFlag.Name) || ctx.IsSet(utils.UpperFlag.Name) {
		windows = []window{{"custom", cfg.Lower, cfg.Upper}}
	} else {
		d, err := p.Dist()
		if err != nil {
			return err
		}
		for _, w := range demonstrationWindows {
			windows = append(windows, window{w.label, d.Quantile(w.cut), d.Quantile(1 - w.cut)})
		}
	}

	unit := "nats"
	if cfg.Bits {
		unit = "bits"
	}
	rows := make([]table.Row, 0, len(windows))
	for _, w := range windows {
		kld, err := p.KLD(w.lower, w.upper, mcfg)
		if err != nil {
			return err
		}
		rms, err := p.RMS(w.lower, w.upper, mcfg)
		if err != nil {
			return err
		}
		log.Debugf("window %s: kld %g, rms %g", w.label, kld, rms)
		rows = append(rows, table.Row{
			w.label,
			fmt.Sprintf("[%.4g, %.4g]", w.lower, w.upper),
			fmt.Sprintf("%.4g", kld),
			fmt.Sprintf("%.4g", rms),
		})
	}
	report := utils.FormatTable(table.Row{"window", "interval", "kld [" + unit + "]", "rms"}, rows)

	printers := utils.NewPrinters()
	defer printers.Close()
	printers.AddPrinterToConsole(false, func() string { return report })
	printers.AddPrinterToFile(cfg.Output, func() string { return report })
	printers.Print()
	return nil
}
