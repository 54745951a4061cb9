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

package utils

import "github.com/urfave/cli/v2"

// Command-line flags shared by the densiq commands. Commands register the
// ones they use; NewConfig reads every flag and falls back to the defaults
// declared here when a command does not carry it.
var (
	MeanFlag = cli.Float64SliceFlag{
		Name:  "mean",
		Usage: "mean of a truth component; repeat the flag for a mixture",
		Value: cli.NewFloat64Slice(0),
	}
	SigmaFlag = cli.Float64SliceFlag{
		Name:  "sigma",
		Usage: "standard deviation of a truth component; repeat the flag for a mixture",
		Value: cli.NewFloat64Slice(1),
	}
	WeightFlag = cli.Float64SliceFlag{
		Name:  "weight",
		Usage: "weight of a truth component (default: equal weights)",
	}
	PercentFlag = cli.Float64Flag{
		Name:    "percent",
		Aliases: []string{"p"},
		Usage:   "cut point spacing in percent; must evenly divide 100",
		Value:   10,
	}
	CutPointsFlag = cli.Float64SliceFlag{
		Name:  "cuts",
		Usage: "explicit cut points within (0, 1); overrides --percent",
	}
	GridPointsFlag = cli.IntFlag{
		Name:  "grid",
		Usage: "number of grid points for quadrature and curve sampling",
		Value: 1000,
	}
	LowerFlag = cli.Float64Flag{
		Name:  "lower",
		Usage: "lower end of the comparison window",
		Value: -1,
	}
	UpperFlag = cli.Float64Flag{
		Name:  "upper",
		Usage: "upper end of the comparison window",
		Value: 1,
	}
	SamplesFlag = cli.IntFlag{
		Name:    "n",
		Aliases: []string{"samples"},
		Usage:   "number of samples to draw",
		Value:   1000,
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for random sampling (default: time-based)",
		Value: -1,
	}
	BinsFlag = cli.IntFlag{
		Name:  "bins",
		Usage: "number of histogram bins",
		Value: 20,
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "file the report is appended to; empty prints to the console only",
	}
	AddrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "address the visualizer web server listens on",
		Value: "localhost:8080",
	}
	BitsFlag = cli.BoolFlag{
		Name:  "bits",
		Usage: "report divergences in bits instead of nats",
	}
	StrictFlag = cli.BoolFlag{
		Name:  "strict",
		Usage: "fail a comparison whose reference density vanishes instead of reporting +Inf",
	}
)
