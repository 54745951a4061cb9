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
	"github.com/densiq/densiq/logger"
	"github.com/densiq/densiq/utils"
	"github.com/densiq/densiq/visualizer"
	"github.com/urfave/cli/v2"
)

// ServeCommand data structure for the serve app
var ServeCommand = cli.Command{
	Action: serveAction,
	Name:   "serve",
	Usage:  "explore the truth and its reconstruction in a browser",
	Flags: []cli.Flag{
		&utils.MeanFlag,
		&utils.SigmaFlag,
		&utils.WeightFlag,
		&utils.PercentFlag,
		&utils.CutPointsFlag,
		&utils.AddrFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The serve command quantizes the truth and serves interactive charts of the
density curves, the CDF curves with their quantile knots and the window
divergence statistics on the configured address.`,
}

// serveAction implements the chart web-server.
func serveAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "DensiqServe")

	p, err := newQuantizedPDF(cfg, log)
	if err != nil {
		return err
	}
	return visualizer.FireUpWeb(p, cfg.Addr, log)
}
