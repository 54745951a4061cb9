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

	"github.com/densiq/densiq/logger"
	"github.com/densiq/densiq/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// QuantizeCommand data structure for the quantize app
var QuantizeCommand = cli.Command{
	Action: quantizeAction,
	Name:   "quantize",
	Usage:  "compress an analytic truth distribution into quantile knots",
	Flags: []cli.Flag{
		&utils.MeanFlag,
		&utils.SigmaFlag,
		&utils.WeightFlag,
		&utils.PercentFlag,
		&utils.CutPointsFlag,
		&utils.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The quantize command evaluates the truth quantile function at the chosen cut
points and prints the resulting (cut, location) knots. The knot table is the
complete lossy representation every other densiq command reconstructs from.`,
}

// quantizeAction implements the quantile compression report.
func quantizeAction(ctx *cli.Context) error {
	cfg, err := utils.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "DensiqQuantize")

	p, err := newQuantizedPDF(cfg, log)
	if err != nil {
		return err
	}
	knots := p.QuantilePoints()
	log.Infof("compressed the truth into %d knots", len(knots))

	rows := make([]table.Row, 0, len(knots))
	for i, k := range knots {
		rows = append(rows, table.Row{i + 1, fmt.Sprintf("%.6g", k[1]), fmt.Sprintf("%.6g", k[0])})
	}
	report := utils.FormatTable(table.Row{"#", "cut", "location"}, rows)

	printers := utils.NewPrinters()
	defer printers.Close()
	printers.AddPrinterToConsole(false, func() string { return report })
	printers.AddPrinterToFile(cfg.Output, func() string { return report })
	printers.Print()
	return nil
}
