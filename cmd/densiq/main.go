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
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// DensiqApp data structure
var DensiqApp = cli.App{
	Name:      "Densiq",
	HelpName:  "densiq",
	Usage:     "approximate, compare and explore probability densities through quantile parametrizations",
	Copyright: "(c) 2025 the densiq authors",
	Commands: []*cli.Command{
		&QuantizeCommand,
		&CompareCommand,
		&SampleCommand,
		&ServeCommand,
	},
}

// main implements the densiq toolkit entry point
func main() {
	if err := DensiqApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
