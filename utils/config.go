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

import (
	"fmt"

	"github.com/densiq/densiq/logger"
	"github.com/urfave/cli/v2"
)

// Config carries the run parameters of one densiq command.
type Config struct {
	AppName     string
	CommandName string

	LogLevel   string
	Means      []float64
	Sigmas     []float64
	Weights    []float64
	Percent    float64
	CutPoints  []float64
	GridPoints int
	Lower      float64
	Upper      float64
	Samples    int
	Seed       int64
	Bins       int
	Output     string
	Addr       string
	Bits       bool
	Strict     bool
}

// NewConfig returns a Config instance with user specified values or the
// default ones, validated for range errors a command could not recover from.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		LogLevel:   getFlagValue(ctx, logger.LogLevelFlag).(string),
		Means:      getFlagValue(ctx, MeanFlag).([]float64),
		Sigmas:     getFlagValue(ctx, SigmaFlag).([]float64),
		Weights:    getFlagValue(ctx, WeightFlag).([]float64),
		Percent:    getFlagValue(ctx, PercentFlag).(float64),
		CutPoints:  getFlagValue(ctx, CutPointsFlag).([]float64),
		GridPoints: getFlagValue(ctx, GridPointsFlag).(int),
		Lower:      getFlagValue(ctx, LowerFlag).(float64),
		Upper:      getFlagValue(ctx, UpperFlag).(float64),
		Samples:    getFlagValue(ctx, SamplesFlag).(int),
		Seed:       getFlagValue(ctx, SeedFlag).(int64),
		Bins:       getFlagValue(ctx, BinsFlag).(int),
		Output:     getFlagValue(ctx, OutputFlag).(string),
		Addr:       getFlagValue(ctx, AddrFlag).(string),
		Bits:       getFlagValue(ctx, BitsFlag).(bool),
		Strict:     getFlagValue(ctx, StrictFlag).(bool),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if len(cfg.Means) == 0 {
		return fmt.Errorf("at least one truth component mean is required")
	}
	if len(cfg.Sigmas) != len(cfg.Means) {
		return fmt.Errorf("%d sigmas for %d means; repeat --sigma once per component", len(cfg.Sigmas), len(cfg.Means))
	}
	for _, s := range cfg.Sigmas {
		if s <= 0 {
			return fmt.Errorf("sigma %v must be positive", s)
		}
	}
	if len(cfg.Weights) > 0 && len(cfg.Weights) != len(cfg.Means) {
		return fmt.Errorf("%d weights for %d means; repeat --weight once per component or omit it", len(cfg.Weights), len(cfg.Means))
	}
	for _, w := range cfg.Weights {
		if w <= 0 {
			return fmt.Errorf("weight %v must be positive", w)
		}
	}
	if cfg.GridPoints < 2 {
		return fmt.Errorf("grid size %d must be at least 2", cfg.GridPoints)
	}
	if cfg.Lower >= cfg.Upper {
		return fmt.Errorf("window [%v, %v] must be ascending", cfg.Lower, cfg.Upper)
	}
	if cfg.Samples < 1 {
		return fmt.Errorf("sample count %d must be positive", cfg.Samples)
	}
	if cfg.Bins < 1 {
		return fmt.Errorf("bin count %d must be positive", cfg.Bins)
	}
	return nil
}

// getFlagValue returns value specified by user if flag is present in cli
// context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.Float64SliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64Slice(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.Float64SliceFlag:
		if f.Value == nil {
			return []float64{}
		}
		return f.Value.Value()
	case cli.StringFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}
	return nil
}
