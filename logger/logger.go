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

package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

//go:generate mockgen -source logger.go -destination logger_mock.go -package logger

// Logger is the logging surface handed to the components. It is satisfied
// by the go-logging logger and mocked in tests.
type Logger interface {
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Panic(args ...any)
	Panicf(format string, args ...any)
	Critical(args ...any)
	Criticalf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
	Warning(args ...any)
	Warningf(format string, args ...any)
	Notice(args ...any)
	Noticef(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Debug(args ...any)
	Debugf(format string, args ...any)

	IsEnabledFor(level logging.Level) bool
}

// LogLevelFlag defines the verbosity of logging for any command that uses it.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\")",
	Value:   "info",
}

const defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset} %{message}"

// NewLogger provides a new instance of the logger for the given module.
// An unrecognized level string falls back to INFO rather than failing.
func NewLogger(level string, module string) Logger {
	log := logging.MustGetLogger(module)

	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(defaultLogFormat))

	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logLevel, "")

	log.SetBackend(leveled)
	return log
}

// ParseTime decomposes an elapsed duration into hours, minutes and seconds
// for progress reports.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	total := uint32(elapsed.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return hours, minutes, seconds
}
