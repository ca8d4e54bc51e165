// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/motolab/tuner/pkg/defaults"
	"github.com/motolab/tuner/pkg/logging"
	"github.com/motolab/tuner/pkg/serializer"
)

const (
	name           = "tuner"
	versionDefault = "dev"

	envServer = "TUNER_SERVER"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

const (
	flagOutput   = "output"
	flagFormat   = "format"
	flagServer   = "server"
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"
)

// Flag constructors return fresh values; urfave/cli keeps parsed state on the flag itself.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage:   fmt.Sprintf("output format (supported values: %v)", serializer.SupportedFormats()),
	}
}

func serverFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagServer,
		Aliases: []string{"s"},
		Value:   defaults.ServerURL,
		Usage:   "base URL of the tunerd API",
		Sources: cli.EnvVars(envServer),
	}
}

func timeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  flagTimeout,
		Value: defaults.CLIRequestTimeout,
		Usage: "timeout for a single request to the server",
	}
}

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagLogLevel,
		Value:   "info",
		Usage:   "log level (debug, info, warn, error)",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}
}

// Execute runs the CLI with os.Args and exits non-zero on error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Motorcycle tuning CLI",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Description: `Inspect and modify motorcycle builds held by a tunerd daemon, or run
the daemon in-process.

serve    - run the HTTP daemon
get      - show a build
list     - list every build
report   - build report with stage and manufacturer breakdowns
plan     - suggest catalog parts within a budget
catalog  - show the parts catalog
upgrade  - add or remove an upgrade
simulate - apply a seed file offline and print the resulting reports`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			serverFlag(),
			timeoutFlag(),
			outputFlag(),
			formatFlag(),
			logLevelFlag(),
		},
		Before: initLogger,
		Commands: []*cli.Command{
			serveCmd(),
			getCmd(),
			listCmd(),
			reportCmd(),
			planCmd(),
			catalogCmd(),
			upgradeCmd(),
			simulateCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String(flagLogLevel)
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
	return ctx, nil
}

// requestContext bounds one round trip to the daemon.
func requestContext(ctx context.Context, cmd *cli.Command) (context.Context, context.CancelFunc) {
	timeout := cmd.Duration(flagTimeout)
	if timeout <= 0 {
		timeout = defaults.CLIRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

