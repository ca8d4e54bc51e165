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
	"math"

	"github.com/urfave/cli/v3"

	"github.com/motolab/tuner/pkg/motorcycle"
)

func getCmd() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show the current build stored under an id",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "id")
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			bike, err := newClient(cmd).Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get %q: %w", args[0], err)
			}
			return writeOutput(ctx, cmd, bike)
		},
	}
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every build with its performance index and cost",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			list, err := newClient(cmd).List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list builds: %w", err)
			}
			return writeOutput(ctx, cmd, list)
		},
	}
}

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Build report with stage and manufacturer breakdowns",
		ArgsUsage: "<id> [id...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := requireArgs(cmd, "id"); err != nil {
				return err
			}

			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			c := newClient(cmd)
			reports := make([]*motorcycle.Report, 0, cmd.NArg())
			for _, id := range cmd.Args().Slice() {
				rep, err := c.Report(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to get report for %q: %w", id, err)
				}
				reports = append(reports, rep)
			}
			return writeOutput(ctx, cmd, newBuildReport(reports...))
		},
	}
}

func planCmd() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Suggest catalog parts that fit a budget, highest hp gain first",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "budget",
				Aliases:  []string{"b"},
				Usage:    "money available for parts",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "id")
			if err != nil {
				return err
			}
			budget := cmd.Float("budget")
			if budget < 0 || math.IsInf(budget, 0) || math.IsNaN(budget) {
				return fmt.Errorf("budget must be a non-negative number, got %v", budget)
			}

			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			plan, err := newClient(cmd).Plan(ctx, args[0], budget)
			if err != nil {
				return fmt.Errorf("failed to plan %q: %w", args[0], err)
			}
			return writeOutput(ctx, cmd, plan)
		},
	}
}

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Show the parts catalog the daemon plans from",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			parts, err := newClient(cmd).Catalog(ctx)
			if err != nil {
				return fmt.Errorf("failed to get catalog: %w", err)
			}
			return writeOutput(ctx, cmd, parts)
		},
	}
}

func upgradeCmd() *cli.Command {
	return &cli.Command{
		Name:  "upgrade",
		Usage: "Add or remove an upgrade on a build",
		Commands: []*cli.Command{
			upgradeAddCmd(),
			upgradeRemoveCmd(),
		},
	}
}

func upgradeAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Install an upgrade and print the updated build",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Usage:    "upgrade name, used later for removal",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "manufacturer",
				Usage: "part manufacturer",
			},
			&cli.IntFlag{
				Name:  "stage",
				Usage: "tuning stage (0-255)",
			},
			&cli.FloatFlag{
				Name:  "cost",
				Usage: "part cost",
			},
			&cli.FloatFlag{
				Name:  "hp-gain",
				Usage: "horsepower gained",
			},
			&cli.FloatFlag{
				Name:  "weight-reduction",
				Usage: "kilograms removed (negative adds weight)",
			},
			&cli.FloatFlag{
				Name:  "installation-time",
				Usage: "installation time in hours",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "id")
			if err != nil {
				return err
			}
			u, err := upgradeFromFlags(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			bike, err := newClient(cmd).AddUpgrade(ctx, args[0], u)
			if err != nil {
				return fmt.Errorf("failed to add %q to %q: %w", u.Name, args[0], err)
			}
			slog.Debug("upgrade added", "id", args[0], "upgrade", u.Name, "upgrades", len(bike.Upgrades))
			return writeOutput(ctx, cmd, bike)
		},
	}
}

func upgradeRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Remove the first upgrade with the given name and print the updated build",
		ArgsUsage: "<id> <name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, "id", "name")
			if err != nil {
				return err
			}

			ctx, cancel := requestContext(ctx, cmd)
			defer cancel()

			bike, err := newClient(cmd).RemoveUpgrade(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to remove %q from %q: %w", args[1], args[0], err)
			}
			return writeOutput(ctx, cmd, bike)
		},
	}
}

func upgradeFromFlags(cmd *cli.Command) (motorcycle.Upgrade, error) {
	stage := cmd.Int("stage")
	if stage < 0 || stage > math.MaxUint8 {
		return motorcycle.Upgrade{}, fmt.Errorf("stage must be between 0 and %d, got %d", math.MaxUint8, stage)
	}
	if cmd.Float("cost") < 0 {
		return motorcycle.Upgrade{}, fmt.Errorf("cost must not be negative, got %v", cmd.Float("cost"))
	}
	return motorcycle.Upgrade{
		Name:             cmd.String("name"),
		Manufacturer:     cmd.String("manufacturer"),
		Stage:            uint8(stage),
		Cost:             cmd.Float("cost"),
		HPGain:           cmd.Float("hp-gain"),
		WeightReduction:  cmd.Float("weight-reduction"),
		InstallationTime: cmd.Float("installation-time"),
	}, nil
}
