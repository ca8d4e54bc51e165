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
	"github.com/motolab/tuner/pkg/registry"
	"github.com/motolab/tuner/pkg/serializer"
)

func simulateCmd() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Apply a seed file offline and print the resulting build reports",
		Description: `Build every motorcycle in a Garage document without a daemon, installing
the listed upgrades in order, and print one report per build.

With --budget each build additionally receives the catalog parts the plan
command would suggest. With --snapshot the resulting garage is written as a
new Garage document that tunerd can load with SEED_FILE.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "seed",
				Usage: "Garage document (JSON or YAML); the stock builds when empty",
			},
			&cli.FloatFlag{
				Name:  "budget",
				Usage: "install planned catalog parts within this budget on every build",
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "write the resulting garage to this file (format from extension)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			seed := registry.DefaultSeed()
			if path := cmd.String("seed"); path != "" {
				var err error
				if seed, err = registry.LoadSeed(path); err != nil {
					return err
				}
			}

			reg := registry.NewMemory()
			if err := registry.Apply(reg, seed); err != nil {
				return err
			}

			if cmd.IsSet("budget") {
				budget := cmd.Float("budget")
				if budget < 0 || math.IsInf(budget, 0) || math.IsNaN(budget) {
					return fmt.Errorf("budget must be a non-negative number, got %v", budget)
				}
				if err := installPlans(reg, motorcycle.DefaultCatalog(), budget); err != nil {
					return err
				}
			}

			if path := cmd.String("snapshot"); path != "" {
				if err := writeSnapshot(ctx, reg, path); err != nil {
					return err
				}
			}

			entries := reg.List()
			reports := make([]*motorcycle.Report, 0, len(entries))
			for _, e := range entries {
				reports = append(reports, e.Motorcycle.Report())
			}
			return writeOutput(ctx, cmd, newBuildReport(reports...))
		},
	}
}

// installPlans installs the planned parts on every build in reg.
func installPlans(reg registry.Registry, catalog []motorcycle.Upgrade, budget float64) error {
	for _, e := range reg.List() {
		_, err := reg.Update(e.ID, func(m *motorcycle.Motorcycle) error {
			for _, u := range m.Plan(catalog, budget) {
				if err := m.AddUpgrade(u); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to install plan on %q: %w", e.ID, err)
		}
		slog.Debug("plan installed", "id", e.ID, "budget", budget)
	}
	return nil
}

func writeSnapshot(ctx context.Context, reg registry.Registry, path string) (err error) {
	format := serializer.FormatFromPath(path)
	w := serializer.NewFileWriterOrStdout(format, path)
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot: %w", cerr)
		}
	}()

	if err := w.Serialize(ctx, registry.Snapshot(reg, version)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	slog.Info("snapshot written", "path", path, "motorcycles", reg.Len())
	return nil
}
