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

	"github.com/urfave/cli/v3"

	"github.com/motolab/tuner/pkg/api"
	"github.com/motolab/tuner/pkg/defaults"
	"github.com/motolab/tuner/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the tunerd HTTP daemon in-process",
		Description: `Serve the motorcycle API until SIGINT or SIGTERM.

Without --seed the registry holds the stock builds "r1" (Yamaha R1) and
"v4" (Ducati V4). Server tuning such as RATE_LIMIT is read from the
environment as for tunerd.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Value:   defaults.ServerAddress,
				Usage:   "address to bind",
				Sources: cli.EnvVars(server.EnvAddress),
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   defaults.ServerPort,
				Usage:   "port to bind",
				Sources: cli.EnvVars(server.EnvPort),
			},
			&cli.StringFlag{
				Name:    "seed",
				Usage:   "Garage document (JSON or YAML) loaded at startup",
				Sources: cli.EnvVars(api.EnvSeedFile),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := server.NewConfig()
			cfg.Address = cmd.String("address")
			cfg.Port = int(cmd.Int("port"))
			return api.Run(ctx, cmd.String("seed"), server.WithConfig(cfg))
		},
	}
}
