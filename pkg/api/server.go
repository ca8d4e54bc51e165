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

package api

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/motolab/tuner/pkg/garage"
	"github.com/motolab/tuner/pkg/logging"
	"github.com/motolab/tuner/pkg/registry"
	"github.com/motolab/tuner/pkg/server"
)

const (
	name           = "tunerd"
	versionDefault = "dev"

	// EnvSeedFile names a Garage document loaded at startup.
	EnvSeedFile = "SEED_FILE"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/motolab/tuner/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the daemon configured from the environment and blocks until shutdown.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := Run(context.Background(), os.Getenv(EnvSeedFile)); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// Run loads the seed at seedPath (the stock builds when empty), builds the
// server and runs it until ctx is cancelled or a signal arrives.
func Run(ctx context.Context, seedPath string, opts ...server.Option) error {
	seed := registry.DefaultSeed()
	if seedPath != "" {
		var err error
		if seed, err = registry.LoadSeed(seedPath); err != nil {
			return err
		}
		slog.Info("seed loaded", "path", seedPath)
	}

	s, err := NewServer(seed, opts...)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// NewServer seeds a fresh in-memory registry and returns a server exposing the
// garage routes. opts are applied first, so a server.WithConfig among them
// keeps the daemon name, version and routes.
func NewServer(seed *registry.Seed, opts ...server.Option) (*server.Server, error) {
	reg := registry.NewMemory()
	if err := registry.Apply(reg, seed); err != nil {
		return nil, err
	}

	return server.New(slices.Concat(opts, []server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(garage.NewHandler(reg).Routes()),
	})...), nil
}

// Version returns the build version, commit and date.
func Version() (string, string, string) {
	return version, commit, date
}
