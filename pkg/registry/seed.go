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

package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/motolab/tuner/pkg/errors"
	"github.com/motolab/tuner/pkg/header"
	"github.com/motolab/tuner/pkg/motorcycle"
	"github.com/motolab/tuner/pkg/serializer"
)

// Seed is a Garage document: the builds a registry starts with.
//
//	kind: Garage
//	apiVersion: tuner.motolab.dev/v1
//	motorcycles:
//	  r1:
//	    model: Yamaha R1
//	    base_hp: 200
//	    weight_kg: 201
//	    upgrades:
//	      - name: Full Exhaust
//	        cost: 2499.99
//	        hp_gain: 8
type Seed struct {
	header.Header `json:",inline" yaml:",inline"`

	Motorcycles map[string]SeedMotorcycle `json:"motorcycles" yaml:"motorcycles"`
}

// SeedMotorcycle is the base spec of one build plus the upgrades to install on it.
// Derived fields are never read from a seed.
type SeedMotorcycle struct {
	Model    string               `json:"model" yaml:"model"`
	BaseHP   uint32               `json:"base_hp" yaml:"base_hp"`
	WeightKG float64              `json:"weight_kg" yaml:"weight_kg"`
	Upgrades []motorcycle.Upgrade `json:"upgrades,omitempty" yaml:"upgrades,omitempty"`
}

// DefaultSeed returns the two stock builds the daemon serves when no seed file is given.
func DefaultSeed() *Seed {
	return &Seed{
		Header: *header.New(header.WithKind(header.KindGarage)),
		Motorcycles: map[string]SeedMotorcycle{
			"r1": {Model: "Yamaha R1", BaseHP: 200, WeightKG: 201},
			"v4": {Model: "Ducati V4", BaseHP: 214, WeightKG: 195},
		},
	}
}

// LoadSeed reads and validates a Garage document from a JSON or YAML file.
func LoadSeed(path string) (*Seed, error) {
	seed, err := serializer.FromFile[Seed](path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to load seed", err)
	}
	if err := seed.Validate(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "invalid seed", err, map[string]any{
			"path": path,
		})
	}
	return seed, nil
}

// Validate checks the header and the base spec of every build.
func (s *Seed) Validate() error {
	if err := s.Header.Validate(header.KindGarage); err != nil {
		return err
	}
	for id, m := range s.Motorcycles {
		if id == "" {
			return fmt.Errorf("motorcycle with empty id")
		}
		if m.Model == "" {
			return fmt.Errorf("motorcycle %q: model is required", id)
		}
		if m.WeightKG <= 0 {
			return fmt.Errorf("motorcycle %q: weight_kg must be positive, got %v", id, m.WeightKG)
		}
		if len(m.Upgrades) > motorcycle.MaxUpgrades {
			return fmt.Errorf("motorcycle %q: %d upgrades exceeds limit of %d", id, len(m.Upgrades), motorcycle.MaxUpgrades)
		}
	}
	return nil
}

// Apply builds every seeded motorcycle through motorcycle.New and AddUpgrade
// and stores it in reg. Nothing is stored if any build fails.
func Apply(reg Registry, seed *Seed) error {
	ids := make([]string, 0, len(seed.Motorcycles))
	for id := range seed.Motorcycles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	built := make([]*motorcycle.Motorcycle, 0, len(ids))
	for _, id := range ids {
		spec := seed.Motorcycles[id]
		m := motorcycle.New(spec.Model, spec.BaseHP, spec.WeightKG)
		for _, u := range spec.Upgrades {
			if err := m.AddUpgrade(u); err != nil {
				return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to seed motorcycle", err, map[string]any{
					"id":      id,
					"upgrade": u.Name,
				})
			}
		}
		built = append(built, m)
	}

	for i, id := range ids {
		reg.Put(id, built[i])
	}

	slog.Info("registry seeded", "motorcycles", len(ids))
	return nil
}

// Snapshot exports the current contents of reg as a Garage document.
func Snapshot(reg Registry, version string) *Seed {
	s := &Seed{Motorcycles: map[string]SeedMotorcycle{}}
	s.Init(header.KindGarage, header.APIVersion, version)

	for _, e := range reg.List() {
		s.Motorcycles[e.ID] = SeedMotorcycle{
			Model:    e.Motorcycle.Model,
			BaseHP:   e.Motorcycle.BaseHP,
			WeightKG: e.Motorcycle.WeightKG,
			Upgrades: e.Motorcycle.Upgrades,
		}
	}
	return s
}
