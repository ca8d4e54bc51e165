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

package motorcycle

import (
	"encoding/json"
	"slices"

	"github.com/motolab/tuner/pkg/errors"
)

// MaxUpgrades is the most upgrades a single build may carry.
const MaxUpgrades = 10

// Upgrade is one aftermarket part installed on a build.
type Upgrade struct {
	Name         string `json:"name" yaml:"name"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`

	// Stage groups parts by tuning stage. It does not affect any derived value.
	Stage uint8 `json:"stage" yaml:"stage"`

	Cost   float64 `json:"cost" yaml:"cost"`
	HPGain float64 `json:"hp_gain" yaml:"hp_gain"`

	// WeightReduction is subtracted from the base weight. Negative values add weight.
	WeightReduction float64 `json:"weight_reduction" yaml:"weight_reduction"`

	// InstallationTime is the shop time in hours. Informational only.
	InstallationTime float64 `json:"installation_time" yaml:"installation_time"`
}

// Motorcycle is a build: fixed base specs, installed upgrades and the values derived from them.
type Motorcycle struct {
	Model    string    `json:"model" yaml:"model"`
	BaseHP   uint32    `json:"base_hp" yaml:"base_hp"`
	WeightKG float64   `json:"weight_kg" yaml:"weight_kg"`
	Upgrades []Upgrade `json:"upgrades" yaml:"upgrades"`

	// Derived. Only recalculate writes these.
	TotalCost        float64 `json:"total_cost" yaml:"total_cost"`
	PerformanceIndex float64 `json:"performance_index" yaml:"performance_index"`
}

// New returns a stock build with no upgrades and its derived fields computed.
func New(model string, baseHP uint32, weightKG float64) *Motorcycle {
	m := &Motorcycle{
		Model:    model,
		BaseHP:   baseHP,
		WeightKG: weightKG,
		Upgrades: []Upgrade{},
	}
	m.recalculate()
	return m
}

// AddUpgrade appends u and recalculates. The build is left untouched when it
// already holds MaxUpgrades upgrades. Duplicate names are accepted.
func (m *Motorcycle) AddUpgrade(u Upgrade) error {
	if len(m.Upgrades) >= MaxUpgrades {
		return errors.NewWithContext(ErrCapacityExceeded.Code, ErrCapacityExceeded.Message, map[string]any{
			"limit": MaxUpgrades,
		})
	}
	m.Upgrades = append(m.Upgrades, u)
	m.recalculate()
	return nil
}

// RemoveUpgrade removes the first upgrade named name, in install order, and recalculates.
func (m *Motorcycle) RemoveUpgrade(name string) error {
	i := slices.IndexFunc(m.Upgrades, func(u Upgrade) bool { return u.Name == name })
	if i < 0 {
		return errors.NewWithContext(ErrUpgradeNotFound.Code, ErrUpgradeNotFound.Message, map[string]any{
			"name": name,
		})
	}
	m.Upgrades = slices.Delete(m.Upgrades, i, i+1)
	m.recalculate()
	return nil
}

// TotalHP is base horsepower plus every installed gain.
func (m *Motorcycle) TotalHP() float64 {
	hp := float64(m.BaseHP)
	for _, u := range m.Upgrades {
		hp += u.HPGain
	}
	return hp
}

// FinalWeight is base weight less every installed reduction. It may be zero or negative.
func (m *Motorcycle) FinalWeight() float64 {
	w := m.WeightKG
	for _, u := range m.Upgrades {
		w -= u.WeightReduction
	}
	return w
}

func (m *Motorcycle) recalculate() {
	m.PerformanceIndex = m.TotalHP() / m.FinalWeight() * 100

	var cost float64
	for _, u := range m.Upgrades {
		cost += u.Cost
	}
	m.TotalCost = cost
}

// Clone returns a deep copy that shares no memory with m.
func (m *Motorcycle) Clone() *Motorcycle {
	if m == nil {
		return nil
	}
	c := *m
	c.Upgrades = slices.Clone(m.Upgrades)
	if c.Upgrades == nil {
		c.Upgrades = []Upgrade{}
	}
	return &c
}

// MarshalJSON renders a non-finite performance index as null, which
// encoding/json would otherwise refuse to encode.
func (m Motorcycle) MarshalJSON() ([]byte, error) {
	type plain Motorcycle
	out := struct {
		plain
		PerformanceIndex *float64 `json:"performance_index"`
	}{plain: plain(m)}
	if finite(m.PerformanceIndex) {
		out.PerformanceIndex = &m.PerformanceIndex
	}
	return json.Marshal(out)
}

// UnmarshalJSON reverses MarshalJSON: a null performance index is recomputed
// from the decoded base specs and upgrades, restoring the non-finite value.
func (m *Motorcycle) UnmarshalJSON(data []byte) error {
	type plain Motorcycle
	in := struct {
		*plain
		PerformanceIndex *float64 `json:"performance_index"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.PerformanceIndex == nil {
		m.recalculate()
		return nil
	}
	m.PerformanceIndex = *in.PerformanceIndex
	return nil
}
