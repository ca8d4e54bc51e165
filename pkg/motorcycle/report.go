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
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// lbPerKG converts kilograms to pounds for the hp/lb figure.
const lbPerKG = 2.20462

// Report summarises a build for display.
type Report struct {
	Model        string  `json:"model" yaml:"model"`
	BaseHP       uint32  `json:"base_hp" yaml:"base_hp"`
	TotalHP      float64 `json:"total_hp" yaml:"total_hp"`
	WeightKG     float64 `json:"weight_kg" yaml:"weight_kg"`
	FinalWeight  float64 `json:"final_weight_kg" yaml:"final_weight_kg"`
	UpgradeCount int     `json:"upgrade_count" yaml:"upgrade_count"`

	// PerformanceIndex and PowerToWeight are nil when final weight is zero.
	PerformanceIndex *float64 `json:"performance_index" yaml:"performance_index"`
	PowerToWeight    *float64 `json:"hp_per_lb" yaml:"hp_per_lb"`

	TotalCost         float64 `json:"total_cost" yaml:"total_cost"`
	InstallationHours float64 `json:"installation_hours" yaml:"installation_hours"`

	// CostPerHP is total cost over horsepower gained, 0 when nothing was gained.
	CostPerHP float64 `json:"cost_per_hp" yaml:"cost_per_hp"`

	ByStage        []StageSummary        `json:"by_stage" yaml:"by_stage"`
	ByManufacturer []ManufacturerSummary `json:"by_manufacturer" yaml:"by_manufacturer"`
}

// StageSummary totals the upgrades installed at one tuning stage.
type StageSummary struct {
	Stage           uint8   `json:"stage" yaml:"stage"`
	Upgrades        int     `json:"upgrades" yaml:"upgrades"`
	Cost            float64 `json:"cost" yaml:"cost"`
	HPGain          float64 `json:"hp_gain" yaml:"hp_gain"`
	WeightReduction float64 `json:"weight_reduction" yaml:"weight_reduction"`
}

// ManufacturerSummary totals the upgrades from one manufacturer.
type ManufacturerSummary struct {
	Manufacturer string  `json:"manufacturer" yaml:"manufacturer"`
	Upgrades     int     `json:"upgrades" yaml:"upgrades"`
	Cost         float64 `json:"cost" yaml:"cost"`
	HPGain       float64 `json:"hp_gain" yaml:"hp_gain"`
}

// Report builds a Report from the current state of m.
// Manufacturers are grouped case-insensitively and keep the first spelling seen.
func (m *Motorcycle) Report() *Report {
	r := &Report{
		Model:        m.Model,
		BaseHP:       m.BaseHP,
		TotalHP:      m.TotalHP(),
		WeightKG:     m.WeightKG,
		FinalWeight:  m.FinalWeight(),
		UpgradeCount: len(m.Upgrades),
		TotalCost:    m.TotalCost,
	}

	if finite(m.PerformanceIndex) {
		pi := m.PerformanceIndex
		r.PerformanceIndex = &pi
	}
	if ptw := r.TotalHP / (r.FinalWeight * lbPerKG); finite(ptw) {
		r.PowerToWeight = &ptw
	}

	fold := cases.Fold()
	stages := map[uint8]*StageSummary{}
	makers := map[string]*ManufacturerSummary{}

	for _, u := range m.Upgrades {
		r.InstallationHours += u.InstallationTime

		s, ok := stages[u.Stage]
		if !ok {
			s = &StageSummary{Stage: u.Stage}
			stages[u.Stage] = s
		}
		s.Upgrades++
		s.Cost += u.Cost
		s.HPGain += u.HPGain
		s.WeightReduction += u.WeightReduction

		key := fold.String(strings.TrimSpace(u.Manufacturer))
		ms, ok := makers[key]
		if !ok {
			ms = &ManufacturerSummary{Manufacturer: strings.TrimSpace(u.Manufacturer)}
			makers[key] = ms
		}
		ms.Upgrades++
		ms.Cost += u.Cost
		ms.HPGain += u.HPGain
	}

	if gained := r.TotalHP - float64(m.BaseHP); gained > 0 {
		r.CostPerHP = r.TotalCost / gained
	}

	r.ByStage = make([]StageSummary, 0, len(stages))
	for _, s := range stages {
		r.ByStage = append(r.ByStage, *s)
	}
	slices.SortFunc(r.ByStage, func(a, b StageSummary) int { return int(a.Stage) - int(b.Stage) })

	r.ByManufacturer = make([]ManufacturerSummary, 0, len(makers))
	for _, ms := range makers {
		r.ByManufacturer = append(r.ByManufacturer, *ms)
	}
	slices.SortFunc(r.ByManufacturer, func(a, b ManufacturerSummary) int {
		return strings.Compare(a.Manufacturer, b.Manufacturer)
	})

	return r
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
