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
	"cmp"
	"slices"
)

// DefaultCatalog returns the built-in parts catalog, three parts per tuning stage.
// The slice is freshly allocated on every call.
func DefaultCatalog() []Upgrade {
	return []Upgrade{
		{Name: "Quick Shifter", Manufacturer: "Translogic", Stage: 1, Cost: 699.99, HPGain: 0, WeightReduction: 0.2, InstallationTime: 2},
		{Name: "Air Filter", Manufacturer: "K&N", Stage: 1, Cost: 89.99, HPGain: 2, WeightReduction: 0.1, InstallationTime: 0.5},
		{Name: "ECU Flash", Manufacturer: "Woolich Racing", Stage: 1, Cost: 499.99, HPGain: 5, WeightReduction: 0, InstallationTime: 1},
		{Name: "Full Exhaust", Manufacturer: "Akrapovič", Stage: 2, Cost: 2499.99, HPGain: 8, WeightReduction: 4.5, InstallationTime: 3},
		{Name: "Race ECU", Manufacturer: "GET", Stage: 2, Cost: 1499.99, HPGain: 10, WeightReduction: 0, InstallationTime: 2},
		{Name: "Brake Upgrade", Manufacturer: "Brembo", Stage: 2, Cost: 1299.99, HPGain: 0, WeightReduction: 1.2, InstallationTime: 4},
		{Name: "Carbon Wheels", Manufacturer: "BST", Stage: 3, Cost: 3999.99, HPGain: 0, WeightReduction: 3.8, InstallationTime: 4},
		{Name: "Race Suspension", Manufacturer: "Öhlins", Stage: 3, Cost: 4499.99, HPGain: 0, WeightReduction: 1.5, InstallationTime: 6},
		{Name: "Power Commander", Manufacturer: "Dynojet", Stage: 3, Cost: 899.99, HPGain: 12, WeightReduction: 0, InstallationTime: 2},
	}
}

// Plan picks parts from catalog that fit within budget, highest hp gain first.
// Ties keep catalog order. Parts already installed on m (by name) are skipped and
// the pick never exceeds the build's free upgrade slots. m is not modified.
func (m *Motorcycle) Plan(catalog []Upgrade, budget float64) []Upgrade {
	candidates := slices.Clone(catalog)
	slices.SortStableFunc(candidates, func(a, b Upgrade) int { return cmp.Compare(b.HPGain, a.HPGain) })

	installed := make(map[string]struct{}, len(m.Upgrades))
	for _, u := range m.Upgrades {
		installed[u.Name] = struct{}{}
	}

	free := MaxUpgrades - len(m.Upgrades)
	picked := []Upgrade{}
	remaining := budget
	for _, c := range candidates {
		if len(picked) >= free {
			break
		}
		if _, ok := installed[c.Name]; ok {
			continue
		}
		if c.Cost <= remaining {
			picked = append(picked, c)
			remaining -= c.Cost
		}
	}
	return picked
}
