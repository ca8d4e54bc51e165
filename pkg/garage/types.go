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

package garage

import (
	"github.com/motolab/tuner/pkg/motorcycle"
)

// Summary is one row of GET /motorcycles.
type Summary struct {
	ID               string   `json:"id" yaml:"id"`
	Model            string   `json:"model" yaml:"model"`
	PerformanceIndex *float64 `json:"performance_index" yaml:"performance_index"`
	TotalCost        float64  `json:"total_cost" yaml:"total_cost"`
	Upgrades         int      `json:"upgrades" yaml:"upgrades"`
}

// PlanResponse is the body of GET /motorcycle/{id}/plan.
type PlanResponse struct {
	ID       string               `json:"id" yaml:"id"`
	Budget   float64              `json:"budget" yaml:"budget"`
	Upgrades []motorcycle.Upgrade `json:"upgrades" yaml:"upgrades"`
	Cost     float64              `json:"cost" yaml:"cost"`

	// Projected is the build as it would be with every planned part installed.
	Projected *motorcycle.Motorcycle `json:"projected" yaml:"projected"`
}
