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
	"github.com/motolab/tuner/pkg/errors"
)

var (
	// ErrCapacityExceeded is returned when a build already holds MaxUpgrades upgrades.
	ErrCapacityExceeded = errors.New(errors.ErrCodeCapacityExceeded, "Maximum upgrades reached")

	// ErrUpgradeNotFound is returned when no installed upgrade has the requested name.
	ErrUpgradeNotFound = errors.New(errors.ErrCodeUpgradeNotFound, "Upgrade not found")
)
