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

// Package defaults provides centralized configuration constants for the tuner.
//
// This package defines timeout values, request limits, and other configuration
// defaults shared by the daemon, the HTTP client, and the CLI.
//
// # Timeout Categories
//
//   - Handler limits: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For outbound requests made by the CLI
//
// # Usage
//
//	import "github.com/motolab/tuner/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CLIRequestTimeout)
//	defer cancel()
package defaults
