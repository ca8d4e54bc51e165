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

// Package serializer provides encoding and decoding of tuner documents in multiple formats.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, used for API responses and the default CLI output
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable, used for garage seed files
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flat FIELD/VALUE listing keyed by JSON field names
//   - Suitable for terminal viewing
//   - Write-only (no deserialization support)
//
// # Usage - Encoding
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, outputPath)
//	defer w.Close()
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// # Usage - Decoding
//
//	seed, err := serializer.FromFile[registry.Seed]("garage.yaml")
//
// FormatFromPath picks the format from the extension (.json, .yaml/.yml, .txt/.table).
//
// # HTTP Helpers
//
// RespondJSON buffers the encoded body before writing headers so an encoding
// failure never leaves a half-written 200 on the wire. RespondText and
// RespondEmpty cover plain-text and bodiless responses.
package serializer
