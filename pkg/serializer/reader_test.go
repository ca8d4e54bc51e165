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

package serializer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"garage.json", FormatJSON},
		{"garage.JSON", FormatJSON},
		{"garage.yaml", FormatYAML},
		{"/etc/tuner/garage.yml", FormatYAML},
		{"report.txt", FormatTable},
		{"report.table", FormatTable},
		{"garage", FormatJSON},
		{"garage.toml", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"table rejected", FormatTable, true},
		{"unknown rejected", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.format, strings.NewReader("{}"))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    testPart
		wantErr bool
	}{
		{
			name:   "json",
			format: FormatJSON,
			input:  `{"name":"Exhaust","hp_gain":8.5}`,
			want:   testPart{Name: "Exhaust", HPGain: 8.5},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input:  "name: Exhaust\nhp_gain: 8.5\n",
			want:   testPart{Name: "Exhaust", HPGain: 8.5},
		},
		{
			name:    "malformed json",
			format:  FormatJSON,
			input:   `{"name":`,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			format:  FormatYAML,
			input:   "name: [unclosed",
			wantErr: true,
		},
		{
			name:    "empty input",
			format:  FormatJSON,
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}

			var got testPart
			err = r.Deserialize(&got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Deserialize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_DeserializeNilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testPart{}); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader = %v", err)
	}

	r = &Reader{format: FormatJSON}
	if err := r.Deserialize(&testPart{}); err == nil {
		t.Error("expected error for nil input")
	}
}

func TestNewFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.yaml")
	if err := os.WriteFile(path, []byte("name: Quickshifter\nhp_gain: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, err := NewFileReaderAuto(path)
	if err != nil {
		t.Fatalf("NewFileReaderAuto failed: %v", err)
	}
	var got testPart
	if err := r.Deserialize(&got); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if got.Name != "Quickshifter" {
		t.Errorf("Name = %q", got.Name)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	if _, err := NewFileReader(FormatJSON, filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := NewFileReader(FormatTable, path); err == nil {
		t.Error("expected error for table format")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "build.json")
		content := `{"model":"Ducati V4","base_hp":214,"upgrades":[{"name":"Exhaust","hp_gain":8}]}`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := FromFile[testBuild](path)
		if err != nil {
			t.Fatalf("FromFile failed: %v", err)
		}
		if got.Model != "Ducati V4" || got.BaseHP != 214 || len(got.Upgrades) != 1 {
			t.Errorf("unexpected value: %+v", got)
		}
	})

	t.Run("round trip through writer", func(t *testing.T) {
		path := filepath.Join(dir, "build.yaml")
		w := NewFileWriterOrStdout(FormatYAML, path)
		if err := w.Serialize(context.Background(), sampleBuild()); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		got, err := FromFile[testBuild](path)
		if err != nil {
			t.Fatalf("FromFile failed: %v", err)
		}
		if got.Upgrades[1].HPGain != 12 {
			t.Errorf("unexpected value: %+v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := FromFile[testBuild](filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := FromFile[testBuild](path); err == nil {
			t.Error("expected error")
		}
	})
}
