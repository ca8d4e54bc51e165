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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/motolab/tuner/pkg/motorcycle"
	"github.com/motolab/tuner/pkg/registry"
	"github.com/motolab/tuner/pkg/server"
)

// Serve blocks until a signal arrives, so these tests exercise NewServer and
// Run with a cancellable context instead.

func TestConstants(t *testing.T) {
	if name != "tunerd" {
		t.Errorf("name = %q, want %q", name, "tunerd")
	}
	if versionDefault != "dev" {
		t.Errorf("versionDefault = %q, want %q", versionDefault, "dev")
	}

	v, c, d := Version()
	if v == "" || c == "" || d == "" {
		t.Errorf("Version() = %q, %q, %q; want non-empty values", v, c, d)
	}
}

func TestNewServer_Routes(t *testing.T) {
	s, err := NewServer(registry.DefaultSeed())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/motorcycle/r1", "", http.StatusOK},
		{http.MethodGet, "/motorcycle/v4", "", http.StatusOK},
		{http.MethodGet, "/motorcycle/unknown", "", http.StatusNotFound},
		{http.MethodPost, "/motorcycle/v4/upgrade", `{"name":"Exhaust","cost":500,"hp_gain":15,"weight_reduction":5}`, http.StatusOK},
		{http.MethodDelete, "/motorcycle/v4/upgrade/Exhaust", "", http.StatusOK},
		{http.MethodDelete, "/motorcycle/v4/upgrade/Exhaust", "", http.StatusBadRequest},
		{http.MethodGet, "/motorcycle/r1/report", "", http.StatusOK},
		{http.MethodGet, "/motorcycle/r1/plan?budget=500", "", http.StatusOK},
		{http.MethodGet, "/motorcycles", "", http.StatusOK},
		{http.MethodGet, "/catalog", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodPut, "/motorcycle/r1", "", http.StatusMethodNotAllowed},
	}

	h := s.Handler()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %q)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestNewServer_RootListsGarageRoutes(t *testing.T) {
	s, err := NewServer(registry.DefaultSeed())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp server.RootResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != name {
		t.Errorf("name = %q, want %q", resp.Name, name)
	}

	want := "POST /motorcycle/{id}/upgrade"
	found := false
	for _, r := range resp.Routes {
		if r == want {
			found = true
		}
	}
	if !found {
		t.Errorf("routes %v missing %q", resp.Routes, want)
	}
}

func TestNewServer_ConfigOptionKeepsRoutes(t *testing.T) {
	cfg := server.NewConfig()
	cfg.Port = 0

	s, err := NewServer(registry.DefaultSeed(), server.WithConfig(cfg))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/motorcycle/r1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestNewServer_InvalidSeed(t *testing.T) {
	overbuilt := registry.SeedMotorcycle{Model: "Overbuilt", BaseHP: 100, WeightKG: 150}
	for range motorcycle.MaxUpgrades + 1 {
		overbuilt.Upgrades = append(overbuilt.Upgrades, motorcycle.Upgrade{Name: "Slip-on", Cost: 10})
	}
	seed := registry.DefaultSeed()
	seed.Motorcycles["overbuilt"] = overbuilt

	if _, err := NewServer(seed); err == nil {
		t.Fatal("expected error for a seed with too many upgrades")
	}
}

func TestRun_MissingSeedFile(t *testing.T) {
	err := Run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

func TestRun_SeedFileAndShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.yaml")
	doc := `kind: Garage
apiVersion: tuner.motolab.dev/v1
motorcycles:
  mt09:
    model: Yamaha MT-09
    base_hp: 117
    weight_kg: 189
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(server.EnvAddress, "127.0.0.1")
	t.Setenv(server.EnvPort, "0")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := Run(ctx, path); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
