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

package server

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/motolab/tuner/pkg/errors"
	"github.com/motolab/tuner/pkg/serializer"
)

const rootPattern = "/"

// System endpoints are served outside the middleware chain so probes and
// scrapes are never rate limited.
var systemRoutes = []string{
	"GET /health",
	"GET /ready",
	"GET /metrics",
}

// setupRoutes registers system endpoints and every configured handler.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	for pattern, handler := range s.config.Handlers {
		mux.HandleFunc(pattern, s.withMiddleware(handler))
	}

	return mux
}

// routes lists every pattern served, system endpoints included, sorted.
func (s *Server) routes() []string {
	out := make([]string, 0, len(s.config.Handlers)+len(systemRoutes))
	for pattern := range s.config.Handlers {
		if pattern == rootPattern {
			continue
		}
		out = append(out, pattern)
	}
	out = append(out, systemRoutes...)
	sort.Strings(out)
	return out
}

// defaultRootHandler describes the server on GET / and answers everything
// no other pattern matched.
func (s *Server) defaultRootHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{"method": r.Method, "path": r.URL.Path})
		return
	}

	if r.URL.Path != rootPattern {
		WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"No route matches the request path", false, map[string]any{"path": r.URL.Path})
		return
	}

	slog.Debug("handling default route",
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	serializer.RespondJSON(w, http.StatusOK, RootResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	})
}
