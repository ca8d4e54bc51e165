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
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/motolab/tuner/pkg/defaults"
	"github.com/motolab/tuner/pkg/errors"
	"github.com/motolab/tuner/pkg/motorcycle"
	"github.com/motolab/tuner/pkg/registry"
	"github.com/motolab/tuner/pkg/serializer"
	"github.com/motolab/tuner/pkg/server"
)

// Handler serves the garage routes from a Registry.
type Handler struct {
	reg     registry.Registry
	catalog []motorcycle.Upgrade
}

// Option configures a Handler.
type Option func(*Handler)

// WithCatalog replaces the parts catalog used for planning.
func WithCatalog(catalog []motorcycle.Upgrade) Option {
	return func(h *Handler) {
		h.catalog = catalog
	}
}

// NewHandler returns a Handler backed by reg and the default parts catalog.
func NewHandler(reg registry.Registry, opts ...Option) *Handler {
	h := &Handler{
		reg:     reg,
		catalog: motorcycle.DefaultCatalog(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the handler map for server.WithHandler.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /motorcycle/{id}":                  h.GetMotorcycle,
		"POST /motorcycle/{id}/upgrade":         h.AddUpgrade,
		"DELETE /motorcycle/{id}/upgrade/{name}": h.RemoveUpgrade,
		"GET /motorcycle/{id}/report":           h.Report,
		"GET /motorcycle/{id}/plan":             h.Plan,
		"GET /motorcycles":                      h.List,
		"GET /catalog":                          h.Catalog,
	}
}

// GetMotorcycle handles GET /motorcycle/{id}.
func (h *Handler) GetMotorcycle(w http.ResponseWriter, r *http.Request) {
	bike, err := h.reg.Get(r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, bike)
}

// AddUpgrade handles POST /motorcycle/{id}/upgrade.
func (h *Handler) AddUpgrade(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var u motorcycle.Upgrade
	if err := decodeUpgrade(w, r, &u); err != nil {
		upgradeOperations.WithLabelValues(opAdd, resultInvalid).Inc()
		server.WriteErrorFromErr(w, r, err, "Invalid upgrade payload", nil)
		return
	}

	bike, err := h.reg.Update(id, func(m *motorcycle.Motorcycle) error {
		return m.AddUpgrade(u)
	})
	if err != nil {
		upgradeOperations.WithLabelValues(opAdd, resultFor(err)).Inc()
		h.writeDomainError(w, r, err)
		return
	}

	upgradeOperations.WithLabelValues(opAdd, resultOK).Inc()
	slog.Info("upgrade installed",
		"requestID", server.RequestIDFromContext(r.Context()),
		"id", id,
		"upgrade", u.Name,
		"upgrades", len(bike.Upgrades),
		"totalCost", bike.TotalCost,
	)
	serializer.RespondJSON(w, http.StatusOK, bike)
}

// RemoveUpgrade handles DELETE /motorcycle/{id}/upgrade/{name}.
func (h *Handler) RemoveUpgrade(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := r.PathValue("name")

	bike, err := h.reg.Update(id, func(m *motorcycle.Motorcycle) error {
		return m.RemoveUpgrade(name)
	})
	if err != nil {
		upgradeOperations.WithLabelValues(opRemove, resultFor(err)).Inc()
		h.writeDomainError(w, r, err)
		return
	}

	upgradeOperations.WithLabelValues(opRemove, resultOK).Inc()
	slog.Info("upgrade removed",
		"requestID", server.RequestIDFromContext(r.Context()),
		"id", id,
		"upgrade", name,
		"upgrades", len(bike.Upgrades),
	)
	serializer.RespondJSON(w, http.StatusOK, bike)
}

// Report handles GET /motorcycle/{id}/report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	bike, err := h.reg.Get(r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, bike.Report())
}

// Plan handles GET /motorcycle/{id}/plan?budget=N.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	budget, err := strconv.ParseFloat(r.URL.Query().Get("budget"), 64)
	if err != nil || budget < 0 || math.IsInf(budget, 0) || math.IsNaN(budget) {
		server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeInvalidRequest,
			"budget must be a non-negative number", false, map[string]any{"budget": r.URL.Query().Get("budget")})
		return
	}

	bike, err := h.reg.Get(id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	picked := bike.Plan(h.catalog, budget)
	resp := PlanResponse{
		ID:        id,
		Budget:    budget,
		Upgrades:  picked,
		Projected: bike,
	}
	for _, u := range picked {
		resp.Cost += u.Cost
		// Plan never exceeds free slots
		_ = resp.Projected.AddUpgrade(u)
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// List handles GET /motorcycles.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	entries := h.reg.List()
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		out = append(out, Summary{
			ID:               e.ID,
			Model:            e.Motorcycle.Model,
			PerformanceIndex: e.Motorcycle.Report().PerformanceIndex,
			TotalCost:        e.Motorcycle.TotalCost,
			Upgrades:         len(e.Motorcycle.Upgrades),
		})
	}
	serializer.RespondJSON(w, http.StatusOK, out)
}

// Catalog handles GET /catalog.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	serializer.RespondJSON(w, http.StatusOK, h.catalog)
}

// writeDomainError renders registry and build errors in their boundary form.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case stderrors.Is(err, registry.ErrRecordNotFound):
		serializer.RespondEmpty(w, http.StatusNotFound)
	case stderrors.Is(err, motorcycle.ErrCapacityExceeded):
		serializer.RespondText(w, http.StatusBadRequest, motorcycle.ErrCapacityExceeded.Message)
	case stderrors.Is(err, motorcycle.ErrUpgradeNotFound):
		serializer.RespondText(w, http.StatusBadRequest, motorcycle.ErrUpgradeNotFound.Message)
	default:
		slog.Error("unexpected garage error", "error", err, "path", r.URL.Path)
		server.WriteErrorFromErr(w, r, err, "Internal server error", nil)
	}
}

func resultFor(err error) string {
	switch errors.CodeOf(err) {
	case errors.ErrCodeNotFound:
		return resultNotFound
	case errors.ErrCodeCapacityExceeded:
		return resultCapacityExceeded
	case errors.ErrCodeUpgradeNotFound:
		return resultUpgradeNotFound
	default:
		return resultInvalid
	}
}

// decodeUpgrade reads exactly one JSON object of at most MaxRequestBodyBytes.
func decodeUpgrade(w http.ResponseWriter, r *http.Request, u *motorcycle.Upgrade) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes))
	if err := dec.Decode(u); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "request body too large", err,
				map[string]any{"limit": tooLarge.Limit})
		}
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid upgrade JSON", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New(errors.ErrCodeInvalidRequest, "request body must contain a single JSON object")
	}

	if u.Name == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "upgrade name is required")
	}
	for field, v := range map[string]float64{
		"cost":              u.Cost,
		"hp_gain":           u.HPGain,
		"weight_reduction":  u.WeightReduction,
		"installation_time": u.InstallationTime,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "numeric fields must be finite", map[string]any{"field": field})
		}
	}
	if u.Cost < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "cost must not be negative", map[string]any{"cost": u.Cost})
	}
	return nil
}
