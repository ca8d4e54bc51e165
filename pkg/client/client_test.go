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

package client

import (
	"context"
	stderrors "errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motolab/tuner/pkg/errors"
	"github.com/motolab/tuner/pkg/garage"
	"github.com/motolab/tuner/pkg/motorcycle"
	"github.com/motolab/tuner/pkg/registry"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	reg := registry.NewMemory()
	require.NoError(t, registry.Apply(reg, registry.DefaultSeed()))

	mux := http.NewServeMux()
	for pattern, h := range garage.NewHandler(reg).Routes() {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", WithTimeout(5*time.Second))
}

func TestNew_Defaults(t *testing.T) {
	c := New("http://127.0.0.1:8080/")
	assert.Equal(t, "http://127.0.0.1:8080", c.BaseURL)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	require.NotNil(t, c.http)
	assert.Equal(t, 30*time.Second, c.http.Timeout)

	tr, ok := c.http.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, tr.TLSClientConfig)
	assert.False(t, tr.TLSClientConfig.InsecureSkipVerify)
}

func TestNew_Options(t *testing.T) {
	hc := &http.Client{}
	c := New("http://example", WithUserAgent("custom/1"), WithHTTPClient(hc))
	assert.Equal(t, "custom/1", c.userAgent)
	assert.Same(t, hc, c.http)

	c = New("http://example", WithInsecureSkipVerify(true), WithTimeout(time.Second))
	assert.Equal(t, time.Second, c.http.Timeout)
	assert.True(t, c.http.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify)
}

func TestClient_UpgradeLifecycle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	bike, err := c.Get(ctx, "v4")
	require.NoError(t, err)
	assert.Equal(t, "Ducati V4", bike.Model)
	assert.Empty(t, bike.Upgrades)

	bike, err = c.AddUpgrade(ctx, "v4", motorcycle.Upgrade{Name: "Exhaust", Cost: 500, HPGain: 15, WeightReduction: 5})
	require.NoError(t, err)
	assert.Equal(t, 500.0, bike.TotalCost)
	assert.InDelta(t, 120.53, bike.PerformanceIndex, 0.01)

	bike, err = c.RemoveUpgrade(ctx, "v4", "Exhaust")
	require.NoError(t, err)
	assert.Equal(t, 0.0, bike.TotalCost)

	_, err = c.RemoveUpgrade(ctx, "v4", "Exhaust")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, motorcycle.ErrUpgradeNotFound))
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, registry.ErrRecordNotFound))

	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "missing", se.Context["id"])
	assert.Equal(t, http.StatusNotFound, se.Context["status"])
}

func TestClient_CapacityExceeded(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for range motorcycle.MaxUpgrades {
		_, err := c.AddUpgrade(ctx, "r1", motorcycle.Upgrade{Name: "Slip-on", Cost: 10})
		require.NoError(t, err)
	}

	_, err := c.AddUpgrade(ctx, "r1", motorcycle.Upgrade{Name: "Slip-on", Cost: 10})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, motorcycle.ErrCapacityExceeded))
	assert.Contains(t, err.Error(), "Maximum upgrades reached")
}

func TestClient_InvalidPayloadKeepsServerCode(t *testing.T) {
	c := newTestClient(t)

	_, err := c.AddUpgrade(context.Background(), "r1", motorcycle.Upgrade{Cost: 10})
	require.Error(t, err)

	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.ErrCodeInvalidRequest, se.Code)
	assert.Equal(t, "upgrade name is required", se.Message)
}

func TestClient_ReadOnlyEndpoints(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r1", list[0].ID)

	rep, err := c.Report(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Yamaha R1", rep.Model)

	plan, err := c.Plan(ctx, "r1", 1000)
	require.NoError(t, err)
	assert.Len(t, plan.Upgrades, 2)

	parts, err := c.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, motorcycle.DefaultCatalog(), parts)

	_, err = c.Plan(ctx, "r1", -1)
	require.Error(t, err)
}

func TestClient_ServerErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   errors.ErrorCode
	}{
		{"rate limited", http.StatusTooManyRequests, "", errors.ErrCodeRateLimitExceeded},
		{"internal", http.StatusInternalServerError, "boom", errors.ErrCodeInternal},
		{"other 4xx", http.StatusConflict, "conflict", errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).List(context.Background())
			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.want, se.Code)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).List(context.Background())
	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.ErrCodeUnavailable, se.Code)
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "r1")
	require.Error(t, err)
}

func TestClient_EmptyBaseURL(t *testing.T) {
	_, err := New("").Catalog(context.Background())
	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, errors.ErrCodeInvalidRequest, se.Code)
}

func TestClient_ZeroWeightBuildKeepsInfiniteIndex(t *testing.T) {
	reg := registry.NewMemory()
	reg.Put("flat", motorcycle.New("Flat", 100, 0))

	mux := http.NewServeMux()
	for pattern, h := range garage.NewHandler(reg).Routes() {
		mux.HandleFunc(pattern, h)
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	bike, err := New(srv.URL).Get(context.Background(), "flat")
	require.NoError(t, err)
	assert.True(t, math.IsInf(bike.PerformanceIndex, 1), "got %v", bike.PerformanceIndex)
}
