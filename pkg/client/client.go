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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/motolab/tuner/pkg/defaults"
	"github.com/motolab/tuner/pkg/errors"
	"github.com/motolab/tuner/pkg/garage"
	"github.com/motolab/tuner/pkg/motorcycle"
)

// DefaultUserAgent is sent when no WithUserAgent option is given.
const DefaultUserAgent = "tuner-client/1.0"

const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 10 << 20
)

// Option configures a Client.
type Option func(*Client)

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the total per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying client and its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithInsecureSkipVerify disables TLS certificate verification on the default transport.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		c.insecureSkipVerify = skip
	}
}

// Client talks to a tunerd instance at BaseURL.
type Client struct {
	BaseURL string

	userAgent          string
	timeout            time.Duration
	insecureSkipVerify bool
	http               *http.Client
}

// New returns a Client for baseURL with a tuned default transport.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: DefaultUserAgent,
		timeout:   defaults.HTTPClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{
			Timeout:   c.timeout,
			Transport: newTransport(c.insecureSkipVerify),
		}
	}
	return c
}

func newTransport(insecureSkipVerify bool) *http.Transport {
	return &http.Transport{
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // opt-in for local daemons with self-signed certs
		},
	}
}

// Get returns the current build stored under id.
func (c *Client) Get(ctx context.Context, id string) (*motorcycle.Motorcycle, error) {
	var out motorcycle.Motorcycle
	if err := c.do(ctx, http.MethodGet, "/motorcycle/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, withID(err, id)
	}
	return &out, nil
}

// List returns a summary of every stored build, sorted by id.
func (c *Client) List(ctx context.Context) ([]garage.Summary, error) {
	var out []garage.Summary
	if err := c.do(ctx, http.MethodGet, "/motorcycles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Report returns the build report for id.
func (c *Client) Report(ctx context.Context, id string) (*motorcycle.Report, error) {
	var out motorcycle.Report
	if err := c.do(ctx, http.MethodGet, "/motorcycle/"+url.PathEscape(id)+"/report", nil, &out); err != nil {
		return nil, withID(err, id)
	}
	return &out, nil
}

// Plan asks the daemon which catalog parts fit within budget for id.
func (c *Client) Plan(ctx context.Context, id string, budget float64) (*garage.PlanResponse, error) {
	q := url.Values{"budget": []string{strconv.FormatFloat(budget, 'f', -1, 64)}}
	var out garage.PlanResponse
	if err := c.do(ctx, http.MethodGet, "/motorcycle/"+url.PathEscape(id)+"/plan?"+q.Encode(), nil, &out); err != nil {
		return nil, withID(err, id)
	}
	return &out, nil
}

// Catalog returns the parts catalog the daemon plans from.
func (c *Client) Catalog(ctx context.Context) ([]motorcycle.Upgrade, error) {
	var out []motorcycle.Upgrade
	if err := c.do(ctx, http.MethodGet, "/catalog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddUpgrade installs u on id and returns the updated build.
func (c *Client) AddUpgrade(ctx context.Context, id string, u motorcycle.Upgrade) (*motorcycle.Motorcycle, error) {
	body, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode upgrade", err)
	}
	var out motorcycle.Motorcycle
	if err := c.do(ctx, http.MethodPost, "/motorcycle/"+url.PathEscape(id)+"/upgrade", body, &out); err != nil {
		return nil, withID(err, id)
	}
	return &out, nil
}

// RemoveUpgrade removes the first upgrade called name from id and returns the updated build.
func (c *Client) RemoveUpgrade(ctx context.Context, id, name string) (*motorcycle.Motorcycle, error) {
	var out motorcycle.Motorcycle
	path := "/motorcycle/" + url.PathEscape(id) + "/upgrade/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, withID(err, id)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	if c.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "server URL is empty")
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var ne net.Error
		if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &ne) && ne.Timeout()) {
			return errors.Wrap(errors.ErrCodeTimeout, "request timed out", err)
		}
		return errors.WrapWithContext(errors.ErrCodeUnavailable, "request failed", err, map[string]any{
			"url": c.BaseURL + path,
		})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to decode response", err)
	}
	return nil
}

// responseError turns a non-2xx response into a StructuredError.
func responseError(resp *http.Response, data []byte) error {
	status := map[string]any{"status": resp.StatusCode}
	text := strings.TrimSpace(string(data))

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var er struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		}
		if err := json.Unmarshal(data, &er); err == nil && er.Code != "" {
			for k, v := range er.Details {
				status[k] = v
			}
			return errors.NewWithContext(errors.ErrorCode(er.Code), er.Message, status)
		}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.NewWithContext(errors.ErrCodeNotFound, "motorcycle not found", status)
	case text == motorcycle.ErrCapacityExceeded.Message:
		return errors.NewWithContext(errors.ErrCodeCapacityExceeded, text, status)
	case text == motorcycle.ErrUpgradeNotFound.Message:
		return errors.NewWithContext(errors.ErrCodeUpgradeNotFound, text, status)
	case resp.StatusCode == http.StatusTooManyRequests:
		return errors.NewWithContext(errors.ErrCodeRateLimitExceeded, "rate limit exceeded", status)
	case resp.StatusCode >= 500:
		return errors.NewWithContext(errors.ErrCodeInternal, fmt.Sprintf("server error: %s", resp.Status), status)
	default:
		if text == "" {
			text = resp.Status
		}
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, text, status)
	}
}

func withID(err error, id string) error {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		if se.Context == nil {
			se.Context = map[string]any{}
		}
		se.Context["id"] = id
	}
	return err
}
