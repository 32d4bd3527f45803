// Package render implements the DeployClient port against the Render REST API.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/mehtaportfolio/data-backend/internal/domain/model"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// DefaultBaseURL is the public Render API root.
const DefaultBaseURL = "https://api.render.com/v1"

// Compile-time interface satisfaction check.
var _ driven.DeployClient = (*Client)(nil)

// Client implements the driven.DeployClient port for a single Render service.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	serviceID string
}

// deployEntry is one element of the deploys list response.
type deployEntry struct {
	Deploy struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"deploy"`
}

// NewClient creates a Render client whose transport caches responses that
// Render marks as cacheable (ETag / Cache-Control).
func NewClient(baseURL, apiKey, serviceID string) *Client {
	httpClient := &http.Client{
		Transport: httpcache.NewMemoryCacheTransport(),
		Timeout:   30 * time.Second,
	}
	return newClient(httpClient, baseURL, apiKey, serviceID)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, apiKey, serviceID string) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return newClient(httpClient, baseURL, apiKey, serviceID), nil
}

func newClient(httpClient *http.Client, baseURL, apiKey, serviceID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:      httpClient,
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		serviceID: serviceID,
	}
}

// LatestDeploy fetches the most recent deploy of the service. An empty deploy
// list yields a zero DeployStatus, which is not running.
func (c *Client) LatestDeploy(ctx context.Context) (model.DeployStatus, error) {
	if err := c.checkConfigured(); err != nil {
		return model.DeployStatus{}, err
	}

	endpoint := fmt.Sprintf("%s/services/%s/deploys?limit=1", c.baseURL, url.PathEscape(c.serviceID))
	resp, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return model.DeployStatus{}, fmt.Errorf("fetch deploys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.DeployStatus{}, upstreamError("fetch deploys", resp)
	}

	var deploys []deployEntry
	if err := json.NewDecoder(resp.Body).Decode(&deploys); err != nil {
		return model.DeployStatus{}, fmt.Errorf("decode deploys: %w: %w", driven.ErrUpstream, err)
	}

	if len(deploys) == 0 {
		slog.Debug("render returned no deploys", "service", c.serviceID)
		return model.DeployStatus{}, nil
	}

	return model.DeployStatus{Status: deploys[0].Deploy.Status}, nil
}

// Restart asks Render to restart the service. It returns once Render has
// accepted the request.
func (c *Client) Restart(ctx context.Context) error {
	if err := c.checkConfigured(); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/services/%s/restart", c.baseURL, url.PathEscape(c.serviceID))
	resp, err := c.do(ctx, http.MethodPost, endpoint)
	if err != nil {
		return fmt.Errorf("restart service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return upstreamError("restart service", resp)
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func (c *Client) checkConfigured() error {
	if c.apiKey == "" || c.serviceID == "" {
		return driven.ErrDeployNotConfigured
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", driven.ErrUpstream, err)
	}
	return resp, nil
}

// upstreamError reads a short prefix of the error body for the log and
// returns an error wrapping driven.ErrUpstream.
func upstreamError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	slog.Warn("render api request failed",
		"op", op,
		"status", resp.StatusCode,
		"body", strings.TrimSpace(string(body)),
	)
	return fmt.Errorf("%s: %w: status %d", op, driven.ErrUpstream, resp.StatusCode)
}
