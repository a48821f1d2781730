// Package client provides an HTTP client for the pinroute server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEndpoint is used when neither an endpoint nor PINROUTE_SERVER_URL is set.
const DefaultEndpoint = "http://localhost:8585"

// Client is an HTTP client for the pinroute server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a new client.
// If endpoint is empty, uses PINROUTE_SERVER_URL env var or defaults to localhost:8585.
// Timeout can be configured via PINROUTE_CLIENT_TIMEOUT env var (default 30s).
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("PINROUTE_SERVER_URL")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := 30 * time.Second
	if t := os.Getenv("PINROUTE_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server error: %d %s", e.Status, e.Message)
}

// do sends a request with an optional JSON body and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, r)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &e) == nil {
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// =============================================================================
// TYPES (matching the server's JSON)
// =============================================================================

// Address is a delivery office.
type Address struct {
	OfficeName string `json:"officeName"`
	Pincode    string `json:"pincode"`
	District   string `json:"district"`
	State      string `json:"state,omitempty"`
	OfficeType string `json:"officeType,omitempty"`
}

// Alternative is a suggested office with its confidence.
type Alternative struct {
	OfficeName string `json:"officeName"`
	Pincode    string `json:"pincode"`
	District   string `json:"district"`
	Confidence int    `json:"confidence"`
}

// ValidateInput is the address to validate.
type ValidateInput struct {
	Address  string `json:"address,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
	District string `json:"district,omitempty"`
}

// Validation is the server's verdict on an address.
type Validation struct {
	Success          bool          `json:"success"`
	Confidence       int           `json:"confidence"`
	CorrectedAddress *Address      `json:"correctedAddress"`
	Alternatives     []Alternative `json:"alternatives"`
	Message          string        `json:"message"`
}

// Endpoint is a route end.
type Endpoint struct {
	Hub      string `json:"hub"`
	District string `json:"district"`
}

// Leg is one hub on a route.
type Leg struct {
	StepNumber           int    `json:"stepNumber"`
	HubName              string `json:"hubName"`
	District             string `json:"district"`
	DistanceFromPrevious *int64 `json:"distanceFromPrevious,omitempty"`
}

// Route is a planned hub-to-hub route.
type Route struct {
	Source        Endpoint `json:"source"`
	Destination   Endpoint `json:"destination"`
	Path          []Leg    `json:"path"`
	TotalDistance int64    `json:"totalDistance"`
	EstimatedTime int64    `json:"estimatedTime"`
	NumberOfHops  int      `json:"numberOfHops"`
	Message       string   `json:"message,omitempty"`
}

// RouteResult is the server's answer to a route request.
// Route is nil when no route exists.
type RouteResult struct {
	Success bool   `json:"success"`
	Route   *Route `json:"route"`
	Message string `json:"message"`
}

// Hub is a routing hub with its outgoing connection count.
type Hub struct {
	Name        string `json:"name"`
	District    string `json:"district"`
	Connections int    `json:"connections"`
}

// OperationStats holds timing stats for one operation.
type OperationStats struct {
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	MinTimeMs   int64   `json:"minTimeMs"`
	MaxTimeMs   int64   `json:"maxTimeMs"`
}

// ServerStats holds runtime statistics.
type ServerStats struct {
	UptimeSeconds float64          `json:"uptimeSeconds"`
	Match         *OperationStats  `json:"match"`
	Route         *OperationStats  `json:"route"`
	StoreQuery    *OperationStats  `json:"storeQuery"`
	StoreSearch   *OperationStats  `json:"storeSearch"`
	Counters      map[string]int64 `json:"counters"`
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Validate resolves an address or PIN code to an office.
func (c *Client) Validate(ctx context.Context, in ValidateInput) (*Validation, error) {
	var out Validation
	if err := c.do(ctx, http.MethodPost, "/api/address/validate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search returns offices matching query.
func (c *Client) Search(ctx context.Context, query string) ([]Address, error) {
	var out struct {
		Results []Address `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/address/search/"+url.PathEscape(query), nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Route plans a route between two districts.
func (c *Client) Route(ctx context.Context, sourceDistrict, destinationDistrict string) (*RouteResult, error) {
	in := map[string]string{
		"sourceDistrict":      sourceDistrict,
		"destinationDistrict": destinationDistrict,
	}
	var out RouteResult
	if err := c.do(ctx, http.MethodPost, "/api/routing/calculate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Hubs lists the hub network.
func (c *Client) Hubs(ctx context.Context) ([]Hub, error) {
	var out struct {
		Hubs []Hub `json:"hubs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/routing/hubs", nil, &out); err != nil {
		return nil, err
	}
	return out.Hubs, nil
}

// GetServerStats returns in-memory runtime statistics.
func (c *Client) GetServerStats(ctx context.Context) (*ServerStats, error) {
	var out ServerStats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

// IsBadRequest reports whether err is a 400 from the server.
func IsBadRequest(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}
