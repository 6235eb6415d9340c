// Package gateway wraps the field unit's REST API in a typed HTTP client.
// The backend is a black box: this package owns the wire format, the numeric
// ID convention of its paths, and nothing else.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"go.uber.org/zap"

	"github.com/cloudtree/fieldsync/pkg/soilid"
	"github.com/cloudtree/fieldsync/pkg/types"
)

// CreatedIDs carries the IDs a create call managed to recover from the
// backend's response. The create endpoints do not reliably echo assigned
// IDs; either field may be empty, in which case the sync engine falls back
// to append-order recovery.
type CreatedIDs struct {
	SoilID      string `json:"Soil_ID"`
	ParameterID string `json:"Parameter_ID"`
}

// Client provides access to the backend REST API.
type Client struct {
	httpClient *http.Client
	pingClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a backend client from the connection config. The ping
// client uses the shorter reachability timeout.
func NewClient(cfg types.Config, logger *zap.Logger) *Client {
	cfg = cfg.WithDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		pingClient: &http.Client{Timeout: cfg.PingTimeout},
		baseURL:    cfg.BackendURL,
		logger:     logger.Named("gateway"),
	}
}

// Soils fetches all soils from the backend.
func (c *Client) Soils(ctx context.Context) ([]types.Soil, error) {
	var soils []types.Soil
	if err := c.doJSON(ctx, http.MethodGet, nil, &soils, "soils"); err != nil {
		return nil, fmt.Errorf("get soils: %w", err)
	}
	return soils, nil
}

// Parameters fetches all readings for a soil. soilID may be a backend ID
// ("S0001") or a bare numeric string ("1").
func (c *Client) Parameters(ctx context.Context, soilID string) ([]types.Parameter, error) {
	n, err := numericID(soilID)
	if err != nil {
		return nil, fmt.Errorf("get parameters: %w", err)
	}

	var params []types.Parameter
	if err := c.doJSON(ctx, http.MethodGet, nil, &params, "soils", "parameters", n); err != nil {
		return nil, fmt.Errorf("get parameters for %s: %w", soilID, err)
	}
	return params, nil
}

// CreateSoil creates a soil bundled with its first reading. The returned
// CreatedIDs holds whatever assigned IDs the response happened to echo.
func (c *Client) CreateSoil(ctx context.Context, req types.CreateSoilRequest) (CreatedIDs, error) {
	var echo struct {
		CreatedIDs
		Soil struct {
			SoilID string `json:"Soil_ID"`
		} `json:"Soil"`
		Parameters struct {
			ParameterID string `json:"Parameter_ID"`
		} `json:"Parameters"`
	}
	if err := c.doJSON(ctx, http.MethodPost, req, &echo, "create", "soil"); err != nil {
		return CreatedIDs{}, fmt.Errorf("create soil: %w", err)
	}

	ids := echo.CreatedIDs
	if ids.SoilID == "" {
		ids.SoilID = echo.Soil.SoilID
	}
	if ids.ParameterID == "" {
		ids.ParameterID = echo.Parameters.ParameterID
	}

	c.logger.Info("soil created on backend",
		zap.String("name", req.Soil.Name),
		zap.String("echoed_soil_id", ids.SoilID))
	return ids, nil
}

// AddParameter appends a reading to an existing backend soil. The request's
// SoilID is translated to the bare numeric form the endpoint expects.
func (c *Client) AddParameter(ctx context.Context, req types.AddParameterRequest) (CreatedIDs, error) {
	n, err := numericID(req.SoilID)
	if err != nil {
		return CreatedIDs{}, fmt.Errorf("add parameter: %w", err)
	}
	req.SoilID = n

	var echo struct {
		CreatedIDs
		Parameters struct {
			ParameterID string `json:"Parameter_ID"`
		} `json:"Parameters"`
	}
	if err := c.doJSON(ctx, http.MethodPost, req, &echo, "add", "parameter"); err != nil {
		return CreatedIDs{}, fmt.Errorf("add parameter: %w", err)
	}

	ids := echo.CreatedIDs
	if ids.ParameterID == "" {
		ids.ParameterID = echo.Parameters.ParameterID
	}
	return ids, nil
}

// DeleteParameter removes a reading by backend ID.
func (c *Client) DeleteParameter(ctx context.Context, parameterID string) error {
	n, err := numericID(parameterID)
	if err != nil {
		return fmt.Errorf("delete parameter: %w", err)
	}
	if err := c.doJSON(ctx, http.MethodDelete, nil, nil, "delete", "parameter", n); err != nil {
		return fmt.Errorf("delete parameter %s: %w", parameterID, err)
	}
	return nil
}

// DeleteSoil removes a soil and all its readings by backend ID.
func (c *Client) DeleteSoil(ctx context.Context, soilID string) error {
	n, err := numericID(soilID)
	if err != nil {
		return fmt.Errorf("delete soil: %w", err)
	}
	if err := c.doJSON(ctx, http.MethodDelete, nil, nil, "delete", "soil", n); err != nil {
		return fmt.Errorf("delete soil %s: %w", soilID, err)
	}
	return nil
}

// Ping probes the backend with a bounded lightweight GET. Any response below
// the server-error threshold counts as reachable; timeouts, network errors,
// and 5xx do not.
func (c *Client) Ping(ctx context.Context) bool {
	endpoint, err := c.buildURL("soils")
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := c.pingClient.Do(req)
	if err != nil {
		c.logger.Debug("backend not reachable", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	reachable := resp.StatusCode < http.StatusInternalServerError
	c.logger.Debug("backend probe", zap.Int("status", resp.StatusCode), zap.Bool("reachable", reachable))
	return reachable
}

// doJSON executes one request against the backend, encoding body and
// decoding the response into out when non-nil. Decode failures on create
// responses are not errors: the backend echo is best-effort.
func (c *Client) doJSON(ctx context.Context, method string, body, out any, pathSegments ...string) error {
	endpoint, err := c.buildURL(pathSegments...)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("backend returned error",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			if method != http.MethodGet {
				// Create responses echo a payload of no fixed shape; a body
				// we cannot decode just means no IDs were recovered.
				c.logger.Debug("undecodable backend echo", zap.String("url", endpoint))
				return nil
			}
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// buildURL joins path segments onto the configured base URL. The backend's
// create endpoints use trailing slashes.
func (c *Client) buildURL(pathSegments ...string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	trailingSlash := pathSegments[0] == "create" || pathSegments[0] == "add"
	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)
	if trailingSlash {
		u.Path += "/"
	}
	return u.String(), nil
}

// numericID renders an entity ID in the bare numeric form the backend's
// paths and bodies expect: "S0042" and "42" both become "42". Local IDs
// have no numeric form and are rejected.
func numericID(id string) (string, error) {
	if n, ok := soilid.ToNumber(id); ok {
		return strconv.Itoa(n), nil
	}
	if _, err := strconv.Atoi(id); err == nil {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q has no backend numeric form", types.ErrInvalidID, id)
}
