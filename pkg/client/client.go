package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/cropguard/cropguard/pkg/models"
)

// Client talks to the CropGuard API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithTimeout sets the per-request timeout. Ignored when WithHTTPClient is
// also given.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpc.Timeout = d }
}

// New builds a client against baseURL, e.g. "http://127.0.0.1:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeImage uploads one crop image with its metadata and returns the
// analysis. The metadata is validated locally first so bad submissions never
// reach the network.
func (c *Client) AnalyzeImage(ctx context.Context, filename string, image []byte, meta models.ScanMeta) (*models.ScanResult, error) {
	if err := meta.Validate(); err != nil {
		return nil, &ValidationError{Detail: err.Error()}
	}
	if len(image) == 0 {
		return nil, &ValidationError{Field: "file", Detail: "image payload is empty"}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &ValidationError{Field: "file", Detail: err.Error()}
	}
	if _, err := fw.Write(image); err != nil {
		return nil, &ValidationError{Field: "file", Detail: err.Error()}
	}
	mw.WriteField("crop_type", string(meta.CropType))
	mw.WriteField("farm_size", fmt.Sprintf("%g", meta.FarmSizeHa))
	if meta.Location != "" {
		mw.WriteField("location", meta.Location)
	}
	if meta.WeatherHint != "" {
		mw.WriteField("weather_conditions", meta.WeatherHint)
	}
	if err := mw.Close(); err != nil {
		return nil, &ValidationError{Field: "file", Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze-image", &buf)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result models.ScanResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ScanHistory fetches the latest scans, most recent first. cropType filters
// when non-empty; limit <= 0 uses the server default.
func (c *Client) ScanHistory(ctx context.Context, limit int, cropType string) ([]models.HistoryEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if cropType != "" {
		q.Set("crop_type", cropType)
	}
	endpoint := c.baseURL + "/api/scan-history"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	var entries []models.HistoryEntry
	if err := c.do(req, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DashboardStats fetches the aggregate dashboard view.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/dashboard-stats", nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	var stats models.DashboardStats
	if err := c.do(req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Weather fetches the report for one location.
func (c *Client) Weather(ctx context.Context, location string) (*models.WeatherReport, error) {
	if location == "" {
		return nil, &ValidationError{Field: "location", Detail: "location is required"}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/weather/"+url.PathEscape(location), nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	var report models.WeatherReport
	if err := c.do(req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// do runs the request and maps the outcome onto the error taxonomy.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ServerError{StatusCode: resp.StatusCode, Detail: "malformed response body: " + err.Error()}
		}
		return nil
	}

	detail := readDetail(resp.Body)
	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return &ValidationError{Detail: detail}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &PermissionError{Detail: detail}
	default:
		return &ServerError{StatusCode: resp.StatusCode, Detail: detail}
	}
}

// readDetail pulls the {"detail": "..."} body servers send with errors,
// falling back to the raw text.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no further detail"
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return string(bytes.TrimSpace(raw))
}
