package okx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=okx_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultBaseURL = "https://www.okx.com"

// APIClient is a client for the OKX rubik statistics API.
type APIClient struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// APIClientOption is a configuration option for the OKX API client.
type APIClientOption func(*APIClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) APIClientOption {
	return func(c *APIClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) APIClientOption {
	return func(c *APIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) APIClientOption {
	return func(c *APIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewAPIClient creates a new OKX API client.
func NewAPIClient(options ...APIClientOption) (*APIClient, error) {
	var apiClient = &APIClient{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(apiClient)
	}
	return apiClient, nil
}

// envelope is the common OKX v5 response wrapper. Data rows are flat
// string arrays whose layout depends on the endpoint.
type envelope struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

// GetLongShortRatio returns the contract long/short account ratio rows
// for a currency, newest first. Each row is [timestamp, ratio].
func (c *APIClient) GetLongShortRatio(ctx context.Context, ccy, period string) ([][]string, error) {
	q := url.Values{}
	q.Set("ccy", ccy)
	q.Set("period", period)
	return c.getRows(ctx, "/api/v5/rubik/stat/contracts/long-short-account-ratio", q)
}

// GetTakerVolume returns contract taker volume rows for a currency,
// newest first. Each row is [timestamp, sellVolume, buyVolume].
func (c *APIClient) GetTakerVolume(ctx context.Context, ccy, period string) ([][]string, error) {
	q := url.Values{}
	q.Set("ccy", ccy)
	q.Set("instType", "CONTRACTS")
	q.Set("period", period)
	return c.getRows(ctx, "/api/v5/rubik/stat/taker-volume", q)
}

func (c *APIClient) getRows(ctx context.Context, path string, q url.Values) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(b))
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if env.Code != "0" {
		return nil, fmt.Errorf("upstream error: code=%s msg=%q", env.Code, env.Msg)
	}
	return env.Data, nil
}
