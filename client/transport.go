package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Endpoint paths on the FAXAGE host.
const (
	PathAPI   = "/httpsfax.php"
	PathDebug = "/httpsfax-debug.php"
)

// DefaultBaseURL is the production FAXAGE API host.
const DefaultBaseURL = "https://api.faxage.com"

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "faxage-cli/1.0"
)

// Transport posts form fields to a path and returns the raw response body.
// It does not interpret the body.
type Transport interface {
	Post(ctx context.Context, path string, fields url.Values) (string, error)
}

// HTTPTransport is a Transport over net/http.
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport for baseURL. A nil httpClient gets a
// client with the default timeout and TLS 1.2 minimum.
func NewHTTPTransport(baseURL string, httpClient *http.Client) *HTTPTransport {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http") {
		baseURL = "https://" + baseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		}
	}
	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  defaultUserAgent,
	}
}

// Post sends fields form-encoded to path.
func (t *HTTPTransport) Post(ctx context.Context, path string, fields url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, strings.NewReader(fields.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return string(body), nil
}
