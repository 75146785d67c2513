package plex

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mcrews/plexkit/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Plexkit/1.0"
	clientID       = "plexkit-cli"
)

// uriRootFormat is the canonical reference root for item URIs
const uriRootFormat = "server://%s/com.plexapp.plugins.library"

// Client is the record store for a single media server. It issues
// authenticated requests and parses responses into MediaContainer records.
type Client struct {
	baseURL           string
	token             string
	machineIdentifier string // fetched from /identity on init
	httpClient        *http.Client
	logger            *slog.Logger
}

// NewClient creates a new media server client
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// BaseURL returns the server root URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MachineIdentifier returns the server's unique identifier.
// Empty until FetchIdentity or SetIdentity is called.
func (c *Client) MachineIdentifier() string {
	return c.machineIdentifier
}

// SetIdentity seeds a previously cached machine identifier, skipping the
// /identity round trip.
func (c *Client) SetIdentity(machineIdentifier string) {
	c.machineIdentifier = machineIdentifier
}

// URIRoot returns the canonical reference root used when building item URIs,
// e.g. server://<machineIdentifier>/com.plexapp.plugins.library
func (c *Client) URIRoot() string {
	return fmt.Sprintf(uriRootFormat, c.machineIdentifier)
}

// FetchIdentity fetches and stores the server's machineIdentifier
func (c *Client) FetchIdentity(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/identity", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// The identity endpoint replies in XML regardless of Accept
	var identity struct {
		XMLName           xml.Name `xml:"MediaContainer"`
		MachineIdentifier string   `xml:"machineIdentifier,attr"`
	}
	if err := xml.Unmarshal(body, &identity); err != nil {
		return err
	}

	c.machineIdentifier = identity.MachineIdentifier
	return nil
}

// setHeaders applies the standard identification headers to a request
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("X-Plex-Client-Identifier", clientID)
	req.Header.Set("X-Plex-Product", "Plexkit")
	req.Header.Set("X-Plex-Version", "1.0")
	req.Header.Set("User-Agent", userAgent)
}

// doRequest performs an authenticated HTTP request and returns the raw body
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	c.logger.Debug("server request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("server request failed", "error", err)
		return nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrAuthFailed
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("server request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// parseContainer parses a JSON response body into a MediaContainer.
// Mutating endpoints may reply with an empty body; that yields an empty
// container rather than an error.
func (c *Client) parseContainer(body []byte) (*MediaContainer, error) {
	if len(body) == 0 {
		return &MediaContainer{}, nil
	}
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &resp.MediaContainer, nil
}

// Get issues a GET request and parses the returned container
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*MediaContainer, error) {
	body, err := c.doRequest(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, err
	}
	return c.parseContainer(body)
}

// Put issues a PUT request and parses the returned container
func (c *Client) Put(ctx context.Context, path string, query url.Values) (*MediaContainer, error) {
	body, err := c.doRequest(ctx, http.MethodPut, path, query)
	if err != nil {
		return nil, err
	}
	return c.parseContainer(body)
}

// Post issues a POST request and parses the returned container
func (c *Client) Post(ctx context.Context, path string, query url.Values) (*MediaContainer, error) {
	body, err := c.doRequest(ctx, http.MethodPost, path, query)
	if err != nil {
		return nil, err
	}
	return c.parseContainer(body)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	_, err := c.doRequest(ctx, http.MethodDelete, path, query)
	return err
}
