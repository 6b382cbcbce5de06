package webusage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ferrovax/claude-compass/pkg/logger"
)

const (
	usagePath      = "/api/oauth/usage"
	betaFlag       = "oauth-2025-04-20"
	defaultTimeout = 15 * time.Second
)

// Client fetches the account usage report.
type Client interface {
	// Fetch retrieves the current usage report.
	//
	// Returns:
	//   - The usage report with FetchedAt stamped
	//   - ErrNoCredentials if no token is configured
	//   - *HTTPError for non-200 responses
	Fetch(ctx context.Context) (*Usage, error)
}

// Config contains client configuration.
type Config struct {
	// BaseURL of the usage API.
	BaseURL string

	// Token is the OAuth access token.
	Token string

	// Timeout for the HTTP request. Defaults to 15s.
	Timeout time.Duration
}

// httpClient implements Client over HTTP.
type httpClient struct {
	config Config
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

// NewClient creates a usage API client.
func NewClient(cfg Config, log logger.Logger) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = logger.Noop()
	}
	return &httpClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: log,
		now:    time.Now,
	}
}

// Fetch implements Client.Fetch.
func (c *httpClient) Fetch(ctx context.Context) (*Usage, error) {
	if c.config.Token == "" {
		return nil, ErrNoCredentials
	}

	url := strings.TrimSuffix(c.config.BaseURL, "/") + usagePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build usage request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("anthropic-beta", betaFlag)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usage request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var usage Usage
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	usage.FetchedAt = c.now()

	c.logger.Debug("remote usage fetched",
		"seven_day_utilization", usage.SevenDay.Utilization)

	return &usage, nil
}
