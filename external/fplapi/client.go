package fplapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
	"github.com/riskibarqy/fpl-weekly/internal/platform/resilience"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "fpl-weekly/1.0"

	pathBootstrap = "/bootstrap-static/"
	pathFixtures  = "/fixtures/"
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client reads the public FPL game API. Responses are returned as raw
// JSON so the extract stage can snapshot them byte-for-byte.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	retry      resilience.RetryConfig
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}
	// request spans nest under the usecase spans
	if _, ok := httpClient.Transport.(*otelhttp.Transport); !ok {
		httpClient.Transport = otelhttp.NewTransport(httpClient.Transport)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		retry: resilience.NormalizeRetryConfig(resilience.RetryConfig{
			MaxRetries: cfg.MaxRetries,
		}),
		logger: logger,
	}
}

// FetchBootstrap downloads the bootstrap-static document (players, teams,
// events).
func (c *Client) FetchBootstrap(ctx context.Context) ([]byte, error) {
	return c.doGet(ctx, pathBootstrap)
}

// FetchFixtures downloads the full-season fixture list.
func (c *Client) FetchFixtures(ctx context.Context) ([]byte, error) {
	return c.doGet(ctx, pathFixtures)
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var body []byte
	err := resilience.Retry(ctx, c.retry, isTransient, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return crerr.Wrapf(err, "build request %s", path)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return crerr.Mark(crerr.Wrapf(err, "GET %s", path), errFPLTransient)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return crerr.Mark(crerr.Wrapf(err, "read %s body", path), errFPLTransient)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			c.logger.WarnContext(ctx, "fpl api retryable status", "path", path, "status", resp.StatusCode)
			return crerr.Mark(crerr.Newf("GET %s: status=%d", path, resp.StatusCode), errFPLTransient)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return crerr.Newf("GET %s: status=%d body=%s", path, resp.StatusCode, truncateBody(raw))
		}
		if !sonic.Valid(raw) {
			return crerr.Newf("GET %s: response is not valid JSON", path)
		}

		body = raw
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}

	c.logger.DebugContext(ctx, "fpl api fetched", "path", path, "bytes", len(body))
	return body, nil
}

func isTransient(err error) bool {
	return crerr.Is(err, errFPLTransient)
}

func truncateBody(raw []byte) string {
	const max = 256
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}
