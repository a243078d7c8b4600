package recommend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/mmcdole/streampick/internal/domain"
)

var _ domain.Recommender = (*Client)(nil)

// Client implements domain.Recommender over the HTTP recommendation API.
// It holds no per-request state: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new recommendation API client.
// A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// response is a fully read HTTP response
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// doRequest performs a single GET against the API.
// Only transport failures are returned as errors; any status is a response.
func (c *Client) doRequest(ctx context.Context, path, rawQuery string) (response, error) {
	reqURL := c.baseURL + path
	if rawQuery != "" {
		reqURL += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("recommend request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("recommend request failed", "url", reqURL, "error", err)
		return response{}, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("recommend request error", "status", resp.StatusCode, "body", string(body))
	}
	return response{status: resp.StatusCode, body: body}, nil
}

// Fetch requests up to k recommendations for title.
// Every outcome is returned as a Result; Fetch never returns an error.
func (c *Client) Fetch(ctx context.Context, title string, k int) domain.Result {
	resp, err := c.doRequest(ctx, "/recommend", buildQuery(title, k))
	if err != nil {
		return domain.Failure(err.Error())
	}

	if !resp.ok() {
		var errResp ErrorResponse
		if err := decode(resp.body, &errResp); err != nil {
			return malformed(resp.status, err)
		}
		return MapError(errResp)
	}

	var recResp RecommendResponse
	if err := decode(resp.body, &recResp); err != nil {
		return malformed(resp.status, err)
	}

	result := MapResponse(recResp, title)
	c.logger.Debug("recommend response",
		"title", title,
		"k", k,
		"outcome", result.Outcome.String(),
		"items", len(result.Items),
	)
	return result
}

// Health checks that the service is up
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.doRequest(ctx, "/health", "")
	if err != nil {
		return err
	}
	if !resp.ok() {
		return fmt.Errorf("health check failed: status %d", resp.status)
	}

	var health HealthResponse
	if err := decode(resp.body, &health); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("health check failed: status %q", health.Status)
	}
	return nil
}

// buildQuery encodes the request parameters. Spaces are sent as %20 rather
// than '+' so the title is percent-encoded the same way browsers encode
// URI components.
func buildQuery(title string, k int) string {
	movie := strings.ReplaceAll(url.QueryEscape(title), "+", "%20")
	return "movie=" + movie + "&k=" + strconv.Itoa(k)
}

func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return io.ErrUnexpectedEOF
	}
	return json.Unmarshal(body, v)
}

func malformed(status int, err error) domain.Result {
	return domain.Failure(fmt.Sprintf("%s (status %d): %v", domain.ErrMalformedResponse, status, err))
}
