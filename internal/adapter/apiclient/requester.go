// Package apiclient is the JSON-over-HTTP plumbing shared by the Amara and
// Khan Academy clients.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"kasubs/internal/domain/ports"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4096
	defaultTimeout  = 30 * time.Second
)

// Config configures a Requester.
type Config struct {
	BaseURL string
	Headers map[string]string
	Timeout time.Duration
	// RateLimit is the sustained requests per second; zero or less disables limiting.
	RateLimit float64
	Burst     int
	// Session keeps cookies between requests.
	Session bool
}

// Requester issues JSON requests relative to a base URL.
type Requester struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     ports.Logger
}

// New builds a Requester.
func New(cfg Config, logger ports.Logger) (*Requester, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	if cfg.Session {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	return &Requester{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		headers:    headers,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}, nil
}

// URL resolves path against the base URL. Absolute URLs are returned as is.
func (r *Requester) URL(path string, query url.Values) string {
	var u string
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		u = path
	} else {
		u = r.baseURL + "/" + strings.TrimLeft(path, "/")
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}

// GetJSON performs a GET and decodes the JSON response into out.
func (r *Requester) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	data, err := r.do(ctx, http.MethodGet, r.URL(path, query), nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

// SendJSON performs method with body encoded as JSON and decodes the response
// into out when out is not nil.
func (r *Requester) SendJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	data, err := r.do(ctx, method, r.URL(path, nil), payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

// GetText performs a GET and returns the raw response body.
func (r *Requester) GetText(ctx context.Context, path string, query url.Values) (string, error) {
	data, err := r.do(ctx, http.MethodGet, r.URL(path, query), nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetRaw performs a GET and returns the undecoded JSON body.
func (r *Requester) GetRaw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	data, err := r.do(ctx, http.MethodGet, r.URL(path, query), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (r *Requester) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("perform request %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if r.logger != nil {
		r.logger.Info(ctx, "api request",
			"method", method,
			"url", target,
			"status", resp.StatusCode,
			"request_id", requestID,
			"duration", time.Since(start),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}
	return data, nil
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
