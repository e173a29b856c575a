// Package khan reads content from the Khan Academy v1 API for one locale.
package khan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"kasubs/internal/adapter/apiclient"
	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

const apiResource = "api/v1/"

// Config configures a Client.
type Config struct {
	Locale string
	// BaseURL overrides the locale derived host.
	BaseURL string
	// TolerateHTTPErrors makes failed requests log and return an empty result
	// instead of an error.
	TolerateHTTPErrors bool
	Timeout            time.Duration
	RateLimit          float64
}

// Client implements ports.ContentSource. All requests share one session.
type Client struct {
	req      *apiclient.Requester
	locale   string
	tolerate bool
	logger   ports.Logger
}

var _ ports.ContentSource = (*Client)(nil)

// ServerURL returns the Khan Academy host for a locale. English lives on the
// bare www domain.
func ServerURL(locale string) string {
	if locale == "" || locale == "en" {
		return "https://www.khanacademy.org"
	}
	return "https://" + locale + ".khanacademy.org"
}

// New creates a Khan Academy client.
func New(cfg Config, logger ports.Logger) (*Client, error) {
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}
	base := cfg.BaseURL
	if base == "" {
		base = ServerURL(locale)
	}

	req, err := apiclient.New(apiclient.Config{
		BaseURL: base,
		Headers: map[string]string{
			"Content-Type": "application/json",
			"format":       "json",
		},
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Session:   true,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("khan client: %w", err)
	}

	return &Client{req: req, locale: locale, tolerate: cfg.TolerateHTTPErrors, logger: logger}, nil
}

// Locale returns the locale the client is bound to.
func (c *Client) Locale() string { return c.locale }

// Video fetches a single video. Lookup by YouTube id, translated YouTube id or
// readable id all work on this endpoint.
func (c *Client) Video(ctx context.Context, id string) (*model.Video, error) {
	n, err := c.node(ctx, "videos/"+url.PathEscape(id), nil)
	if err != nil || n == nil {
		return nil, err
	}
	v, ok := n.(*model.Video)
	if !ok {
		return nil, fmt.Errorf("videos/%s: got %s", id, n.Kind())
	}
	return v, nil
}

// Article fetches a single article.
func (c *Client) Article(ctx context.Context, id string) (*model.Article, error) {
	n, err := c.node(ctx, "articles/"+url.PathEscape(id), nil)
	if err != nil || n == nil {
		return nil, err
	}
	a, ok := n.(*model.Article)
	if !ok {
		return nil, fmt.Errorf("articles/%s: got %s", id, n.Kind())
	}
	return a, nil
}

// Topic fetches one topic by slug.
func (c *Client) Topic(ctx context.Context, slug string) (*model.Topic, error) {
	n, err := c.node(ctx, "topic/"+url.PathEscape(slug), nil)
	if err != nil || n == nil {
		return nil, err
	}
	t, ok := n.(*model.Topic)
	if !ok {
		return nil, fmt.Errorf("topic/%s: got %s", slug, n.Kind())
	}
	return t, nil
}

// TopicContent lists the videos or exercises directly under a topic.
func (c *Client) TopicContent(ctx context.Context, slug string, kind model.ContentType) ([]model.Node, error) {
	if kind != model.ContentVideo && kind != model.ContentExercise {
		return nil, fmt.Errorf("topic content: unsupported kind %q", kind)
	}
	path := apiResource + "topic/" + url.PathEscape(slug) + "/" + string(kind) + "s"

	raw, err := c.get(ctx, path, nil)
	if err != nil || raw == nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	out := make([]model.Node, 0, len(items))
	for _, item := range items {
		n, err := model.DecodeNode(item)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// TopicTree fetches the whole topic tree restricted to one content kind.
// A nil tree with a nil error means the request failed and errors are tolerated.
func (c *Client) TopicTree(ctx context.Context, contentType model.ContentType) (model.Node, error) {
	var query url.Values
	if contentType != "" && contentType != model.ContentAll {
		query = url.Values{"kind": {string(contentType)}}
	}
	return c.node(ctx, "topictree", query)
}

func (c *Client) node(ctx context.Context, resource string, query url.Values) (model.Node, error) {
	raw, err := c.get(ctx, apiResource+resource, query)
	if err != nil || raw == nil {
		return nil, err
	}
	n, err := model.DecodeNode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", resource, err)
	}
	return n, nil
}

// get returns nil, nil for a tolerated HTTP failure.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	raw, err := c.req.GetRaw(ctx, path, query)
	if err == nil {
		return raw, nil
	}

	var body string
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		body = strings.TrimSpace(string(httpErr.Body))
	}
	if c.logger != nil {
		c.logger.Error(ctx, "khan api request failed",
			"url", c.req.URL(path, query),
			"status", apiclient.StatusCode(err),
			"body", body,
			"error", err,
		)
	}

	if c.tolerate && httpErr != nil {
		return nil, nil
	}
	return nil, fmt.Errorf("khan %s: %w", path, err)
}
