// Package amara talks to the Amara subtitle hosting API. Every method issues
// the HTTP calls of one endpoint; sequencing them is left to the caller.
package amara

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"kasubs/internal/adapter/apiclient"
	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

const (
	// DefaultBaseURL is the public Amara host.
	DefaultBaseURL = "https://www.amara.org/"

	// DefaultShortSubtitleThreshold is the length in characters below which a downloaded
	// subtitle needs operator confirmation.
	DefaultShortSubtitleThreshold = 20

	// maxLanguagePages bounds pagination in CheckLanguage.
	maxLanguagePages = 50
)

// ErrAborted is returned when the operator declines to continue.
var ErrAborted = errors.New("amara: aborted by operator")

// Config configures a Client.
type Config struct {
	BaseURL  string
	Username string
	APIKey   string
	// Headers are sent with every request in addition to the credentials.
	Headers                map[string]string
	Timeout                time.Duration
	RateLimit              float64
	ShortSubtitleThreshold int
}

// Client implements ports.SubtitleHost against the Amara REST API.
type Client struct {
	req       *apiclient.Requester
	confirm   ports.Confirmer
	logger    ports.Logger
	threshold int
}

var _ ports.SubtitleHost = (*Client)(nil)

// New creates an Amara client.
func New(cfg Config, confirm ports.Confirmer, logger ports.Logger) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if cfg.Username != "" {
		headers["X-api-username"] = cfg.Username
	}
	if cfg.APIKey != "" {
		headers["X-api-key"] = cfg.APIKey
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	req, err := apiclient.New(apiclient.Config{
		BaseURL:   base,
		Headers:   headers,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("amara client: %w", err)
	}

	threshold := cfg.ShortSubtitleThreshold
	if threshold <= 0 {
		threshold = DefaultShortSubtitleThreshold
	}

	return &Client{req: req, confirm: confirm, logger: logger, threshold: threshold}, nil
}

func videoPath(id string) string {
	return "api/videos/" + url.PathEscape(id) + "/"
}

func languagesPath(id string) string {
	return videoPath(id) + "languages/"
}

func subtitlesPath(id, lang string) string {
	return languagesPath(id) + url.PathEscape(lang) + "/subtitles/"
}

// CheckVideo looks up the video registered for videoURL. The list is empty
// when the URL is unknown to Amara.
func (c *Client) CheckVideo(ctx context.Context, videoURL string) (*model.AmaraVideoList, error) {
	var out model.AmaraVideoList
	if err := c.req.GetJSON(ctx, "api/videos/", url.Values{"video_url": {videoURL}}, &out); err != nil {
		return nil, fmt.Errorf("check video %s: %w", videoURL, err)
	}
	return &out, nil
}

// AddVideo registers videoURL with the given primary audio language. Calling
// it twice for the same URL is not guarded against here.
func (c *Client) AddVideo(ctx context.Context, videoURL, lang string) (*model.AmaraVideo, error) {
	body := map[string]any{
		"video_url":                   videoURL,
		"primary_audio_language_code": lang,
	}
	var out model.AmaraVideo
	if err := c.req.SendJSON(ctx, http.MethodPost, "api/videos/", body, &out); err != nil {
		return nil, fmt.Errorf("add video %s: %w", videoURL, err)
	}
	return &out, nil
}

// AddLanguage registers a subtitle language on a video. Subtitles are marked
// incomplete since they are uploaded separately.
func (c *Client) AddLanguage(ctx context.Context, videoID, lang string, isOriginal bool) (*model.AmaraLanguage, error) {
	body := map[string]any{
		"language_code":             lang,
		"subtitles_complete":        false,
		"is_primary_audio_language": isOriginal,
	}
	var out model.AmaraLanguage
	if err := c.req.SendJSON(ctx, http.MethodPost, languagesPath(videoID), body, &out); err != nil {
		return nil, fmt.Errorf("add language %s to %s: %w", lang, videoID, err)
	}
	return &out, nil
}

// CheckLanguage reports whether lang exists on the video and how many
// subtitle versions it has. All result pages are scanned.
func (c *Client) CheckLanguage(ctx context.Context, videoID, lang string) (bool, int, error) {
	next := languagesPath(videoID)
	for page := 0; next != "" && page < maxLanguagePages; page++ {
		var list model.AmaraLanguageList
		if err := c.req.GetJSON(ctx, next, nil, &list); err != nil {
			return false, 0, fmt.Errorf("check language %s on %s: %w", lang, videoID, err)
		}
		for _, obj := range list.Objects {
			if obj.LanguageCode == lang {
				return true, len(obj.Versions), nil
			}
		}
		next = list.Meta.Next
	}
	return false, 0, nil
}

// UploadSubs uploads subtitle text in the given format as a new version.
func (c *Client) UploadSubs(ctx context.Context, videoID, lang string, isComplete bool, subs, format string) (*model.AmaraSubtitles, error) {
	body := map[string]any{
		"subtitles":     subs,
		"sub_format":    format,
		"language_code": lang,
		"is_complete":   isComplete,
	}
	var out model.AmaraSubtitles
	if err := c.req.SendJSON(ctx, http.MethodPost, subtitlesPath(videoID, lang), body, &out); err != nil {
		return nil, fmt.Errorf("upload %s subtitles to %s: %w", lang, videoID, err)
	}
	return &out, nil
}

// DownloadSubs fetches the subtitles of a language in the given format. A
// suspiciously short payload is shown to the operator, who decides whether to
// continue; declining yields ErrAborted.
func (c *Client) DownloadSubs(ctx context.Context, videoID, lang, format string) (string, error) {
	text, err := c.req.GetText(ctx, subtitlesPath(videoID, lang), url.Values{"format": {format}})
	if err != nil {
		return "", fmt.Errorf("download %s subtitles of %s: %w", lang, videoID, err)
	}

	if n := utf8.RuneCountInString(text); n < c.threshold {
		c.logWarn(ctx, "downloaded subtitles are too short", "video_id", videoID, "language", lang, "length", n, "payload", text)
		ok, err := c.ask(ctx, fmt.Sprintf("Subtitles for %s/%s are only %d characters: %q. Should I proceed?", videoID, lang, n, text))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrAborted
		}
	}
	return text, nil
}

// CompareVideos reports whether both videos have the same duration. On a
// mismatch the operator decides: accepting returns false, declining ErrAborted.
func (c *Client) CompareVideos(ctx context.Context, videoID1, videoID2 string) (bool, error) {
	len1, err := c.duration(ctx, videoID1)
	if err != nil {
		return false, err
	}
	len2, err := c.duration(ctx, videoID2)
	if err != nil {
		return false, err
	}

	if len1 == len2 {
		return true, nil
	}

	c.logWarn(ctx, "video durations differ", "first", videoID1, "first_duration", len1, "second", videoID2, "second_duration", len2)
	ok, err := c.ask(ctx, fmt.Sprintf("The first video is %ds long, the second %ds. Should I proceed anyway?", len1, len2))
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrAborted
	}
	return false, nil
}

func (c *Client) duration(ctx context.Context, videoID string) (int, error) {
	var v model.AmaraVideo
	if err := c.req.GetJSON(ctx, videoPath(videoID), nil, &v); err != nil {
		return 0, fmt.Errorf("fetch video %s: %w", videoID, err)
	}
	return v.Duration, nil
}

func (c *Client) ask(ctx context.Context, question string) (bool, error) {
	if c.confirm == nil {
		return false, nil
	}
	ok, err := c.confirm.Confirm(ctx, question)
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

func (c *Client) logWarn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(ctx, msg, args...)
	}
}
