package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasubs/internal/domain/model"
)

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Color       int    `json:"color"`
	Fields      []struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Inline bool   `json:"inline"`
	} `json:"fields"`
}

func TestWebhook_Send(t *testing.T) {
	var got struct {
		Embeds []embed `json:"embeds"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	wh := NewWebhook(srv.URL, time.Second, nil)
	err := wh.Send(context.Background(), model.Notification{
		Title:       "Tree refresh cs",
		Description: strings.Repeat("x", 5000),
		Fields:      []model.NotificationField{{Name: "video", Value: "1204 nodes"}},
		Failed:      true,
		At:          at,
	})
	require.NoError(t, err)

	require.Len(t, got.Embeds, 1)
	e := got.Embeds[0]
	assert.Equal(t, "Tree refresh cs", e.Title)
	assert.Len(t, e.Description, 4096)
	assert.True(t, strings.HasSuffix(e.Description, "..."))
	assert.Equal(t, "2024-05-01T09:00:00Z", e.Timestamp)
	assert.Equal(t, colorFailed, e.Color)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "1204 nodes", e.Fields[0].Value)
}

func TestWebhook_Errors(t *testing.T) {
	err := NewWebhook("", time.Second, nil).Send(context.Background(), model.Notification{})
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	err = NewWebhook(srv.URL, time.Second, nil).Send(context.Background(), model.Notification{Title: "x"})
	assert.ErrorContains(t, err, "status 400")
}

func TestTruncate_RuneBoundary(t *testing.T) {
	got := truncate(strings.Repeat("č", 10), 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "čč...", got)

	assert.Equal(t, "short", truncate("short", 8))
}
