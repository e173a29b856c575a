package khan

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasubs/internal/domain/model"
)

const treeJSON = `{
	"kind": "Topic", "id": "root", "title": "Root", "slug": "root", "render_type": "Root",
	"children": [
		{"kind": "Topic", "id": "t1", "title": "Math", "slug": "math", "render_type": "Subject", "children": [
			{"kind": "Video", "id": "v1", "title": "Counting", "youtube_id": "yt1", "duration": 61}
		]}
	]
}`

func newTestClient(t *testing.T, cfg Config, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	c, err := New(cfg, nil)
	require.NoError(t, err)
	return c
}

func TestServerURL(t *testing.T) {
	assert.Equal(t, "https://www.khanacademy.org", ServerURL("en"))
	assert.Equal(t, "https://www.khanacademy.org", ServerURL(""))
	assert.Equal(t, "https://cs.khanacademy.org", ServerURL("cs"))
}

func TestTopicTree(t *testing.T) {
	c := newTestClient(t, Config{Locale: "cs"}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/topictree", r.URL.Path)
		assert.Equal(t, "video", r.URL.Query().Get("kind"))
		assert.Equal(t, "json", r.Header.Get("format"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		fmt.Fprint(w, treeJSON)
	})
	assert.Equal(t, "cs", c.Locale())

	tree, err := c.TopicTree(context.Background(), model.ContentVideo)
	require.NoError(t, err)

	root, ok := tree.(*model.Topic)
	require.True(t, ok)
	require.Len(t, root.Children, 1)
	math := root.Children[0].(*model.Topic)
	assert.Equal(t, model.RenderSubject, math.RenderType)
	video := math.Children[0].(*model.Video)
	assert.Equal(t, "yt1", video.YouTubeID)
	assert.Equal(t, 61, video.Duration)
}

func TestTopicTree_AllOmitsKind(t *testing.T) {
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		fmt.Fprint(w, treeJSON)
	})
	_, err := c.TopicTree(context.Background(), model.ContentAll)
	require.NoError(t, err)
	assert.Equal(t, "en", c.Locale())
}

func TestVideoArticleTopic(t *testing.T) {
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/videos/yt1":
			fmt.Fprint(w, `{"kind": "Video", "id": "v1", "title": "Counting", "youtube_id": "yt1", "translated_youtube_id": "yt1cs"}`)
		case "/api/v1/articles/a1":
			fmt.Fprint(w, `{"content_kind": "Article", "id": "a1", "title": "Reading", "description": null}`)
		case "/api/v1/topic/math":
			fmt.Fprint(w, `{"kind": "Topic", "id": "t1", "title": "Math", "slug": "math", "children": null}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	v, err := c.Video(ctx, "yt1")
	require.NoError(t, err)
	assert.Equal(t, "yt1cs", v.TranslatedYouTubeID)

	a, err := c.Article(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Reading", a.Title)
	assert.Empty(t, a.Description)

	topic, err := c.Topic(ctx, "math")
	require.NoError(t, err)
	assert.Equal(t, "math", topic.Slug)
	assert.NotNil(t, topic.Children)
	assert.Empty(t, topic.Children)

	_, err = c.Article(ctx, "yt1-not-an-article")
	assert.Error(t, err)
}

func TestVideo_WrongKind(t *testing.T) {
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kind": "Exercise", "id": "e1", "title": "Add"}`)
	})
	_, err := c.Video(context.Background(), "e1")
	assert.Error(t, err)
}

func TestTopicContent(t *testing.T) {
	c := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/topic/math/videos":
			fmt.Fprint(w, `[{"kind": "Video", "id": "v1", "title": "A"}, {"kind": "Video", "id": "v2", "title": "B"}]`)
		case "/api/v1/topic/math/exercises":
			fmt.Fprint(w, `[{"kind": "Exercise", "id": "e1", "title": "C", "node_slug": "e/c"}]`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	videos, err := c.TopicContent(ctx, "math", model.ContentVideo)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "v2", videos[1].Info().ID)

	exercises, err := c.TopicContent(ctx, "math", model.ContentExercise)
	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "e/c", exercises[0].(*model.Exercise).NodeSlug)

	_, err = c.TopicContent(ctx, "math", model.ContentArticle)
	assert.Error(t, err)
}

func TestTolerateHTTPErrors(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}

	strict := newTestClient(t, Config{}, handler)
	_, err := strict.TopicTree(context.Background(), model.ContentVideo)
	assert.Error(t, err)

	lenient := newTestClient(t, Config{TolerateHTTPErrors: true}, handler)
	tree, err := lenient.TopicTree(context.Background(), model.ContentVideo)
	assert.NoError(t, err)
	assert.Nil(t, tree)

	v, err := lenient.Video(context.Background(), "x")
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestUnknownKind(t *testing.T) {
	c := newTestClient(t, Config{TolerateHTTPErrors: true}, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kind": "Scratchpad", "id": "s1", "title": "Draw"}`)
	})
	_, err := c.TopicTree(context.Background(), model.ContentAll)
	var kindErr *model.KindError
	assert.ErrorAs(t, err, &kindErr)
}
