package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTree = `{
  "kind": "Topic", "id": "root", "title": "Math", "render_type": "Subject", "slug": "math",
  "children": [
    {"kind": "Video", "id": "v1", "title": "A", "youtube_id": "yt1", "duration": 61, "description": null},
    {"kind": "Topic", "id": "t1", "title": "Lesson", "render_type": "Tutorial", "children": null},
    {"content_kind": "Exercise", "id": "e1", "title": "Practice", "node_slug": "e/practice"},
    {"kind": "Article", "id": "a1", "title": "Read me", "description": "text"}
  ]
}`

func TestDecodeNode(t *testing.T) {
	n, err := DecodeNode([]byte(sampleTree))
	require.NoError(t, err)

	root, ok := n.(*Topic)
	require.True(t, ok)
	assert.Equal(t, RenderSubject, root.RenderType)
	require.Len(t, root.Children, 4)

	v, ok := root.Children[0].(*Video)
	require.True(t, ok)
	assert.Equal(t, "yt1", v.YouTubeID)
	assert.Equal(t, 61, v.Duration)
	assert.Equal(t, "", v.Description)

	lesson := root.Children[1].(*Topic)
	assert.NotNil(t, lesson.Children)
	assert.Empty(t, lesson.Children)

	ex, ok := root.Children[2].(*Exercise)
	require.True(t, ok, "content_kind is used when kind is absent")
	assert.Equal(t, "e/practice", ex.NodeSlug)

	assert.Equal(t, KindArticle, root.Children[3].Kind())
}

func TestDecodeNode_UnknownKind(t *testing.T) {
	_, err := DecodeNode([]byte(`{"kind": "Topic", "title": "x", "children": [{"kind": "Scratchpad", "title": "s"}]}`))
	var kerr *KindError
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, "Scratchpad", kerr.Kind)

	_, err = DecodeNode([]byte(`{"title": "no kind"}`))
	require.True(t, errors.As(err, &kerr))
	assert.Contains(t, err.Error(), "has no kind")
}

func TestEncodeNode_RoundTrip(t *testing.T) {
	n, err := DecodeNode([]byte(sampleTree))
	require.NoError(t, err)

	data, err := EncodeNode(n)
	require.NoError(t, err)

	again, err := DecodeNode(data)
	require.NoError(t, err)
	assert.Equal(t, n, again)
}

func TestEncodeNode_NilChild(t *testing.T) {
	root := &Topic{
		Content:  Content{ID: "root", Title: "Root"},
		Children: []Node{&Video{Content: Content{ID: "v1", Title: "A"}}, nil},
	}

	_, err := EncodeNode(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic root child 1")
}

func TestAttr(t *testing.T) {
	v := &Video{Content: Content{ID: "v1", Title: "A", KAURL: "https://ka/v1"}, YouTubeID: "yt", Duration: 30}

	got, ok := Attr(v, "duration")
	assert.True(t, ok)
	assert.Equal(t, "30", got)

	got, ok = Attr(v, "ka_url")
	assert.True(t, ok)
	assert.Equal(t, "https://ka/v1", got)

	_, ok = Attr(v, "node_slug")
	assert.False(t, ok)

	_, ok = Attr(&Topic{RenderType: RenderDomain}, "youtube_id")
	assert.False(t, ok)
}

func TestContentTypeMatches(t *testing.T) {
	assert.True(t, ContentVideo.Matches(KindVideo))
	assert.False(t, ContentVideo.Matches(KindExercise))
	assert.True(t, ContentAll.Matches(KindArticle))

	ct, ok := ParseContentType(" Exercise ")
	assert.True(t, ok)
	assert.Equal(t, ContentExercise, ct)

	_, ok = ParseContentType("podcast")
	assert.False(t, ok)
}
