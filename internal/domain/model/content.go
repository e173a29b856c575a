package model

import "strings"

// Kind identifies the variant of a content tree node as Khan Academy spells it.
type Kind string

const (
	KindTopic    Kind = "Topic"
	KindVideo    Kind = "Video"
	KindExercise Kind = "Exercise"
	KindArticle  Kind = "Article"
)

// RenderType classifies a topic's level in the curriculum hierarchy.
type RenderType string

const (
	RenderAll      RenderType = "all"
	RenderSubject  RenderType = "Subject"
	RenderDomain   RenderType = "Domain"
	RenderTopic    RenderType = "Topic"
	RenderTutorial RenderType = "Tutorial"
)

// ContentType is the lower-case content filter used by the topic tree endpoint
// and by the cache keys.
type ContentType string

const (
	ContentAll      ContentType = "all"
	ContentTopic    ContentType = "topic"
	ContentVideo    ContentType = "video"
	ContentExercise ContentType = "exercise"
	ContentArticle  ContentType = "article"
)

// Matches reports whether a node of kind k passes the filter.
func (c ContentType) Matches(k Kind) bool {
	return c == ContentAll || string(c) == strings.ToLower(string(k))
}

// ParseContentType validates a user supplied content type.
func ParseContentType(s string) (ContentType, bool) {
	switch ct := ContentType(strings.ToLower(strings.TrimSpace(s))); ct {
	case ContentAll, ContentTopic, ContentVideo, ContentExercise, ContentArticle:
		return ct, true
	default:
		return "", false
	}
}

// TreeKey identifies one cached topic tree.
type TreeKey struct {
	Locale      string
	ContentType ContentType
}

func (k TreeKey) String() string {
	return k.Locale + "/" + string(k.ContentType)
}

// Node is one entry of the content tree. The only implementations are
// *Topic, *Video, *Exercise and *Article.
type Node interface {
	Kind() Kind
	Info() *Content
}

// Content holds the descriptive fields every node carries.
type Content struct {
	ID          string
	Title       string
	Description string
	Slug        string
	KAURL       string
}

// Info returns the shared descriptive fields.
func (c *Content) Info() *Content { return c }

// Topic is an inner node. Children are ordered as the API returned them.
type Topic struct {
	Content
	RenderType RenderType
	Children   []Node
}

func (*Topic) Kind() Kind { return KindTopic }

// Video is a leaf with a YouTube rendition.
type Video struct {
	Content
	YouTubeID           string
	TranslatedYouTubeID string
	Duration            int
}

func (*Video) Kind() Kind { return KindVideo }

// Exercise is a leaf whose NodeSlug addresses it in the translation portal.
type Exercise struct {
	Content
	NodeSlug string
}

func (*Exercise) Kind() Kind { return KindExercise }

// Article is a plain leaf.
type Article struct {
	Content
}

func (*Article) Kind() Kind { return KindArticle }

// Children returns the children of n, or nil for leaves.
func Children(n Node) []Node {
	if t, ok := n.(*Topic); ok {
		return t.Children
	}
	return nil
}
