package ports

import (
	"context"

	"kasubs/internal/domain/model"
)

// ContentSource defines access to the Khan Academy content API for one locale.
type ContentSource interface {
	Locale() string
	Video(ctx context.Context, id string) (*model.Video, error)
	Article(ctx context.Context, id string) (*model.Article, error)
	Topic(ctx context.Context, slug string) (*model.Topic, error)
	TopicContent(ctx context.Context, slug string, kind model.ContentType) ([]model.Node, error)
	TopicTree(ctx context.Context, contentType model.ContentType) (model.Node, error)
}
