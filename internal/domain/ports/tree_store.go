package ports

import (
	"context"
	"errors"

	"kasubs/internal/domain/model"
)

// ErrTreeNotFound is returned by TreeStore.Load when nothing is stored under the key.
var ErrTreeNotFound = errors.New("content tree not found")

// TreeStore persists fetched content trees keyed by locale and content type.
type TreeStore interface {
	Load(ctx context.Context, key model.TreeKey) (model.Node, error)
	Save(ctx context.Context, key model.TreeKey, tree model.Node) error
}
