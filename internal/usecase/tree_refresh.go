package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kasubs/internal/domain/contenttree"
	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

// ErrEmptyTree is returned when the content source yields no tree, which
// happens when HTTP errors are tolerated.
var ErrEmptyTree = errors.New("content source returned no tree")

// TreeRefreshConfig controls which trees a refresh fetches.
type TreeRefreshConfig struct {
	ContentTypes []model.ContentType
}

// TreeRefresh downloads topic trees and stores them in the catalog.
type TreeRefresh struct {
	source   ports.ContentSource
	catalog  *TreeCatalog
	notifier ports.Notifier
	logger   ports.Logger
	types    []model.ContentType
}

// NewTreeRefresh constructs a TreeRefresh use case. notifier may be nil.
func NewTreeRefresh(
	source ports.ContentSource,
	catalog *TreeCatalog,
	notifier ports.Notifier,
	logger ports.Logger,
	cfg TreeRefreshConfig,
) *TreeRefresh {
	types := cfg.ContentTypes
	if len(types) == 0 {
		types = []model.ContentType{model.ContentVideo}
	}
	return &TreeRefresh{
		source:   source,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		types:    types,
	}
}

// ContentTypes returns the content types refreshed by Run.
func (r *TreeRefresh) ContentTypes() []model.ContentType { return r.types }

// RefreshOne fetches and stores the tree of one content type.
func (r *TreeRefresh) RefreshOne(ctx context.Context, contentType model.ContentType) (model.Node, error) {
	tree, err := r.source.TopicTree(ctx, contentType)
	if err != nil {
		return nil, fmt.Errorf("fetch %s tree: %w", contentType, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("fetch %s tree: %w", contentType, ErrEmptyTree)
	}
	if err := r.catalog.For(contentType).Save(ctx, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Run refreshes every configured content type and reports the outcome. Empty
// trees are skipped with a warning; other failures are returned joined after
// the remaining types have been attempted.
func (r *TreeRefresh) Run(ctx context.Context) error {
	start := time.Now()
	r.logger.Info(ctx, "starting tree refresh", "locale", r.source.Locale(), "content_types", len(r.types))

	var errs []error
	fields := make([]model.NotificationField, 0, len(r.types))
	for _, ct := range r.types {
		tree, err := r.RefreshOne(ctx, ct)
		switch {
		case errors.Is(err, ErrEmptyTree):
			r.logger.Warn(ctx, "skipping empty tree", "content_type", string(ct))
			fields = append(fields, model.NotificationField{Name: string(ct), Value: "skipped: empty response", Inline: true})
		case err != nil:
			r.logger.Error(ctx, "tree refresh failed", "content_type", string(ct), "error", err)
			errs = append(errs, err)
			fields = append(fields, model.NotificationField{Name: string(ct), Value: "failed: " + err.Error(), Inline: true})
		default:
			topics, items := countNodes(tree)
			r.logger.Info(ctx, "tree refreshed", "content_type", string(ct), "topics", topics, "items", items)
			fields = append(fields, model.NotificationField{
				Name:   string(ct),
				Value:  fmt.Sprintf("%d topics, %d items", topics, items),
				Inline: true,
			})
		}
	}

	r.notify(ctx, model.Notification{
		Title:       fmt.Sprintf("Khan Academy tree refresh (%s)", r.source.Locale()),
		Description: fmt.Sprintf("Refreshed %d content types in %s.", len(r.types), time.Since(start).Round(time.Second)),
		Fields:      fields,
		Failed:      len(errs) > 0,
		At:          time.Now(),
	})

	r.logger.Info(ctx, "tree refresh completed", "duration", time.Since(start), "failures", len(errs))
	return errors.Join(errs...)
}

func (r *TreeRefresh) notify(ctx context.Context, n model.Notification) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Send(ctx, n); err != nil {
		r.logger.Error(ctx, "failed to send notification", "error", err)
	}
}

func countNodes(tree model.Node) (topics, items int) {
	return len(contenttree.Topics(tree, model.RenderAll)), len(contenttree.ContentItems(tree, model.ContentAll))
}
