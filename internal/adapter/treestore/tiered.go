package treestore

import (
	"context"
	"errors"

	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

// Tiered chains several stores. Reads go through them in order and a hit in a
// later store is copied back to the earlier ones. Writes go to every store.
type Tiered struct {
	logger ports.Logger
	stores []ports.TreeStore
}

var _ ports.TreeStore = (*Tiered)(nil)

// NewTiered constructs a store over the given stores. Nil stores are skipped.
func NewTiered(logger ports.Logger, stores ...ports.TreeStore) *Tiered {
	active := make([]ports.TreeStore, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Tiered{logger: logger, stores: active}
}

// Load returns the first tree found. Failing stores are logged and skipped;
// their error is returned only when no store has the tree.
func (t *Tiered) Load(ctx context.Context, key model.TreeKey) (model.Node, error) {
	var firstErr error

	for i, store := range t.stores {
		tree, err := store.Load(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				if firstErr == nil {
					firstErr = err
				}
				t.logError(ctx, "tree store load failed", "key", key.String(), "tier", i, "error", err)
			}
			continue
		}

		for j := 0; j < i; j++ {
			if err := t.stores[j].Save(ctx, key, tree); err != nil {
				t.logError(ctx, "tree store backfill failed", "key", key.String(), "tier", j, "error", err)
			}
		}
		return tree, nil
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNotFound
}

// Save writes the tree to every store and joins their errors.
func (t *Tiered) Save(ctx context.Context, key model.TreeKey, tree model.Node) error {
	var errs []error
	for _, store := range t.stores {
		if err := store.Save(ctx, key, tree); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Tiered) logError(ctx context.Context, msg string, args ...any) {
	if t.logger != nil {
		t.logger.Error(ctx, msg, args...)
	}
}
