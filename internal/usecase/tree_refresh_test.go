package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasubs/internal/domain/model"
)

func TestTreeRefresh_Run(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	catalog := NewTreeCatalog(store, "cs")
	source := &fakeSource{
		locale: "cs",
		trees: map[model.ContentType]model.Node{
			model.ContentVideo: scenarioTree(),
		},
		errs: map[model.ContentType]error{
			model.ContentArticle: errors.New("boom"),
		},
	}
	notifier := &fakeNotifier{}

	refresh := NewTreeRefresh(source, catalog, notifier, nopLogger{}, TreeRefreshConfig{
		ContentTypes: []model.ContentType{model.ContentVideo, model.ContentExercise, model.ContentArticle},
	})

	err := refresh.Run(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
	assert.False(t, errors.Is(err, ErrEmptyTree), "empty trees are skipped, not failures")

	tree, err := catalog.For(model.ContentVideo).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "math", tree.Info().ID)

	_, err = catalog.For(model.ContentExercise).Load(ctx)
	assert.True(t, errors.Is(err, ErrTreeNotCached))

	require.Len(t, notifier.sent, 1)
	n := notifier.sent[0]
	assert.True(t, n.Failed)
	require.Len(t, n.Fields, 3)
	assert.Equal(t, "2 topics, 2 items", n.Fields[0].Value)
	assert.Equal(t, "skipped: empty response", n.Fields[1].Value)
	assert.Contains(t, n.Fields[2].Value, "failed:")
}

func TestTreeRefresh_RefreshOne(t *testing.T) {
	ctx := context.Background()
	catalog := NewTreeCatalog(newMemStore(), "en")
	source := &fakeSource{locale: "en", trees: map[model.ContentType]model.Node{model.ContentVideo: scenarioTree()}}
	refresh := NewTreeRefresh(source, catalog, nil, nopLogger{}, TreeRefreshConfig{})

	assert.Equal(t, []model.ContentType{model.ContentVideo}, refresh.ContentTypes())

	tree, err := refresh.RefreshOne(ctx, model.ContentVideo)
	require.NoError(t, err)
	cached, err := catalog.For(model.ContentVideo).Get(ctx)
	require.NoError(t, err)
	assert.Same(t, tree, cached)

	_, err = refresh.RefreshOne(ctx, model.ContentExercise)
	assert.True(t, errors.Is(err, ErrEmptyTree))

	require.NoError(t, refresh.Run(ctx))
}
