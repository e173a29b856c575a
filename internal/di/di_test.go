package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kasubs/internal/config"
	"kasubs/internal/domain/model"
)

func TestInitializeApp(t *testing.T) {
	dir := t.TempDir()
	mr := miniredis.RunT(t)
	t.Setenv("KHAN_LOCALE", "cs")
	t.Setenv("TREE_CACHE_DIR", filepath.Join(dir, "trees"))
	t.Setenv("TREE_CACHE_SQLITE", filepath.Join(dir, "trees.db"))
	t.Setenv("REDIS_URL", "redis://"+mr.Addr())
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	application, cleanup, err := InitializeApp(config.Overrides{LogLevel: "error"})
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "cs", application.Source().Locale())
	assert.NotNil(t, application.Host())
	assert.NotNil(t, application.Transfer())

	tree := &model.Topic{Content: model.Content{ID: "root", Title: "Root"}, Children: []model.Node{}}
	require.NoError(t, application.Catalog().For(model.ContentVideo).Save(context.Background(), tree))

	_, err = os.Stat(filepath.Join(dir, "trees", "khan_tree_cs_video_bin.gob"))
	assert.NoError(t, err)
	assert.True(t, mr.Exists("kasubs:tree:cs:video"))
}

func TestInitializeApp_UnreachableRedis(t *testing.T) {
	t.Setenv("TREE_CACHE_DIR", t.TempDir())
	t.Setenv("TREE_CACHE_SQLITE", "")
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1")

	application, cleanup, err := InitializeApp(config.Overrides{LogLevel: "error"})
	require.NoError(t, err, "redis is optional")
	defer cleanup()
	assert.NotNil(t, application)
}

func TestInitializeApp_InvalidConfig(t *testing.T) {
	t.Setenv("REFRESH_CRON", "never")
	_, _, err := InitializeApp(config.Overrides{})
	assert.Error(t, err)
}
