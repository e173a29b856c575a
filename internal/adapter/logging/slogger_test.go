package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSLogger_LevelsAndFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.New(NewHandler(&buf, "json", "warn")))

	ctx := context.Background()
	l.Info(ctx, "hidden")
	l.Warn(ctx, "shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)
}

func TestSLogger_NilSafe(t *testing.T) {
	var l *SLogger
	assert.NotPanics(t, func() { l.Error(context.Background(), "ignored") })
	assert.NotPanics(t, func() { New(nil).Info(context.Background(), "ignored") })
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
