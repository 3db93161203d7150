package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanoutRespectsSinkLevels(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	h := Fanout(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(h)

	log.Info("routine")
	log.Error("broken")

	assert.Contains(t, infoBuf.String(), "routine")
	assert.Contains(t, infoBuf.String(), "broken")
	assert.NotContains(t, errBuf.String(), "routine")
	assert.Contains(t, errBuf.String(), "broken")
}

func TestFanoutWithAttrsReachesAllSinks(t *testing.T) {
	var a, b bytes.Buffer
	h := Fanout(
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	)

	slog.New(h).With("request_id", "r-1").Info("hello")

	for _, buf := range []*bytes.Buffer{&a, &b} {
		require.Contains(t, buf.String(), "r-1")
		require.Contains(t, buf.String(), "hello")
	}
}

func TestFanoutEnabled(t *testing.T) {
	h := Fanout(
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}
