package slogpretty

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogHandler_Handle(t *testing.T) {
	bufWo := bytes.NewBuffer(nil)
	bufWe := bytes.NewBuffer(nil)

	h := &Handler{
		We:  &lockedWriter{w: bufWe},
		Wo:  &lockedWriter{w: bufWo},
		Lvl: slog.LevelDebug,
		Goa: make([]GroupOrAttrs, 0),
	}

	record := slog.Record{
		Time:    time.Date(2024, 06, 26, 0, 0, 0, 0, time.UTC),
		Message: "rule registered",
		Level:   slog.LevelDebug,
	}
	record.Add("pattern", "/user/{id}")
	record.Add("key", "/user/{}")
	record.Add(slog.Group("foo", slog.String("bar", "bar")))
	require.NoError(t, h.Handle(context.Background(), record))
	record.Level = slog.LevelInfo
	require.NoError(t, h.Handle(context.Background(), record))
	record.Level = slog.LevelWarn
	record.Message = "override without existing rule"
	require.NoError(t, h.Handle(context.Background(), record))
	record.Level = slog.LevelError
	require.NoError(t, h.Handle(context.Background(), record))

	require.True(t, strings.Contains(bufWo.String(), "rule registered"))
	require.True(t, strings.Contains(bufWo.String(), "override without existing rule"))
	require.True(t, strings.Contains(bufWe.String(), "override without existing rule"))
}

func TestLogHandler_Enabled(t *testing.T) {
	h := &Handler{
		We:  &lockedWriter{w: bytes.NewBuffer(nil)},
		Wo:  &lockedWriter{w: bytes.NewBuffer(nil)},
		Lvl: slog.LevelWarn,
	}
	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	require.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	require.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestLogHandler_WithAttrsAndGroup(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	h := &Handler{
		We:  &lockedWriter{w: bytes.NewBuffer(nil)},
		Wo:  &lockedWriter{w: buf},
		Lvl: slog.LevelDebug,
	}

	log := slog.New(h.WithGroup("table").WithAttrs([]slog.Attr{slog.String("prefix", "/api")}))
	log.Info("rule registered")

	require.True(t, strings.Contains(buf.String(), "table.prefix="))
}
