package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/logger"
)

func newTestHandler(t *testing.T, level slog.Leveler) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "information message", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "warning message", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "error message", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestHandler(t, slog.LevelInfo)
			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_DebugLevel(t *testing.T) {
	lg, buf := newTestHandler(t, slog.LevelDebug)
	lg.Debug("config file pack.yaml")
	assert.Equal(t, "~ config file pack.yaml\n", buf.String())
}

func TestPrettyHandler_FormatPrefix(t *testing.T) {
	t.Run("from logger attributes", func(t *testing.T) {
		lg, buf := newTestHandler(t, slog.LevelInfo)
		lg.With(logger.FormatKey, "esm", "files", 2).Info("Build main")
		assert.Equal(t, "esm Build main files=2\n", buf.String())
	})

	t.Run("from record attributes", func(t *testing.T) {
		lg, buf := newTestHandler(t, slog.LevelInfo)
		lg.Warn("slow transform", logger.FormatKey, "cjs", "ms", 1200)
		assert.Equal(t, "cjs ! slow transform ms=1200\n", buf.String())
	})

	t.Run("record attribute overrides logger attribute", func(t *testing.T) {
		lg, buf := newTestHandler(t, slog.LevelInfo)
		lg.With(logger.FormatKey, "esm").Info("Build", logger.FormatKey, "dts")
		assert.Equal(t, "dts Build\n", buf.String())
	})

	t.Run("grouped format key is a plain attribute", func(t *testing.T) {
		lg, buf := newTestHandler(t, slog.LevelInfo)
		lg.WithGroup("chunk").Info("written", logger.FormatKey, "umd")
		assert.Equal(t, "written chunk.format=umd\n", buf.String())
	})
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	lg, buf := newTestHandler(t, slog.LevelInfo)
	lg.WithGroup("size").Info("index.js", "bytes", 512, "gzip", 230)
	assert.Equal(t, "index.js size.bytes=512 size.gzip=230\n", buf.String())
}

func TestPrettyHandler_Enabled(t *testing.T) {
	level := &slog.LevelVar{}
	level.Set(slog.LevelWarn)
	handler := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: level})

	assert.False(t, handler.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, handler.Enabled(t.Context(), slog.LevelWarn))

	level.Set(slog.LevelDebug)
	assert.True(t, handler.Enabled(t.Context(), slog.LevelDebug))
}

func TestPrettyHandler_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = logger.NewPrettyHandler(nil, nil)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrettyHandler_Handle_ReturnsError(t *testing.T) {
	handler := logger.NewPrettyHandler(failingWriter{}, nil)
	record := slog.NewRecord(time.Time{}, slog.LevelInfo, "Finished in 3ms", 0)

	err := handler.Handle(t.Context(), record)
	require.Error(t, err)
}
