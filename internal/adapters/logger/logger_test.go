package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pack/internal/adapters/detector"
	"go.trai.ch/pack/internal/adapters/logger"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/ui/output"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.NewWithProfile(buf, output.ColorProfile)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("some message")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("some warning")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error_FailureKind(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := domain.Fail(domain.KindConfig, zerr.Wrap(
		errors.New("line 3: field formats not found in type config.FileDTO"),
		domain.ErrConfigParseFailed.Error(),
	))
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "error_kind_config", buf.Bytes())
}

func TestLogger_Error_Metadata(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(domain.ErrInvalidFormat, "format", "es2015")
	lg.WithFormat(domain.FormatCJS).Error(domain.Fail(domain.KindConfig, err))

	assert.Equal(t, "cjs ✗ Error: [config] "+domain.ErrInvalidFormat.Error()+"\n       format: es2015\n", buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_WithFormat(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.WithFormat(domain.FormatESM).Info("Build main, bin")
	lg.WithFormat(domain.FormatDTS).Warn("declaration import lodash is not inlined")
	lg.Info("Finished in 12ms")

	g := goldie.New(t)
	g.Assert(t, "with_format", buf.Bytes())
}

func TestLogger_SetLevel(t *testing.T) {
	tests := []struct {
		name  string
		level domain.LogLevel
		want  []string
		skip  []string
	}{
		{name: "debug shows everything", level: domain.LogDebug, want: []string{"dbg", "inf", "wrn", "err"}},
		{name: "info hides debug", level: domain.LogInfo, want: []string{"inf", "wrn", "err"}, skip: []string{"dbg"}},
		{name: "warn hides info", level: domain.LogWarn, want: []string{"wrn", "err"}, skip: []string{"dbg", "inf"}},
		{name: "error hides warn", level: domain.LogError, want: []string{"err"}, skip: []string{"dbg", "inf", "wrn"}},
		{name: "silent hides all", level: domain.LogSilent, skip: []string{"dbg", "inf", "wrn", "err"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			child := lg.WithFormat(domain.FormatCJS)
			lg.SetLevel(tt.level)

			child.Debug("dbg")
			child.Info("inf")
			child.Warn("wrn")
			child.Error(errors.New("err"))

			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, s := range tt.skip {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	err := zerr.With(zerr.Wrap(errors.New("unexpected EOF"), domain.ErrConfigParseFailed.Error()), "path", "pack.yaml")
	lg.WithFormat(domain.FormatESM).Error(domain.Fail(domain.KindConfig, err))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "esm", record["format"])
	assert.Equal(t, "config", record["kind"])
	assert.Equal(t, "pack.yaml", record["path"])
	assert.Contains(t, record["error"], domain.ErrConfigParseFailed.Error())

	// Switching back restores the pretty output on the same writer.
	buf.Reset()
	lg.SetJSON(false)
	lg.Info("Finished in 3ms")
	assert.Equal(t, "Finished in 3ms\n", buf.String())
}

func TestLogger_SetOutput(t *testing.T) {
	lg, first := newTestLogger(t)
	lg.SetJSON(true)

	second := &bytes.Buffer{}
	lg.SetOutput(second)
	lg.Info("Cleaned dist")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), `"msg":"Cleaned dist"`)

	require.NotPanics(t, func() { lg.SetOutput(nil) })
}

func TestLogger_New(t *testing.T) {
	require.NotNil(t, logger.New())
}

func TestProfileFor(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	for _, mode := range []detector.OutputMode{detector.ModeInteractive, detector.ModeCI, detector.ModePlain} {
		require.NotNil(t, logger.ProfileFor(mode))
	}
	assert.Equal(t, output.ColorProfileANSI(), logger.ProfileFor(detector.ModeCI)())
}

// TestLogger_ConcurrentAccess tests thread-safety of loggers sharing one output.
func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for _, format := range []domain.Format{domain.FormatESM, domain.FormatCJS, domain.FormatDTS} {
		child := lg.WithFormat(format)
		wg.Go(func() {
			child.Info("Build main")
			child.Warn("slow")
			child.Error(errors.New("failed"))
		})
	}
	wg.Go(func() { lg.SetJSON(true) })
	wg.Go(func() { lg.SetLevel(domain.LogWarn) })
	wg.Go(func() { lg.SetOutput(&bytes.Buffer{}) })
	wg.Wait()
}
