package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/pack/internal/adapters/detector"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/pack/internal/ui/output"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error (go.trai.ch/zerr v0.3.0+).
// If zerr's API changes, errors will gracefully fall back to standard error handling.
type messager interface {
	Message() string
}

// metadataer describes an error carrying key/value metadata attached with zerr.With.
type metadataer interface {
	Metadata() map[string]any
}

// levelSilent is above every level the application logs at.
const levelSilent = slog.LevelError + 4

// ErrorEntry is one layer of an error chain.
type ErrorEntry struct {
	// Message is the layer's own message.
	Message string
	// Metadata is the layer's metadata, nil for non-zerr errors.
	Metadata map[string]any
	// Kind is the failure kind attached to this layer, if any.
	Kind domain.ErrorKind
}

type state struct {
	mu       sync.RWMutex
	handler  slog.Handler
	jsonMode bool
	output   io.Writer
	level    *slog.LevelVar
	profile  func() termenv.Profile
}

// Logger implements ports.Logger using log/slog.
// Loggers derived with WithFormat share output, mode and level with their parent.
type Logger struct {
	state  *state
	format domain.Format
}

// New creates a new Logger writing to stderr with colors matching the terminal.
func New() ports.Logger {
	return NewWithProfile(os.Stderr, ProfileFor(detector.Stderr()))
}

// NewWithProfile creates a new Logger writing to w with the given color profile selector.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile) *Logger {
	if w == nil {
		w = os.Stderr
	}
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)

	st := &state{output: w, level: level, profile: profileFn}
	st.handler = st.newHandler()
	return &Logger{state: st}
}

// ProfileFor returns the color profile selector for an output mode.
func ProfileFor(mode detector.OutputMode) func() termenv.Profile {
	switch mode {
	case detector.ModeCI:
		return output.ColorProfileANSI
	case detector.ModePlain:
		return func() termenv.Profile { return termenv.Ascii }
	default:
		return output.ColorProfile
	}
}

func (s *state) newHandler() slog.Handler {
	if s.jsonMode {
		return slog.NewJSONHandler(s.output, &slog.HandlerOptions{Level: s.level})
	}
	return NewPrettyHandlerWithProfile(s.output, s.profile, &slog.HandlerOptions{Level: s.level})
}

// SetOutput updates the logger's output destination.
// This is thread-safe and updates the underlying slog handler.
// It preserves the current JSON mode setting.
// If w is nil, os.Stderr is used as the default.
func (l *Logger) SetOutput(w io.Writer) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.state.output = w
	// Injected writers are rarely terminals; fall back to NO_COLOR-aware detection.
	l.state.profile = output.ColorProfile
	l.state.handler = l.state.newHandler()
}

// SetJSON switches between JSON and pretty logging.
// The output destination is preserved from SetOutput calls.
func (l *Logger) SetJSON(enable bool) {
	l.state.mu.Lock()
	defer l.state.mu.Unlock()

	l.state.jsonMode = enable
	l.state.handler = l.state.newHandler()
}

// SetLevel changes the minimum level of this logger and every logger sharing its output.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.state.level.Set(slogLevel(level))
}

// WithFormat returns a logger prefixing every line with the format name.
func (l *Logger) WithFormat(format domain.Format) ports.Logger {
	return &Logger{state: l.state, format: format}
}

func slogLevel(level domain.LogLevel) slog.Level {
	switch level {
	case domain.LogDebug:
		return slog.LevelDebug
	case domain.LogWarn:
		return slog.LevelWarn
	case domain.LogError:
		return slog.LevelError
	case domain.LogSilent:
		return levelSilent
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) base() *slog.Logger {
	lg := slog.New(l.state.handler)
	if l.format != "" {
		lg = lg.With(FormatKey, string(l.format))
	}
	return lg
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	l.base().Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	l.base().Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.state.mu.RLock()
	defer l.state.mu.RUnlock()
	l.base().Warn(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.state.mu.RLock()
	defer l.state.mu.RUnlock()

	if l.state.jsonMode {
		entries := collectErrorEntries(err)
		attrs := []any{"error", err.Error()}
		for _, entry := range entries {
			if entry.Kind != "" {
				attrs = append(attrs, "kind", string(entry.Kind))
			}
			for _, key := range sortedKeys(entry.Metadata) {
				attrs = append(attrs, key, entry.Metadata[key])
			}
		}
		l.base().Error("operation failed", attrs...)
		return
	}

	l.base().Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the error chain programmatically.
// Each zerr layer yields one entry; the first non-zerr error ends the walk.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	var kind domain.ErrorKind

	current := err
	for current != nil {
		if failure, ok := current.(*domain.Failure); ok {
			if kind == "" {
				kind = failure.Kind
			}
			current = failure.Err
			continue
		}

		entry := ErrorEntry{Kind: kind}
		kind = ""

		m, ok := current.(messager)
		if !ok {
			entry.Message = current.Error()
			entries = append(entries, entry)
			break
		}

		entry.Message = m.Message()
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the entries hierarchically: the main error, then
// a "Caused by" list. Metadata is printed sorted below its layer.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		if entry.Kind != "" {
			msgLines[0] = "[" + string(entry.Kind) + "] " + msgLines[0]
		}

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			for _, key := range sortedKeys(entry.Metadata) {
				lines = append(lines, fmt.Sprintf("       %s: %v", key, entry.Metadata[key]))
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		for _, key := range sortedKeys(entry.Metadata) {
			lines = append(lines, fmt.Sprintf("      %s: %v", key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
