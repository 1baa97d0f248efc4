package tsc

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	compileStarted  = regexp.MustCompile(`Starting (?:compilation in watch mode|incremental compilation)`)
	compileFinished = regexp.MustCompile(`Found (\d+) errors?\. Watching for file changes`)
)

const (
	eventBuffer = 16
	// waitDelay bounds how long output pipes stay open after the compiler is killed.
	waitDelay = time.Second
)

// lineKind classifies one line of compiler watch output.
type lineKind uint8

const (
	lineOutput lineKind = iota
	lineStarted
	lineFinished
)

// classify returns the kind of a watch output line and, for finished lines, the error count.
func classify(line string) (lineKind, int) {
	if compileStarted.MatchString(line) {
		return lineStarted, 0
	}
	if match := compileFinished.FindStringSubmatch(line); match != nil {
		count, _ := strconv.Atoi(match[1])
		return lineFinished, count
	}
	return lineOutput, 0
}

type watchHandle struct {
	opts   ports.BundleOptions
	tmp    string
	cmd    *exec.Cmd
	reader *io.PipeReader
	events chan domain.BundleEvent
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

var _ ports.WatchHandle = (*watchHandle)(nil)

func startWatch(ctx context.Context, bin string, opts ports.BundleOptions) (*watchHandle, error) {
	tmp, err := os.MkdirTemp("", "pack-dts-*")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrDeclarationFailed.Error())
	}

	ctx, cancel := context.WithCancel(ctx)
	args := append(compilerArgs(opts, tmp), "--watch", "--preserveWatchOutput")
	// #nosec G204 -- the compiler path is resolved from node_modules or PATH
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = opts.Cwd
	cmd.WaitDelay = waitDelay

	reader, writer := io.Pipe()
	cmd.Stdout = writer
	cmd.Stderr = writer

	if err := cmd.Start(); err != nil {
		cancel()
		_ = os.RemoveAll(tmp)
		return nil, zerr.Wrap(err, domain.ErrDeclarationFailed.Error())
	}

	h := &watchHandle{
		opts:   opts,
		tmp:    tmp,
		cmd:    cmd,
		reader: reader,
		events: make(chan domain.BundleEvent, eventBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		_ = cmd.Wait()
		_ = writer.Close()
	}()
	go h.run(ctx, reader)
	return h, nil
}

// Events returns the session events. The channel is closed when the compiler exits.
func (h *watchHandle) Events() <-chan domain.BundleEvent {
	return h.events
}

// Close stops the compiler and removes its temporary output. It is idempotent.
func (h *watchHandle) Close() error {
	h.once.Do(func() {
		h.cancel()
		_ = h.reader.Close()
		<-h.done
		_ = os.RemoveAll(h.tmp)
	})
	return nil
}

func (h *watchHandle) run(ctx context.Context, reader io.Reader) {
	defer close(h.done)
	defer close(h.events)

	var (
		output []string
		start  time.Time
	)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		kind, errorCount := classify(line)

		switch kind {
		case lineStarted:
			output = output[:0]
			start = time.Now()
			if !h.emit(ctx, domain.BundleEvent{Kind: domain.EventStart}) {
				return
			}
		case lineFinished:
			event := h.finish(ctx, errorCount, output, start)
			if !h.emit(ctx, event) || !h.emit(ctx, domain.BundleEvent{Kind: domain.EventIdle}) {
				return
			}
		default:
			if strings.TrimSpace(line) != "" {
				output = append(output, line)
			}
		}
	}

	if ctx.Err() == nil {
		err := zerr.With(domain.ErrDeclarationFailed, "output", strings.Join(output, "\n"))
		h.emit(ctx, domain.BundleEvent{Kind: domain.EventError, Err: err})
	}
}

func (h *watchHandle) finish(ctx context.Context, errorCount int, output []string, start time.Time) domain.BundleEvent {
	if errorCount > 0 {
		err := zerr.With(domain.ErrDeclarationFailed, "output", strings.Join(output, "\n"))
		return domain.BundleEvent{Kind: domain.EventError, Err: zerr.With(err, "errors", errorCount)}
	}
	files, err := emit(ctx, h.opts, h.tmp)
	if err != nil {
		return domain.BundleEvent{Kind: domain.EventError, Err: err}
	}
	return domain.BundleEvent{Kind: domain.EventEnd, Files: files, Duration: time.Since(start)}
}

func (h *watchHandle) emit(ctx context.Context, event domain.BundleEvent) bool {
	select {
	case h.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
