package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/pack/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge implements sdktrace.SpanProcessor by reporting finished spans to a logger at debug level.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(describe(s))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// describe renders "name finished in 12ms key=value" or "name failed after ...: reason".
func describe(s sdktrace.ReadOnlySpan) string {
	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)

	var b strings.Builder
	b.WriteString(s.Name())
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "unknown error"
		}
		fmt.Fprintf(&b, " failed after %s: %s", elapsed, desc)
	} else {
		fmt.Fprintf(&b, " finished in %s", elapsed)
	}
	for _, attr := range s.Attributes() {
		fmt.Fprintf(&b, " %s=%s", attr.Key, attr.Value.Emit())
	}
	return b.String()
}
