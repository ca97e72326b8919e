// Package telemetry wires the --time timing session: a no-op Tracer when
// timing is off, and a progrock-backed Recorder (see the progrock
// sub-package) when it is on.
package telemetry

import (
	"context"

	"go.trai.ch/exmake/internal/core/ports"
)

// NoOpTracer is the Tracer used when --time was not requested.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &noOpSpan{}
}

// EmitPlan does nothing.
func (t *NoOpTracer) EmitPlan(_ context.Context, _ []string) {}

type noOpSpan struct{}

func (s *noOpSpan) End()                          {}
func (s *noOpSpan) RecordError(_ error)           {}
func (s *noOpSpan) SetAttribute(_ string, _ any)  {}
func (s *noOpSpan) Write(p []byte) (int, error)   { return len(p), nil }
