// Package progrock implements the --time timing session with a real
// progress/telemetry recorder instead of the ad hoc pass_go/pass_end hooks
// the original engine used: one vertex per graph-builder pass and one per
// processed target.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/exmake/internal/core/ports"
)

// Recorder implements ports.Tracer using the progrock library.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Recorder writing to a fresh in-memory tape.
func New() *Recorder {
	tape := progrock.NewTape()
	return NewRecorder(tape)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{w: w, rec: progrock.NewRecorder(w)}
}

// Start implements ports.Tracer by opening one progrock vertex per span.
func (r *Recorder) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return ctx, &Span{vertex: v}
}

// EmitPlan records the set of targets planned for this build as a single
// vertex so the timing report shows the whole plan up front.
func (r *Recorder) EmitPlan(ctx context.Context, taskNames []string) {
	_, span := r.Start(ctx, "plan")
	for _, name := range taskNames {
		_, _ = span.Write([]byte(name + "\n"))
	}
	span.End()
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
