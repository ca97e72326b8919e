package progrock

import (
	"sync"

	"github.com/vito/progrock"
)

// Span wraps a progrock vertex recorder to implement ports.Span. Writes go
// to the vertex's stdout stream; SetAttribute is best-effort since progrock
// vertices only carry a name and a status, not arbitrary key/value pairs.
type Span struct {
	vertex *progrock.VertexRecorder

	mu   sync.Mutex
	done bool
}

// Write implements io.Writer by forwarding to the vertex's stdout stream.
func (s *Span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

// End completes the span successfully. It is safe to call more than once.
func (s *Span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.vertex.Done(nil)
}

// RecordError completes the span with the given error. It is safe to call
// more than once; the first error wins.
func (s *Span) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	s.vertex.Done(err)
}

// SetAttribute is a no-op: progrock vertices have no attribute bag. The
// method exists to satisfy ports.Span for callers that attach diagnostic
// context uniformly across tracer backends.
func (s *Span) SetAttribute(_ string, _ any) {}
