package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/exmake/internal/core/ports"
)

// NodeID is the unique identifier for the default (no-op) telemetry Graft
// node. cmd/exmake's main replaces the Worker driver's Tracer with the
// progrock-backed Recorder (see the progrock sub-package) when
// Config.Options.Time is set; the graft wiring only needs to supply a
// working default for the common case.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return NewNoOpTracer(), nil
		},
	})
}
