package progrock_test

import (
	"context"
	"testing"

	"go.trai.ch/exmake/internal/adapters/telemetry/progrock"
)

func TestRecorder_Integration(t *testing.T) {
	recorder := progrock.New()

	ctx := context.Background()
	_, span := recorder.Start(ctx, "Test Task")

	if _, err := span.Write([]byte("Standard Output\n")); err != nil {
		t.Errorf("failed to write span output: %v", err)
	}

	span.SetAttribute("kind", "test")
	span.End()

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}

func TestRecorder_EmitPlan(t *testing.T) {
	recorder := progrock.New()

	recorder.EmitPlan(context.Background(), []string{"all", "build"})

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}
