package terminalfmt_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/exmake/internal/adapters/terminalfmt"
)

func TestPrinter_Status_SilentUnlessLoud(t *testing.T) {
	var buf bytes.Buffer
	p := terminalfmt.NewWithProfile(&buf, false, termenv.Ascii)
	p.Status("ok", "all")
	assert.Empty(t, buf.String())
}

func TestPrinter_Status_PrintsWhenLoud(t *testing.T) {
	var buf bytes.Buffer
	p := terminalfmt.NewWithProfile(&buf, true, termenv.Ascii)
	p.Status("ok", "all")
	assert.Contains(t, buf.String(), "all")
}

func TestPrinter_Status_DistinguishesVerbs(t *testing.T) {
	var buf bytes.Buffer
	p := terminalfmt.NewWithProfile(&buf, true, termenv.Ascii)
	p.Status("fail", "broken")
	assert.Contains(t, buf.String(), "broken")
}

func TestPrinter_RenderError_IncludesMessage(t *testing.T) {
	var buf bytes.Buffer
	p := terminalfmt.NewWithProfile(&buf, false, termenv.Ascii)
	out := p.RenderError(errors.New("boom"))
	assert.Contains(t, out, "boom")
}
