// Package terminalfmt provides the minimal terminal-aware formatter the
// Worker driver uses for --loud status lines; its RenderError formats build
// errors but is not called by the driver, which reports failures through
// its Logger. Grounded
// in the teacher's cli/internal/ui/style brand palette and the tui
// adapter's termenv-backed color-profile detection.
package terminalfmt

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorGreen  = lipgloss.Color("#22A06B")
	colorRed    = lipgloss.Color("#D93025")
	colorYellow = lipgloss.Color("#F59E0B")
	colorSlate  = lipgloss.Color("#667085")
)

const (
	iconCheck = "✓"
	iconCross = "✗"
	iconRun   = "●"
)

// ColorProfile returns the color profile to use for status output. It
// returns Ascii when EXMAKE_COLORS is "0", and TrueColor otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("EXMAKE_COLORS") == "0" {
		return termenv.Ascii
	}
	return termenv.TrueColor
}

// Printer renders one status line per processed vertex and formats build
// errors for terminal display, honoring EXMAKE_COLORS=0.
type Printer struct {
	out    io.Writer
	loud   bool
	styles styleSet
}

type styleSet struct {
	ok   lipgloss.Style
	fail lipgloss.Style
	run  lipgloss.Style
}

// New creates a Printer writing to os.Stderr, reading its color profile
// from the process environment. loud mirrors domain.Config.Options.Loud:
// Status is a no-op unless loud is true.
func New(loud bool) *Printer {
	return NewWithProfile(os.Stderr, loud, ColorProfile())
}

// NewWithProfile creates a Printer writing to out under an explicit color
// profile, for tests and callers that want to bypass environment detection.
func NewWithProfile(out io.Writer, loud bool, profile termenv.Profile) *Printer {
	lipgloss.SetColorProfile(profile)
	return &Printer{
		out:  out,
		loud: loud,
		styles: styleSet{
			ok:   lipgloss.NewStyle().Foreground(colorGreen),
			fail: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
			run:  lipgloss.NewStyle().Foreground(colorYellow),
		},
	}
}

// Status prints one status line for target tagged with verb ("run", "ok",
// "fail"). It is a no-op when the Printer was not constructed loud.
func (p *Printer) Status(verb, target string) {
	if !p.loud {
		return
	}
	var icon string
	var style lipgloss.Style
	switch verb {
	case "ok":
		icon, style = iconCheck, p.styles.ok
	case "fail":
		icon, style = iconCross, p.styles.fail
	default:
		icon, style = iconRun, p.styles.run
	}
	fmt.Fprintln(p.out, style.Render(icon+" "+target))
}

// RenderError formats err for terminal display, bold red with a cross
// marker, regardless of loudness — error rendering is not gated on --loud.
func (p *Printer) RenderError(err error) string {
	return p.styles.fail.Render(iconCross + " " + err.Error())
}
