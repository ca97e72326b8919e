package ports

// StatusPrinter renders one terminal status line per processed vertex and
// formats build errors for display. It is the Worker driver's --loud
// collaborator; a no-op implementation is valid when loudness was not
// requested.
type StatusPrinter interface {
	// Status renders a status line for target tagged with verb
	// ("run", "ok", "fail").
	Status(verb, target string)
	// RenderError formats err for terminal display.
	RenderError(err error) string
}
