package domain

// VertexStatus represents the lifecycle state of a vertex during one build.
// A vertex only ever occupies these two states; on completion it is removed
// from the graph entirely rather than transitioning to a third state.
type VertexStatus string

const (
	// VertexStatusPending indicates the vertex has not yet been enqueued.
	VertexStatusPending VertexStatus = "pending"
	// VertexStatusProcessing indicates the vertex has been enqueued and is
	// either queued behind the concurrency bound or actively running.
	VertexStatusProcessing VertexStatus = "processing"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
