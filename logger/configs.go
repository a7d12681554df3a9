package logger

// Log level constants accepted by Config.Level.
const (
	// Debug is the most verbose level, intended for development and troubleshooting.
	Debug = "debug"

	// Info is the standard level for general operational information.
	Info = "info"

	// Warning reports potential issues that aren't errors yet.
	Warning = "warning"

	// Error reports error conditions only.
	Error = "error"
)

// Config defines the configuration for the logger.
type Config struct {
	// Level determines the minimum log level that will be output.
	// Valid values are "debug", "info", "warning" and "error".
	// Unrecognized or empty values default to "info".
	Level string

	// ServiceName populates the "service" field on every log entry.
	ServiceName string

	// EnableTracing controls whether trace correlation is enabled.
	// When true, the *WithContext logging methods extract the active
	// span from the context and add "trace_id" and "span_id" fields,
	// correlating log entries with distributed traces.
	EnableTracing bool

	// CallerSkip is the number of stack frames to skip when reporting
	// the caller. Use 1 (the default) when calling the logger directly,
	// 2+ when the logger is wrapped in additional layers.
	CallerSkip int
}
