package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds a charmbracelet logger from opts, installs it as the package
// default and returns it. Environment overrides are applied last.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	l := log.NewWithOptions(out, log.Options{
		Level:           ParseLevel(opts.Level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Formatter:       ParseFormatter(opts.Format),
	})
	ConfigureFromEnv(l)

	log.SetDefault(l)
	return l
}

// ParseLevel maps a level name to a log level. Unknown names yield info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a format name to a formatter. Unknown names yield text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// ConfigureFromEnv applies TOOLSHED_LOG_LEVEL, or debug when ENV=dev.
func ConfigureFromEnv(l *log.Logger) {
	if level := os.Getenv("TOOLSHED_LOG_LEVEL"); level != "" {
		l.SetLevel(ParseLevel(level))
		l.Debug("Log level set from environment variable", "level", level)
	} else if os.Getenv("ENV") == "dev" {
		l.SetLevel(log.DebugLevel)
		l.Debug("Debug logging enabled from ENV=dev")
	}
}
