package log

import (
	"log/slog"
	"strings"
)

// ParseLogLevel parses a human readable level. Unknown input falls back to INFO.
func ParseLogLevel(input string) slog.Level {
	level, ok := parseLogLevel(input)
	if !ok {
		return slog.LevelInfo
	}
	return level
}

// IsValidLogLevel reports whether the input names a known level.
func IsValidLogLevel(input string) bool {
	_, ok := parseLogLevel(input)
	return ok
}

func parseLogLevel(input string) (slog.Level, bool) {
	sanitized := strings.ToLower(strings.TrimSpace(input))

	switch sanitized {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
