package log_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tessellated-io/blobtx/log"
)

func TestLogging_NoPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter("info", []string{}, buffer)

	assert.Equal(t, "level=INFO msg=test\n", logLine(buffer, logger, "test"))
	assert.Equal(t, "level=INFO msg=test key=value foo=bar\n", logLine(buffer, logger, "test", "key", "value", "foo", "bar"))

	logger = logger.With("key", "value", "foo", "bar")
	assert.Equal(t, "level=INFO msg=test key=value foo=bar\n", logLine(buffer, logger, "test"))
}

func TestLogging_ApplyPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter("info", []string{}, buffer)

	logger = logger.ApplyPrefix("[PREFIX1]")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\"\n", logLine(buffer, logger, "test"))

	logger = logger.With("key", "value")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\" key=value\n", logLine(buffer, logger, "test"))

	logger = logger.ApplyPrefix("[SECOND]")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1][SECOND] test\" key=value\n", logLine(buffer, logger, "test"))
}

func TestLogging_DefaultPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter("info", []string{"[PREFIX1]"}, buffer)

	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\" key=value\n", logLine(buffer, logger, "test", "key", "value"))
}

func TestLogging_SiblingPrefixesAreIndependent(t *testing.T) {
	buffer := &bytes.Buffer{}
	parent := log.NewLoggerWithWriter("info", []string{"[P]"}, buffer)

	left := parent.ApplyPrefix("[L]")
	right := parent.ApplyPrefix("[R]")

	assert.Equal(t, "level=INFO msg=\"[P][L] test\"\n", logLine(buffer, left, "test"))
	assert.Equal(t, "level=INFO msg=\"[P][R] test\"\n", logLine(buffer, right, "test"))
}

func TestLogging_LevelFiltering(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithWriter("warn", []string{}, buffer)

	logger.Info("hidden")
	assert.Empty(t, buffer.String())

	logger.Warn("shown")
	assert.Contains(t, buffer.String(), "msg=shown")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, log.ParseLogLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, log.ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelInfo, log.ParseLogLevel("nonsense"))

	assert.True(t, log.IsValidLogLevel("error"))
	assert.False(t, log.IsValidLogLevel("nonsense"))
}

// logLine logs a message and returns the line without its timestamp.
func logLine(buffer *bytes.Buffer, logger *log.Logger, msg string, vals ...any) string {
	buffer.Reset()
	logger.Info(msg, vals...)
	output := buffer.String()

	firstSpace := strings.Index(output, " ")
	return output[firstSpace+1:]
}
