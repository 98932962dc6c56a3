package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trebuchet-org/treb-multichain/internal/domain/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("info"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelWarn, parseLevel(""))
}

func TestNewLogger(t *testing.T) {
	t.Setenv("MULTICHAIN_LOG_LEVEL", "")

	var buf bytes.Buffer
	logger := newLogger(&buf, &config.RuntimeConfig{})
	logger.Info("hidden")
	logger.Warn("shown", "domain", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown domain=2")
	assert.NotContains(t, buf.String(), "time=")

	buf.Reset()
	logger = newLogger(&buf, &config.RuntimeConfig{Debug: true})
	logger.Debug("details")
	assert.Contains(t, buf.String(), "msg=details")
}
