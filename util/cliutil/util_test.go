package cliutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, LogOptions{LogLevel: "warn", LogFormat: "json"})
	assert.NoError(err)

	logger.Info("hidden")
	logger.Warn("shown", "module", "sample")
	out := buf.String()
	assert.False(strings.Contains(out, "hidden"))
	assert.True(strings.Contains(out, `"msg":"shown"`))
	assert.True(strings.Contains(out, `"module":"sample"`))
}

func TestNewLoggerErrors(t *testing.T) {
	var buf bytes.Buffer

	_, err := NewLogger(&buf, LogOptions{LogLevel: "loud"})
	assert.Error(t, err)

	_, err = NewLogger(&buf, LogOptions{LogFormat: "xml"})
	assert.Error(t, err)
}

func TestSetupSlogEnv(t *testing.T) {
	t.Setenv("WOOLGEN_LOG_LEVEL", "nope")
	_, err := SetupSlog(LogOptions{})
	assert.Error(t, err)

	t.Setenv("WOOLGEN_LOG_LEVEL", "debug")
	logger, err := SetupSlog(LogOptions{LogPath: t.TempDir() + "/woolgen.log"})
	assert.NoError(t, err)
	assert.NotNil(t, logger)
}
