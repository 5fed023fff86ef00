package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	Initialize()
	require.NotNil(t, get())

	// Logging through the package functions must not panic.
	Debugf("debug %s", "message")
	Infof("info %d", 42)
	Warnf("warn")
	Errorf("error: %v", assert.AnError)
}

func TestGetWithoutInitialize(t *testing.T) {
	mu.Lock()
	log = nil
	mu.Unlock()

	// The first use lazily configures a logger.
	require.NotNil(t, get())
}

func TestUnstructuredLogs(t *testing.T) {
	t.Setenv("UNSTRUCTURED_LOGS", "true")
	assert.True(t, unstructuredLogs())

	t.Setenv("UNSTRUCTURED_LOGS", "false")
	assert.False(t, unstructuredLogs())

	t.Setenv("UNSTRUCTURED_LOGS", "not-a-bool")
	assert.False(t, unstructuredLogs())
}
