package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NeverFails(t *testing.T) {
	logger := New("debug")
	require.NotNil(t, logger)
	logger.Logf("INFO smoke test")
}

func TestNewWithConfig_RejectsInvalidLevel(t *testing.T) {
	_, err := NewWithConfig(Config{Level: "not-a-level", Format: formatText})
	assert.Error(t, err)
}

func TestNewWithConfig_RejectsInvalidFormat(t *testing.T) {
	_, err := NewWithConfig(Config{Level: levelInfo, Format: "xml"})
	assert.Error(t, err)
}

func TestNewWithConfig_JSONFormatBuildsSuccessfully(t *testing.T) {
	logger, err := NewWithConfig(Config{Level: levelInfo, Format: formatJSON, Output: outputStdout})
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Logf("INFO json smoke test")
}

func TestNewWithConfig_TextFormatWithCallerInfo(t *testing.T) {
	logger, err := NewWithConfig(Config{
		Level:  levelDebug,
		Format: formatText,
		Output: outputStdout,
		CallerInfo: CallerConfig{
			Enabled:  true,
			File:     true,
			Function: true,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, logger)
}
