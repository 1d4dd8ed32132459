package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/faas-client/internal/logging"
	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"info", zap.InfoLevel},
		{"warn", zap.WarnLevel},
		{"WARNING", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"fatal", zap.FatalLevel},
		{"unknown", zap.InfoLevel},
		{"", zap.InfoLevel},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, logging.ParseLevel(testCase.input))
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger, err := logging.NewWithWriter(&buf, "info", logging.FormatJSON)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("workspace created", zap.String("workspace", "demo"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "workspace created", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "demo", entry["workspace"])
}

func TestNewWithWriter_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := logging.NewWithWriter(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestAdapter(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)

	var logger faas.Logger = logging.NewAdapter(zap.New(core))

	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET"})
	logger.Info("Following redirect", map[string]interface{}{"status_code": 302})
	logger.Warn("soft errors", nil)
	logger.Error("invalid JSON", map[string]interface{}{"body": "<html>"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "GET", entries[0].ContextMap()["method"])
	assert.Equal(t, int64(302), entries[1].ContextMap()["status_code"])
	assert.Equal(t, zap.WarnLevel, entries[2].Level)
	assert.Equal(t, "invalid JSON", entries[3].Message)
}

func TestNewAdapter_Nil(t *testing.T) {
	t.Parallel()

	adapter := logging.NewAdapter(nil)
	adapter.Info("discarded", nil)
	assert.NoError(t, adapter.Sync())
}
