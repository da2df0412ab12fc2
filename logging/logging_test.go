package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("text console honours level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer, err := New(Config{Level: "warn"}, &buf)
		require.NoError(t, err)
		defer closer.Close()

		logger.Info("hidden")
		logger.Warn("shown", "schema", "api")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
		assert.Contains(t, buf.String(), "schema=api")
	})

	t.Run("json console", func(t *testing.T) {
		var buf bytes.Buffer
		logger, closer, err := New(Config{Format: "json"}, &buf)
		require.NoError(t, err)
		defer closer.Close()

		logger.Info("built", "groups", 2)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "built", record["msg"])
		assert.InDelta(t, 2, record["groups"], 0)
	})

	t.Run("fans out to file", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "oasnav.log")

		logger, closer, err := New(Config{File: path}, &buf)
		require.NoError(t, err)

		logger.Info("reloaded")
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "reloaded")
		assert.True(t, strings.HasPrefix(string(data), "{"))
		assert.Contains(t, string(data), `"msg":"reloaded"`)
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, _, err := New(Config{Level: "loud"}, &bytes.Buffer{})
		assert.Error(t, err)

		_, _, err = New(Config{Format: "xml"}, &bytes.Buffer{})
		assert.Error(t, err)

		_, _, err = New(Config{File: filepath.Join(t.TempDir(), "missing", "x.log")}, &bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("discard", func(t *testing.T) {
		assert.NotPanics(t, func() { Discard().Error("dropped") })
	})
}
