package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile, outputFormat, buildOut = "", "json", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()

	schema, err := filepath.Abs("../../openapi/testdata/petstore.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "oasnav.yaml")
	content := "log:\n  level: error\nschemas:\n  - schema: " + schema + "\n    base: /api/petstore/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildCommand(t *testing.T) {
	path := writeTestConfig(t)

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "build", "--config", path)
		require.NoError(t, err)

		var groups []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &groups))
		require.Len(t, groups, 1)
		assert.Equal(t, "Petstore", groups[0]["label"])
		assert.Equal(t, true, groups[0]["collapsed"])

		entries := groups[0]["entries"].([]any)
		assert.Equal(t, map[string]any{"type": "link", "label": "Overview", "href": "api/petstore"}, entries[0])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "build", "--config", path, "-o", "yaml")
		require.NoError(t, err)

		var groups []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &groups))
		require.Len(t, groups, 1)
		assert.Equal(t, "group", groups[0]["type"])
	})

	t.Run("to file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "sidebar.json")
		out, err := execute(t, "build", "--config", path, "--out", target)
		require.NoError(t, err)
		assert.Empty(t, out)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"label": "Petstore"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "build", "--config", path, "-o", "toml")
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("missing config", func(t *testing.T) {
		_, err := execute(t, "build", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oasnav.yaml")

	out, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	_, err = execute(t, "init", path)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "oasnav ")
	assert.Contains(t, out, "Go:")
}
