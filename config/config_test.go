package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/oasnav/sidebar"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "oasnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
schemas:
  - schema: petstore.yaml
    base: /api/petstore/
`

func TestNewManager(t *testing.T) {
	t.Run("loads from config file with defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), minimalConfig)

		m, err := NewManager(path)
		require.NoError(t, err)
		assert.Equal(t, path, m.ConfigFile())

		cfg := m.Get()
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 5*time.Minute, cfg.Server.CacheMaxAge)
		assert.Equal(t, "info", cfg.Log.Level)

		require.Len(t, cfg.Sidebars, 1)
		assert.Equal(t, "api/petstore", cfg.Sidebars[0].Base)
		assert.Equal(t, "petstore.yaml", cfg.Sidebars[0].Schema)
		assert.True(t, cfg.Sidebars[0].Collapsed)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), `
server:
  addr: 127.0.0.1:9000
  cache_max_age: 30s
log:
  level: debug
schemas:
  - schema: a.yaml
    base: a
    collapsed: false
    label: Service A
  - schema: b.yaml
    base: b
`)

		m, err := NewManager(path)
		require.NoError(t, err)

		cfg := m.Get()
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
		assert.Equal(t, 30*time.Second, cfg.Server.CacheMaxAge)
		assert.Equal(t, "debug", cfg.Log.Level)
		require.Len(t, cfg.Sidebars, 2)
		assert.Equal(t, "Service A", cfg.Sidebars[0].Label)
		assert.False(t, cfg.Sidebars[0].Collapsed)
		assert.Equal(t, "b", cfg.Sidebars[1].Base)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("OASNAV_SERVER_ADDR", ":9999")
		t.Setenv("OASNAV_LOG_LEVEL", "warn")
		path := writeConfig(t, t.TempDir(), minimalConfig)

		m, err := NewManager(path)
		require.NoError(t, err)
		assert.Equal(t, ":9999", m.Get().Server.Addr)
		assert.Equal(t, "warn", m.Get().Log.Level)
	})

	t.Run("parser options resolve environment variables", func(t *testing.T) {
		t.Setenv("PETSTORE_TOKEN", "secret")
		path := writeConfig(t, t.TempDir(), `
schemas:
  - schema: https://example.com/openapi.yaml
    base: api
    parser_options:
      timeout: 5s
      headers:
        authorization: Bearer ${PETSTORE_TOKEN}
`)

		m, err := NewManager(path)
		require.NoError(t, err)

		opts := m.Get().Sidebars[0].ParserOptions
		assert.Equal(t, "5s", opts["timeout"])
		assert.Equal(t, map[string]any{"authorization": "Bearer secret"}, opts["headers"])
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			wantErr error
		}{
			{"no schemas", "log:\n  level: info\n", ErrNoSchemas},
			{"invalid schema entry", "schemas:\n  - base: api\n", sidebar.ErrInvalidConfig},
			{"duplicate base", "schemas:\n  - {schema: a.yaml, base: api}\n  - {schema: b.yaml, base: /api/}\n", sidebar.ErrDuplicateBase},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := writeConfig(t, t.TempDir(), tt.content)
				_, err := NewManager(path)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "log:\n  level: loud\n"+minimalConfig)
		_, err := NewManager(path)
		assert.ErrorContains(t, err, "log.level")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewManager(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("no file in search path", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		_, err := NewManager("")
		assert.ErrorIs(t, err, ErrNoSchemas)
	})
}

func TestManagerReload(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, minimalConfig)

	m, err := NewManager(path)
	require.NoError(t, err)

	var changes atomic.Int32
	var failures atomic.Int32
	m.OnChange(func(*Config) {
		changes.Add(1)
	})
	m.OnError(func(error) {
		failures.Add(1)
	})

	t.Run("valid change", func(t *testing.T) {
		writeConfig(t, dir, "schemas:\n  - {schema: other.yaml, base: docs}\n")

		require.NoError(t, m.Reload())
		assert.Equal(t, int32(1), changes.Load())
		assert.Equal(t, "docs", m.Get().Sidebars[0].Base)
	})

	t.Run("invalid change keeps previous config", func(t *testing.T) {
		writeConfig(t, dir, "schemas: []\n")

		err := m.Reload()
		assert.ErrorIs(t, err, ErrNoSchemas)
		assert.Equal(t, int32(1), changes.Load())
		assert.Equal(t, int32(1), failures.Load())
		assert.Equal(t, "docs", m.Get().Sidebars[0].Base)
	})
}

func TestManagerWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, minimalConfig)

	m, err := NewManager(path)
	require.NoError(t, err)

	changed := make(chan *Config, 4)
	m.OnChange(func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	m.Watch()

	writeConfig(t, dir, "schemas:\n  - {schema: watched.yaml, base: watched}\n")

	select {
	case cfg := <-changed:
		assert.Equal(t, "watched", cfg.Sidebars[0].Base)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("OASNAV_TEST_KEY", "secret123")

	assert.Equal(t, "secret123", ResolveEnvVars("${OASNAV_TEST_KEY}"))
	assert.Equal(t, "Bearer secret123", ResolveEnvVars("Bearer ${OASNAV_TEST_KEY}"))
	assert.Equal(t, "", ResolveEnvVars("${DEFINITELY_NOT_SET_12345}"))
	assert.Equal(t, "literal-value", ResolveEnvVars("literal-value"))
	assert.Equal(t, "", ResolveEnvVars(""))
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oasnav.yaml")
	require.NoError(t, WriteDefault(path))

	m, err := NewManager(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, m.Get().Server)
	assert.Equal(t, "api", m.Get().Sidebars[0].Base)

	assert.Error(t, WriteDefault(path), "existing file must not be overwritten")
}
