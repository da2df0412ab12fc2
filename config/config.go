// Package config loads the oasnav configuration file with viper and keeps
// it current while the server runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/vitalvas/oasnav/logging"
	"github.com/vitalvas/oasnav/sidebar"
)

// EnvPrefix prefixes every environment variable override
// (OASNAV_SERVER_ADDR, OASNAV_LOG_LEVEL, ...).
const EnvPrefix = "OASNAV"

// ErrNoSchemas is returned when the configuration documents no schema.
var ErrNoSchemas = errors.New("config: no schemas configured")

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config is the complete oasnav configuration.
type Config struct {
	Server ServerConfig   `mapstructure:"server"`
	Log    logging.Config `mapstructure:"log"`

	// Schemas holds the raw entries of the "schemas" list. Each entry is
	// validated by sidebar.ParseConfig into Sidebars.
	Schemas []map[string]any `mapstructure:"schemas"`

	Sidebars []sidebar.Config `mapstructure:"-"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	CacheMaxAge       time.Duration `mapstructure:"cache_max_age"`
}

// DefaultConfig returns the configuration used for every unset key.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			CacheMaxAge:       5 * time.Minute,
		},
		Log: logging.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	v *viper.Viper

	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
	onError   []func(error)
}

// NewManager reads cfgFile, or oasnav.yaml from the working directory or
// $HOME/.oasnav when cfgFile is empty, and validates it.
func NewManager(cfgFile string) (*Manager, error) {
	m := &Manager{v: viper.New()}

	if err := m.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg

	return m, nil
}

func (m *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	m.v.SetDefault("server.addr", defaults.Server.Addr)
	m.v.SetDefault("server.read_header_timeout", defaults.Server.ReadHeaderTimeout)
	m.v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	m.v.SetDefault("server.cache_max_age", defaults.Server.CacheMaxAge)
	m.v.SetDefault("log.level", defaults.Log.Level)
	m.v.SetDefault("log.format", defaults.Log.Format)
	m.v.SetDefault("log.file", "")

	m.v.SetEnvPrefix(EnvPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	if cfgFile != "" {
		m.v.SetConfigFile(cfgFile)
	} else {
		m.v.SetConfigName("oasnav")
		m.v.SetConfigType("yaml")
		m.v.AddConfigPath(".")
		m.v.AddConfigPath("$HOME/.oasnav")
	}

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("config: no oasnav.yaml found: %w", ErrNoSchemas)
		}
		return fmt.Errorf("config: read %s: %w", m.v.ConfigFileUsed(), err)
	}

	return nil
}

// load parses the current viper state into a validated Config.
func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolve validates every schema entry and fills Sidebars.
func (c *Config) resolve() error {
	if len(c.Schemas) == 0 {
		return ErrNoSchemas
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}

	c.Sidebars = make([]sidebar.Config, 0, len(c.Schemas))
	for i, raw := range c.Schemas {
		if opts, ok := raw["parser_options"].(map[string]any); ok {
			raw["parser_options"] = resolveEnvVarsIn(opts)
		}

		sc, err := sidebar.ParseConfig(raw)
		if err != nil {
			return fmt.Errorf("config: schemas[%d]: %w", i, err)
		}
		c.Sidebars = append(c.Sidebars, sc)
	}

	if err := sidebar.CheckUniqueBases(c.Sidebars); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// ConfigFile returns the path of the file the configuration was read from.
func (m *Manager) ConfigFile() string {
	return m.v.ConfigFileUsed()
}

// OnChange registers a callback for config changes.
func (m *Manager) OnChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// OnError registers a callback for reloads that fail. The previous
// configuration stays current.
func (m *Manager) OnError(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = append(m.onError, fn)
}

// Watch enables hot-reloading of the configuration file.
func (m *Manager) Watch() {
	m.v.OnConfigChange(func(fsnotify.Event) {
		m.apply()
	})
	m.v.WatchConfig()
}

// Reload re-reads the configuration file and notifies subscribers.
func (m *Manager) Reload() error {
	if err := m.v.ReadInConfig(); err != nil {
		err = fmt.Errorf("config: read %s: %w", m.v.ConfigFileUsed(), err)
		m.fail(err)
		return err
	}
	return m.apply()
}

func (m *Manager) apply() error {
	cfg, err := m.load()
	if err != nil {
		m.fail(err)
		return err
	}

	m.mu.Lock()
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn(cfg)
	}
	return nil
}

func (m *Manager) fail(err error) {
	m.mu.RLock()
	handlers := make([]func(error), len(m.onError))
	copy(handlers, m.onError)
	m.mu.RUnlock()

	for _, fn := range handlers {
		fn(err)
	}
}

// ResolveEnvVars expands ${ENV_VAR} references in a string. Unset
// variables expand to the empty string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// resolveEnvVarsIn returns a copy of m with ResolveEnvVars applied to
// every string value, at any depth.
func resolveEnvVarsIn(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = resolveEnvVarsValue(v)
	}
	return out
}

func resolveEnvVarsValue(v any) any {
	switch val := v.(type) {
	case string:
		return ResolveEnvVars(val)
	case map[string]any:
		return resolveEnvVarsIn(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = resolveEnvVarsValue(item)
		}
		return out
	default:
		return v
	}
}
