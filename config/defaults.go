package config

import (
	"fmt"
	"os"
)

// sampleConfig is written by WriteDefault.
const sampleConfig = `# oasnav configuration
# Values can be overridden with OASNAV_* environment variables
# (OASNAV_SERVER_ADDR, OASNAV_LOG_LEVEL, ...).
# Strings in parser_options may reference ${ENV_VAR}.

server:
  addr: ":8080"
  read_header_timeout: 10s
  shutdown_timeout: 10s
  cache_max_age: 5m

log:
  level: info
  format: text
  # file: oasnav.log

schemas:
  - schema: openapi.yaml
    base: api
    collapsed: true
    # label: My API
    # parser_options:
    #   timeout: 30s
    #   retries: 3
    #   max_size: 33554432
    #   headers:
    #     Authorization: Bearer ${API_TOKEN}
`

// WriteDefault writes a sample configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}

	if _, err := f.WriteString(sampleConfig); err != nil {
		f.Close()
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return f.Close()
}
