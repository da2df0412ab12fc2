package sidebar

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidConfig is wrapped by every *ConfigError.
	ErrInvalidConfig = errors.New("sidebar: invalid config")

	// ErrDuplicateBase is returned when two schemas share a base path.
	ErrDuplicateBase = errors.New("sidebar: duplicate base")

	// ErrDuplicateHref is returned when two distinct operations resolve to
	// the same link target.
	ErrDuplicateHref = errors.New("sidebar: duplicate href")

	// ErrNoDocument is returned when a Schema has no document attached.
	ErrNoDocument = errors.New("sidebar: schema has no document")
)

// FieldError describes one invalid configuration field. Field is empty for
// errors about the configuration object as a whole (missing keys).
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ConfigError reports every invalid field found while validating a
// configuration.
type ConfigError struct {
	Fields []FieldError
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return ErrInvalidConfig.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Has reports whether field is among the invalid fields.
func (e *ConfigError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
