package sidebar

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vitalvas/oasnav/openapi"
)

//go:embed config.schema.json
var configSchemaJSON []byte

// missingPropertyRegexp extracts property names from a "required" failure
// ("missing properties: 'base', 'schema'").
var missingPropertyRegexp = regexp.MustCompile(`'([^']+)'`)

var compileConfigSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("config.schema.json", bytes.NewReader(configSchemaJSON)); err != nil {
		return nil, fmt.Errorf("sidebar: load config schema: %w", err)
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return nil, fmt.Errorf("sidebar: compile config schema: %w", err)
	}
	return schema, nil
})

// TitleFunc maps an operation to the link shown for it in the sidebar.
// An empty Label or Href in the result falls back to the default value.
type TitleFunc func(op openapi.PathItemOperation) Link

// Config is the validated configuration of one documented schema. Build it
// with ParseConfig or NewConfig; both normalize Base and apply defaults.
type Config struct {
	// Base is the path containing the generated documentation, stored
	// without leading or trailing slashes (e.g. "api/petstore").
	Base string `mapstructure:"base"`

	// Collapsed folds the generated sidebar group by default (default: true).
	Collapsed bool `mapstructure:"collapsed"`

	// Label overrides the group label (default: the document info.title).
	Label string `mapstructure:"label"`

	// Schema is the OpenAPI/Swagger document path or URL.
	Schema string `mapstructure:"schema"`

	// ParserOptions is forwarded as-is to the document loader.
	ParserOptions map[string]any `mapstructure:"parser_options"`

	// OperationTitle customizes operation links. It can only be set in code.
	OperationTitle TitleFunc `mapstructure:"-"`
}

// ConfigOption customizes a Config built by NewConfig.
type ConfigOption func(*Config)

// WithLabel sets the group label.
func WithLabel(label string) ConfigOption {
	return func(c *Config) { c.Label = label }
}

// WithCollapsed sets whether the group is collapsed by default.
func WithCollapsed(collapsed bool) ConfigOption {
	return func(c *Config) { c.Collapsed = collapsed }
}

// WithParserOptions sets the options forwarded to the document loader.
func WithParserOptions(opts map[string]any) ConfigOption {
	return func(c *Config) { c.ParserOptions = opts }
}

// WithOperationTitle sets the operation link strategy.
func WithOperationTitle(fn TitleFunc) ConfigOption {
	return func(c *Config) { c.OperationTitle = fn }
}

// NewConfig builds a validated Config for the given schema location and
// base path.
func NewConfig(schema, base string, opts ...ConfigOption) (Config, error) {
	cfg := Config{
		Schema:    schema,
		Base:      base,
		Collapsed: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Base = StripLeadingAndTrailingSlashes(cfg.Base)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks an already decoded configuration.
func (c Config) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(c.Schema) == "" {
		fields = append(fields, FieldError{Field: "schema", Message: "must not be empty"})
	}
	if c.Base == "" {
		fields = append(fields, FieldError{Field: "base", Message: "must contain a path segment"})
	} else if c.Base != StripLeadingAndTrailingSlashes(c.Base) {
		fields = append(fields, FieldError{Field: "base", Message: "must not start or end with a slash"})
	}

	if len(fields) > 0 {
		return &ConfigError{Fields: fields}
	}
	return nil
}

// ParseConfig validates a raw configuration object, as read from a file,
// and converts it into a Config. Base is normalized and collapsed defaults
// to true. Unknown keys are ignored.
func ParseConfig(raw map[string]any) (Config, error) {
	doc, err := toJSONValue(raw)
	if err != nil {
		return Config{}, &ConfigError{Fields: []FieldError{{Message: err.Error()}}}
	}

	schema, err := compileConfigSchema()
	if err != nil {
		return Config{}, err
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return Config{}, &ConfigError{Fields: fieldErrors(ve)}
		}
		return Config{}, err
	}

	cfg := Config{Collapsed: true}
	if err := mapstructure.Decode(doc, &cfg); err != nil {
		return Config{}, &ConfigError{Fields: []FieldError{{Message: err.Error()}}}
	}
	cfg.Base = StripLeadingAndTrailingSlashes(cfg.Base)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// toJSONValue converts arbitrary decoded data (YAML, viper, literals) into
// the plain JSON value types the validator understands.
func toJSONValue(raw map[string]any) (any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("not representable as JSON: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// fieldErrors flattens a validation error tree into its leaf failures.
func fieldErrors(ve *jsonschema.ValidationError) []FieldError {
	if len(ve.Causes) > 0 {
		var out []FieldError
		for _, cause := range ve.Causes {
			out = append(out, fieldErrors(cause)...)
		}
		return out
	}

	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if strings.HasSuffix(ve.KeywordLocation, "/required") {
		var out []FieldError
		for _, m := range missingPropertyRegexp.FindAllStringSubmatch(ve.Message, -1) {
			out = append(out, FieldError{Field: joinHref(field, m[1]), Message: "is required"})
		}
		if len(out) > 0 {
			return out
		}
	}

	return []FieldError{{Field: field, Message: ve.Message}}
}
