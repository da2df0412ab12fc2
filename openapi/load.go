package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// DefaultMaxSize is the largest remote document Load accepts by default.
const DefaultMaxSize = 32 << 20

// LoadOptions configures how Load reads and resolves a document.
type LoadOptions struct {
	// Resolve replaces local $refs to path items, parameters, request bodies
	// and responses with their targets (default: true). Schema references
	// are never dereferenced.
	Resolve bool `mapstructure:"resolve"`

	// Timeout bounds a single remote fetch attempt (default: 30s).
	Timeout time.Duration `mapstructure:"timeout"`

	// Retries is the number of attempts for a remote fetch (default: 3).
	Retries uint `mapstructure:"retries"`

	// Headers are sent with remote fetches, e.g. an Authorization header
	// for a private schema.
	Headers map[string]string `mapstructure:"headers"`

	// MaxSize is the largest remote document accepted, in bytes (default:
	// DefaultMaxSize). A larger document fails with ErrFetch rather than
	// being cut short.
	MaxSize int64 `mapstructure:"max_size"`

	// Client overrides the HTTP client used for remote fetches.
	Client *http.Client `mapstructure:"-"`
}

// DefaultLoadOptions returns the options used when none are configured.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Resolve: true,
		Timeout: 30 * time.Second,
		Retries: 3,
		MaxSize: DefaultMaxSize,
	}
}

// DecodeLoadOptions decodes a loosely typed option bag (as found in a
// configuration file) over DefaultLoadOptions. Durations may be given as
// strings ("10s") and scalars are weakly converted.
//
// Recognized keys: resolve, timeout, retries, headers, max_size. Unknown keys are
// ignored so the bag can carry options for other consumers.
func DecodeLoadOptions(raw map[string]any) (LoadOptions, error) {
	opts := DefaultLoadOptions()
	if len(raw) == 0 {
		return opts, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return LoadOptions{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return LoadOptions{}, fmt.Errorf("openapi: parser options: %w", err)
	}

	return opts, nil
}

// Load reads the document at source, which is either a file path or an
// http(s) URL, and decodes it. JSON and YAML are both accepted.
func Load(ctx context.Context, source string, opts LoadOptions) (*Document, error) {
	var (
		data []byte
		err  error
	)

	if isRemote(source) {
		data, err = fetch(ctx, source, opts)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", source, err)
	}

	doc, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("openapi: %s: %w", source, err)
	}

	return doc, nil
}

// Parse decodes a JSON or YAML document held in memory.
func Parse(data []byte, opts LoadOptions) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	if opts.Resolve {
		if err := resolveRefs(&root); err != nil {
			return nil, err
		}
	}

	var doc Document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (d *Document) validate() error {
	if d.OpenAPI == "" && d.Swagger == "" {
		return fmt.Errorf("%w: missing openapi or swagger version", ErrInvalidDocument)
	}
	if d.Swagger != "" && !strings.HasPrefix(d.Swagger, "2.") {
		return fmt.Errorf("%w: unsupported swagger version %q", ErrInvalidDocument, d.Swagger)
	}
	if d.OpenAPI != "" && !strings.HasPrefix(d.OpenAPI, "3.") {
		return fmt.Errorf("%w: unsupported openapi version %q", ErrInvalidDocument, d.OpenAPI)
	}
	if d.Info.Title == "" {
		return fmt.Errorf("%w: missing info.title", ErrInvalidDocument)
	}
	return nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fetch downloads a remote document. Network errors and 5xx/429 responses
// are retried; other 4xx responses fail immediately.
func fetch(ctx context.Context, url string, opts LoadOptions) ([]byte, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	attempts := opts.Retries
	if attempts == 0 {
		attempts = 1
	}

	var body []byte
	err := retry.Do(
		func() error {
			attemptCtx := ctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
				defer cancel()
			}

			req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")
			for k, v := range opts.Headers {
				req.Header.Set(k, v)
			}

			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
				if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}

			body, err = io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
			if err != nil {
				return err
			}
			if int64(len(body)) > maxSize {
				body = nil
				return retry.Unrecoverable(fmt.Errorf("%w: %s: document exceeds %d bytes", ErrFetch, url, maxSize))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if !errors.Is(err, ErrFetch) {
			err = fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return nil, err
	}

	return body, nil
}
