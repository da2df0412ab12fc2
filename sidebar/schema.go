package sidebar

import (
	"context"
	"fmt"

	"github.com/vitalvas/oasnav/openapi"
)

// OverviewLabel is the label of the first link of every schema group.
const OverviewLabel = "Overview"

// Schema pairs a configuration with the document it describes.
type Schema struct {
	Config   Config
	Document *openapi.Document
}

// LoadSchema loads the document referenced by cfg, passing its parser
// options to the loader.
func LoadSchema(ctx context.Context, cfg Config) (Schema, error) {
	opts, err := openapi.DecodeLoadOptions(cfg.ParserOptions)
	if err != nil {
		return Schema{}, err
	}

	doc, err := openapi.Load(ctx, cfg.Schema, opts)
	if err != nil {
		return Schema{}, err
	}

	return Schema{Config: cfg, Document: doc}, nil
}

// Label returns the configured label, or the document title when none is
// configured.
func (s Schema) Label() string {
	if s.Config.Label != "" {
		return s.Config.Label
	}
	if s.Document == nil {
		return ""
	}
	return s.Document.Info.Title
}

// BuildGroup assembles the sidebar group of a schema: an Overview link to
// the base link, the operation groups and the webhook group, in that order.
// It is a pure function of its input.
func BuildGroup(schema Schema) (Group, error) {
	if schema.Document == nil {
		return Group{}, ErrNoDocument
	}

	// One walk for both traversals so path, webhook and Overview links
	// share a single href space.
	ops, err := CollectOperations(schema)
	if err != nil {
		return Group{}, err
	}
	paths := tagGroups(ops.Tags, schema.Config.Collapsed)
	webhooks := webhookGroups(ops.Webhooks, schema.Config.Collapsed)

	entries := make([]Entry, 0, 1+len(paths)+len(webhooks))
	entries = append(entries, Link{Label: OverviewLabel, Href: BaseLink(schema.Config)})
	entries = append(entries, paths...)
	entries = append(entries, webhooks...)

	return Group{
		Label:     schema.Label(),
		Entries:   entries,
		Collapsed: schema.Config.Collapsed,
	}, nil
}

// BuildGroups builds the group of every schema, in order. Schemas must have
// distinct base paths.
func BuildGroups(schemas []Schema) ([]Group, error) {
	configs := make([]Config, len(schemas))
	for i, s := range schemas {
		configs[i] = s.Config
	}
	if err := CheckUniqueBases(configs); err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(schemas))
	for _, s := range schemas {
		g, err := BuildGroup(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Config.Base, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// CheckUniqueBases fails with ErrDuplicateBase when two configurations
// share a base path.
func CheckUniqueBases(configs []Config) error {
	seen := make(map[string]int, len(configs))
	for i, c := range configs {
		if j, ok := seen[c.Base]; ok {
			return fmt.Errorf("%w: %q used by schemas %d and %d", ErrDuplicateBase, c.Base, j, i)
		}
		seen[c.Base] = i
	}
	return nil
}
