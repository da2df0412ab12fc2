package sidebar

import (
	"fmt"
	"strconv"

	"github.com/vitalvas/oasnav/openapi"
)

// DefaultOperationTag groups operations that declare no tag.
const DefaultOperationTag = "Operations"

// WebhooksLabel is the label of the webhook group.
const WebhooksLabel = "Webhooks"

// OperationLink is an operation together with the sidebar link pointing
// at its reference page.
type OperationLink struct {
	Operation openapi.PathItemOperation
	Slug      string
	Link      Link
}

// TagOperations is the list of operations filed under one tag.
type TagOperations struct {
	Tag        openapi.Tag
	Operations []OperationLink
}

// Operations holds the path operations filed by tag and the webhook
// operations of one schema, with links allocated from a single href space.
type Operations struct {
	Tags     []TagOperations
	Webhooks []OperationLink
}

// CollectOperations walks the path operations, then the webhook
// operations, of the schema and assigns every one a link.
//
// Tags declared in the document come first, in declaration order, followed
// by undeclared tags in the order they are first used. Untagged operations
// are filed under DefaultOperationTag. Tags without operations are dropped.
// An operation with several tags appears under each of them with the same
// link.
//
// Default hrefs never clash: when a slug is already taken, by the Overview
// link or by another operation, it gets a numeric suffix ("get-pets-1").
// An href returned by the title function is used as-is and fails with
// ErrDuplicateHref when it belongs to something else.
func CollectOperations(schema Schema) (Operations, error) {
	if schema.Document == nil {
		return Operations{}, ErrNoDocument
	}
	doc := schema.Document
	base := BaseLink(schema.Config)

	hrefs := newHrefIndex()
	hrefs[base] = overviewOwner

	var order []string
	byTag := make(map[string]*TagOperations)
	addTag := func(tag openapi.Tag) *TagOperations {
		if t, ok := byTag[tag.Name]; ok {
			return t
		}
		t := &TagOperations{Tag: tag}
		byTag[tag.Name] = t
		order = append(order, tag.Name)
		return t
	}

	for _, tag := range doc.Tags {
		addTag(tag)
	}

	for _, op := range doc.Operations() {
		link, err := operationLink(schema.Config, op, base, hrefs)
		if err != nil {
			return Operations{}, err
		}

		tags := op.Operation.Tags
		if len(tags) == 0 {
			tags = []string{DefaultOperationTag}
		}
		for _, name := range tags {
			t := addTag(openapi.Tag{Name: name})
			t.Operations = append(t.Operations, link)
		}
	}

	var out Operations
	for _, name := range order {
		if t := byTag[name]; len(t.Operations) > 0 {
			out.Tags = append(out.Tags, *t)
		}
	}

	webhookBase := joinHref(base, "webhooks")
	for _, op := range doc.WebhookOperations() {
		link, err := operationLink(schema.Config, op, webhookBase, hrefs)
		if err != nil {
			return Operations{}, err
		}
		out.Webhooks = append(out.Webhooks, link)
	}

	return out, nil
}

// OperationsByTag returns the path operations of the schema filed under
// their tags, as described on CollectOperations.
func OperationsByTag(schema Schema) ([]TagOperations, error) {
	ops, err := CollectOperations(schema)
	if err != nil {
		return nil, err
	}
	return ops.Tags, nil
}

// WebhookOperations returns the links of every webhook operation in
// document order. Webhook pages live under "<base>/webhooks/".
func WebhookOperations(schema Schema) ([]OperationLink, error) {
	ops, err := CollectOperations(schema)
	if err != nil {
		return nil, err
	}
	return ops.Webhooks, nil
}

// operationLink builds the link of op below prefix, letting the configured
// title function override label and href.
func operationLink(cfg Config, op openapi.PathItemOperation, prefix string, hrefs hrefIndex) (OperationLink, error) {
	slug := Slug(op.Operation.OperationID)
	if slug == "" {
		slug = Slug(op.Method + "-" + op.Path)
	}

	var custom Link
	if cfg.OperationTitle != nil {
		custom = cfg.OperationTitle(op)
	}

	label := op.Title()
	if custom.Label != "" {
		label = custom.Label
	}

	owner := operationOwner(op)
	if custom.Href != "" {
		href := StripLeadingAndTrailingSlashes(custom.Href)
		if err := hrefs.claim(href, owner); err != nil {
			return OperationLink{}, err
		}
		return OperationLink{Operation: op, Slug: slug, Link: Link{Label: label, Href: href}}, nil
	}

	slug, href := hrefs.unique(prefix, slug, owner)
	return OperationLink{Operation: op, Slug: slug, Link: Link{Label: label, Href: href}}, nil
}

const overviewOwner = "overview"

func operationOwner(op openapi.PathItemOperation) string {
	if op.Webhook {
		return "webhook " + op.Method + " " + op.Path
	}
	return op.Method + " " + op.Path
}

// hrefIndex remembers what owns each href of a schema.
type hrefIndex map[string]string

func newHrefIndex() hrefIndex {
	return make(hrefIndex)
}

// claim takes href for owner. Claiming an href twice for the same owner is
// allowed.
func (idx hrefIndex) claim(href, owner string) error {
	if prev, ok := idx[href]; ok && prev != owner {
		return fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateHref, href, prev, owner)
	}
	idx[href] = owner
	return nil
}

// unique takes the first free href of prefix/slug, prefix/slug-1,
// prefix/slug-2, ... and returns the slug and href it settled on.
func (idx hrefIndex) unique(prefix, slug, owner string) (string, string) {
	candidate := slug
	for n := 1; ; n++ {
		href := joinHref(prefix, candidate)
		if prev, ok := idx[href]; !ok || prev == owner {
			idx[href] = owner
			return candidate, href
		}
		candidate = slug + "-" + strconv.Itoa(n)
	}
}
