package pages

import (
	"errors"
	"fmt"
	"io"

	g "maragu.dev/gomponents"

	"github.com/vitalvas/oasnav/sidebar"
)

// ErrNotFound is returned when no page exists for an href.
var ErrNotFound = errors.New("pages: not found")

// Kind identifies what a page documents.
type Kind string

const (
	KindOverview  Kind = "overview"
	KindOperation Kind = "operation"
	KindWebhook   Kind = "webhook"
)

// Page is one rendered reference page.
type Page struct {
	Href  string
	Title string
	Kind  Kind

	// Base is the base link of the schema the page belongs to.
	Base string

	owner   string
	content g.Node
}

// Site holds the sidebar of every schema and the pages its links point
// at. A Site is immutable once built and safe for concurrent use.
type Site struct {
	Groups []sidebar.Group

	pages map[string]*Page
	order []string
}

// Build assembles the sidebar groups and reference pages of schemas.
// Schemas must carry their loaded documents.
func Build(schemas []sidebar.Schema) (*Site, error) {
	groups, err := sidebar.BuildGroups(schemas)
	if err != nil {
		return nil, err
	}

	site := &Site{
		Groups: groups,
		pages:  make(map[string]*Page),
	}

	for _, schema := range schemas {
		if err := site.addSchema(schema); err != nil {
			return nil, fmt.Errorf("%s: %w", schema.Config.Base, err)
		}
	}

	return site, nil
}

func (s *Site) addSchema(schema sidebar.Schema) error {
	base := sidebar.BaseLink(schema.Config)

	overview, err := overviewContent(schema)
	if err != nil {
		return err
	}
	if err := s.add(&Page{
		Href:    base,
		Title:   schema.Label(),
		Kind:    KindOverview,
		Base:    base,
		owner:   base,
		content: overview,
	}); err != nil {
		return err
	}

	ops, err := sidebar.CollectOperations(schema)
	if err != nil {
		return err
	}
	for _, tag := range ops.Tags {
		for _, op := range tag.Operations {
			if err := s.addOperation(base, KindOperation, op); err != nil {
				return err
			}
		}
	}
	for _, op := range ops.Webhooks {
		if err := s.addOperation(base, KindWebhook, op); err != nil {
			return err
		}
	}

	return nil
}

func (s *Site) addOperation(base string, kind Kind, op sidebar.OperationLink) error {
	owner := base + " " + string(kind) + " " + op.Operation.Method + " " + op.Operation.Path
	if p, ok := s.pages[op.Link.Href]; ok && p.owner == owner {
		// Operations with several tags are linked more than once.
		return nil
	}

	content, err := operationContent(op.Link.Label, op.Operation)
	if err != nil {
		return err
	}

	return s.add(&Page{
		Href:    op.Link.Href,
		Title:   op.Link.Label,
		Kind:    kind,
		Base:    base,
		owner:   owner,
		content: content,
	})
}

func (s *Site) add(p *Page) error {
	if prev, ok := s.pages[p.Href]; ok {
		return fmt.Errorf("%w: %q used by %s and %s", sidebar.ErrDuplicateHref, p.Href, prev.owner, p.owner)
	}
	s.pages[p.Href] = p
	s.order = append(s.order, p.Href)
	return nil
}

// Page returns the page published at href.
func (s *Site) Page(href string) (Page, bool) {
	p, ok := s.pages[sidebar.StripLeadingAndTrailingSlashes(href)]
	if !ok {
		return Page{}, false
	}
	return *p, true
}

// Hrefs returns the href of every page in build order.
func (s *Site) Hrefs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of pages.
func (s *Site) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Render writes the complete HTML document of the page at href, with the
// sidebar navigation, to w.
func (s *Site) Render(w io.Writer, href string) error {
	p, ok := s.pages[sidebar.StripLeadingAndTrailingSlashes(href)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, href)
	}
	return layout(p, s.Groups).Render(w)
}
