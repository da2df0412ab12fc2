package sidebar

import (
	"encoding/json"
	"fmt"
)

// Entry is a sidebar navigation entry: either a Link or a Group.
type Entry interface {
	isEntry()
}

// Link is a leaf navigation entry.
type Link struct {
	Label string
	Href  string
}

// Group is a named, ordered sequence of links and sub-groups. Collapsed
// tells the renderer to show the group folded by default.
type Group struct {
	Label     string
	Entries   []Entry
	Collapsed bool
}

func (Link) isEntry()  {}
func (Group) isEntry() {}

const (
	entryTypeLink  = "link"
	entryTypeGroup = "group"
)

// wireEntry is the serialized form of both entry kinds. The type field
// tells decoders which kind to rebuild.
type wireEntry struct {
	Type      string            `json:"type" yaml:"type"`
	Label     string            `json:"label" yaml:"label"`
	Href      string            `json:"href,omitempty" yaml:"href,omitempty"`
	Collapsed *bool             `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Entries   []json.RawMessage `json:"entries,omitempty" yaml:"-"`
	Children  []Entry           `json:"-" yaml:"entries,omitempty"`
}

// MarshalJSON encodes the link as {"type":"link","label":...,"href":...}.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Label string `json:"label"`
		Href  string `json:"href"`
	}{entryTypeLink, l.Label, l.Href})
}

// MarshalYAML encodes the link with the same fields as MarshalJSON.
func (l Link) MarshalYAML() (any, error) {
	return wireEntry{Type: entryTypeLink, Label: l.Label, Href: l.Href}, nil
}

// MarshalJSON encodes the group with its entries in order.
func (g Group) MarshalJSON() ([]byte, error) {
	entries := g.Entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(struct {
		Type      string  `json:"type"`
		Label     string  `json:"label"`
		Collapsed bool    `json:"collapsed"`
		Entries   []Entry `json:"entries"`
	}{entryTypeGroup, g.Label, g.Collapsed, entries})
}

// MarshalYAML encodes the group with the same fields as MarshalJSON.
func (g Group) MarshalYAML() (any, error) {
	collapsed := g.Collapsed
	return wireEntry{
		Type:      entryTypeGroup,
		Label:     g.Label,
		Collapsed: &collapsed,
		Children:  g.Entries,
	}, nil
}

// UnmarshalJSON decodes a group produced by MarshalJSON, rebuilding nested
// links and groups from their type field.
func (g *Group) UnmarshalJSON(data []byte) error {
	entry, err := decodeEntry(data)
	if err != nil {
		return err
	}
	group, ok := entry.(Group)
	if !ok {
		return fmt.Errorf("sidebar: expected %q entry", entryTypeGroup)
	}
	*g = group
	return nil
}

func decodeEntry(data []byte) (Entry, error) {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	switch w.Type {
	case entryTypeLink:
		return Link{Label: w.Label, Href: w.Href}, nil
	case entryTypeGroup:
		g := Group{Label: w.Label, Entries: make([]Entry, 0, len(w.Entries))}
		if w.Collapsed != nil {
			g.Collapsed = *w.Collapsed
		}
		for _, raw := range w.Entries {
			child, err := decodeEntry(raw)
			if err != nil {
				return nil, err
			}
			g.Entries = append(g.Entries, child)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("sidebar: unknown entry type %q", w.Type)
	}
}

// Links returns every link of the group, depth first, in display order.
func (g Group) Links() []Link {
	var out []Link
	for _, e := range g.Entries {
		switch v := e.(type) {
		case Link:
			out = append(out, v)
		case Group:
			out = append(out, v.Links()...)
		}
	}
	return out
}
