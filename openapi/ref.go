package openapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// schemaRefPrefixes are JSON pointers into schema collections. Schema
// references are left in place so recursive schemas stay finite.
var schemaRefPrefixes = []string{
	"/components/schemas/",
	"/definitions/",
}

// refName returns the last segment of a reference
// ("#/components/schemas/Pet" -> "Pet").
func refName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// refResolver replaces local references with the node they point to. It
// works on the raw node tree before decoding, so every object type that
// may be a reference is handled in one place.
type refResolver struct {
	root  *yaml.Node
	stack []string
}

func resolveRefs(doc *yaml.Node) error {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	r := &refResolver{root: root}
	return r.walk(root)
}

func (r *refResolver) walk(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if err := r.walk(c); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		if ref, ok := localRef(n); ok {
			return r.replace(n, ref)
		}
		for i := 1; i < len(n.Content); i += 2 {
			if err := r.walk(n.Content[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// replace overwrites n with the resolved target of ref.
func (r *refResolver) replace(n *yaml.Node, ref string) error {
	for _, seen := range r.stack {
		if seen == ref {
			return fmt.Errorf("%w: cycle through %s", ErrUnresolvedRef, ref)
		}
	}

	target, err := r.lookup(ref)
	if err != nil {
		return err
	}

	r.stack = append(r.stack, ref)
	err = r.walk(target)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return err
	}

	*n = *target
	return nil
}

// lookup follows a "#/a/b/c" JSON pointer from the document root.
//
// See: https://www.rfc-editor.org/rfc/rfc6901
func (r *refResolver) lookup(ref string) (*yaml.Node, error) {
	pointer, err := url.PathUnescape(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnresolvedRef, ref, err)
	}

	node := r.root
	for _, token := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")

		if node.Kind == yaml.AliasNode && node.Alias != nil {
			node = node.Alias
		}

		var next *yaml.Node
		switch node.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == token {
					next = node.Content[i+1]
					break
				}
			}
		case yaml.SequenceNode:
			idx, convErr := strconv.Atoi(token)
			if convErr == nil && idx >= 0 && idx < len(node.Content) {
				next = node.Content[idx]
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedRef, ref)
		}
		node = next
	}

	return node, nil
}

// localRef returns the $ref value of a mapping node when it points inside
// this document at something other than a schema.
func localRef(n *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != "$ref" {
			continue
		}
		ref := n.Content[i+1].Value
		if !strings.HasPrefix(ref, "#/") {
			return "", false
		}
		for _, prefix := range schemaRefPrefixes {
			if strings.HasPrefix(ref[1:], prefix) {
				return "", false
			}
		}
		return ref, true
	}
	return "", false
}
