package openapi

import "strings"

// Methods lists the HTTP methods a path item can hold, in the order their
// operations are enumerated.
var Methods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// PathItemOperation is one operation of a path item together with where it
// was found in the document. For webhooks Path holds the webhook name.
type PathItemOperation struct {
	Method    string
	Path      string
	PathItem  *PathItem
	Operation *Operation
	Webhook   bool
}

// ID returns the operation ID, or the path (webhook name) when the
// operation has none.
func (o PathItemOperation) ID() string {
	if o.Operation.OperationID != "" {
		return o.Operation.OperationID
	}
	return o.Path
}

// Title returns the operation summary, falling back to the operation ID and
// finally to "<METHOD> <path>".
func (o PathItemOperation) Title() string {
	switch {
	case o.Operation.Summary != "":
		return o.Operation.Summary
	case o.Operation.OperationID != "":
		return o.Operation.OperationID
	default:
		return strings.ToUpper(o.Method) + " " + o.Path
	}
}

// Parameters returns the path-level parameters merged with the operation
// parameters. An operation parameter overrides a path-level one with the
// same name and location.
//
// See: https://spec.openapis.org/oas/v3.1.0#fixed-fields-7 (parameters)
func (o PathItemOperation) Parameters() []*Parameter {
	var out []*Parameter
	seen := make(map[string]bool)

	for _, p := range o.Operation.Parameters {
		if p == nil {
			continue
		}
		seen[p.In+"\x00"+p.Name] = true
		out = append(out, p)
	}

	var inherited []*Parameter
	if o.PathItem != nil {
		for _, p := range o.PathItem.Parameters {
			if p == nil || seen[p.In+"\x00"+p.Name] {
				continue
			}
			inherited = append(inherited, p)
		}
	}

	return append(inherited, out...)
}

// Operation returns the operation registered for method (lowercase), or nil.
func (p *PathItem) Operation(method string) *Operation {
	switch method {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	}
	return nil
}

// SetOperation assigns op to the field matching method (lowercase).
// Unknown methods are ignored.
func (p *PathItem) SetOperation(method string, op *Operation) {
	switch method {
	case "get":
		p.Get = op
	case "put":
		p.Put = op
	case "post":
		p.Post = op
	case "delete":
		p.Delete = op
	case "options":
		p.Options = op
	case "head":
		p.Head = op
	case "patch":
		p.Patch = op
	case "trace":
		p.Trace = op
	}
}

// Operations returns every operation under paths in document order: paths
// in declaration order, then methods in Methods order.
func (d *Document) Operations() []PathItemOperation {
	return collectOperations(d.Paths, false)
}

// WebhookOperations returns every webhook operation in document order.
// Swagger 2.0 documents have no webhooks.
func (d *Document) WebhookOperations() []PathItemOperation {
	return collectOperations(d.Webhooks, true)
}

func collectOperations(paths Paths, webhook bool) []PathItemOperation {
	var ops []PathItemOperation
	for path, item := range paths.All() {
		if item == nil {
			continue
		}
		for _, method := range Methods {
			op := item.Operation(method)
			if op == nil {
				continue
			}
			ops = append(ops, PathItemOperation{
				Method:    method,
				Path:      path,
				PathItem:  item,
				Operation: op,
				Webhook:   webhook,
			})
		}
	}
	return ops
}
