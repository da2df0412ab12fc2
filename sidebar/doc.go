// Package sidebar turns OpenAPI documents into documentation navigation.
//
// A Schema pairs a validated Config with a loaded document. BuildGroup turns
// it into a Group whose entries are, in order:
//
//   - an "Overview" Link to the base link of the schema,
//   - one Group per operation tag (see CollectOperations for ordering),
//   - a "Webhooks" Group when the document declares webhooks.
//
// For example, a document titled "Petstore" with a single getPets operation
// and the base "/api/petstore/" yields:
//
//	Group{Label: "Petstore", Collapsed: true, Entries: []Entry{
//	    Link{Label: "Overview", Href: "api/petstore"},
//	    Group{Label: "Operations", Collapsed: true, Entries: []Entry{
//	        Link{Label: "getPets", Href: "api/petstore/get-pets"},
//	    }},
//	}}
//
// Building is pure: no I/O, no logging, and repeated calls with equal input
// return equal trees.
//
// # Configuration
//
// Configuration read from files goes through ParseConfig, which validates
// the raw object against an embedded JSON Schema, applies defaults and
// normalizes the base path:
//
//	cfg, err := sidebar.ParseConfig(map[string]any{
//	    "schema": "petstore.yaml",
//	    "base":   "/api/petstore/",
//	})
//	// cfg.Base == "api/petstore", cfg.Collapsed == true
//
// Code can use NewConfig with options instead, including a TitleFunc that
// controls operation links:
//
//	cfg, err := sidebar.NewConfig("petstore.yaml", "api/petstore",
//	    sidebar.WithOperationTitle(func(op openapi.PathItemOperation) sidebar.Link {
//	        return sidebar.Link{Label: strings.ToUpper(op.Method) + " " + op.Path}
//	    }),
//	)
//
// Validation failures are reported as *ConfigError, which wraps
// ErrInvalidConfig and lists every invalid field.
package sidebar
