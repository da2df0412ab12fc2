// Package openapi reads OpenAPI v3.x and Swagger 2.0 documents into a typed,
// order-preserving object model used to build navigation and reference pages.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://swagger.io/specification/v2/
//
// # Loading
//
// Load accepts a file path or an http(s) URL. JSON and YAML are decoded by the
// same YAML parser, so the format is never sniffed:
//
//	doc, err := openapi.Load(ctx, "petstore.yaml", openapi.DefaultLoadOptions())
//	if err != nil {
//	    return err
//	}
//
// Remote documents are fetched with retries for network errors, 5xx and 429
// responses. Each attempt is bounded by LoadOptions.Timeout and the whole
// fetch by the caller's context. A document larger than LoadOptions.MaxSize
// fails with ErrFetch.
//
// Options coming from a configuration file arrive as a loosely typed map and
// are decoded with DecodeLoadOptions:
//
//	opts, err := openapi.DecodeLoadOptions(map[string]any{
//	    "timeout": "5s",
//	    "headers": map[string]any{"Authorization": "Bearer token"},
//	})
//
// # Ordering
//
// Paths, webhooks, responses, media types and schema properties are held in
// an OrderedMap, so iteration follows the order of the source document:
//
//	for path, item := range doc.Paths.All() {
//	    fmt.Println(path, item.Summary)
//	}
//
// Operations and WebhookOperations flatten path items into a list of
// PathItemOperation values, paths first and then methods in Methods order
// (get, put, post, delete, options, head, patch, trace).
//
// # References
//
// With LoadOptions.Resolve (the default) local references such as
// "#/components/pathItems/Pets" or "#/components/parameters/Limit" are
// replaced by their targets before decoding. References to schemas
// ("#/components/schemas/..." and Swagger "#/definitions/...") are kept as
// Schema.Ref so recursive schemas stay finite. A missing target or a cycle
// fails with ErrUnresolvedRef.
package openapi
