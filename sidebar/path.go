package sidebar

import (
	"strings"
	"unicode"
)

// StripLeadingAndTrailingSlashes removes every leading and trailing "/"
// ("/api/petstore/" -> "api/petstore").
func StripLeadingAndTrailingSlashes(s string) string {
	return strings.Trim(s, "/")
}

// BaseLink returns the root path of the documentation generated for cfg.
// Every other link of the schema lives below it.
func BaseLink(cfg Config) string {
	return cfg.Base
}

// joinHref joins non-empty path segments with "/".
func joinHref(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = StripLeadingAndTrailingSlashes(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Slug converts s into a lowercase, dash separated URL segment. Word
// boundaries are runs of non-alphanumeric characters and camelCase humps:
//
//	"getPets"             -> "get-pets"
//	"listHTTPServers"     -> "list-http-servers"
//	"get /pets/{petId}"   -> "get-pets-pet-id"
func Slug(s string) string {
	runes := []rune(s)

	var b strings.Builder
	pendingDash := false

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingDash = true
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				pendingDash = true
			}
		}

		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
