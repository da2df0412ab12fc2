package pages

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	g "maragu.dev/gomponents"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders a CommonMark description to HTML. Blank input renders
// nothing.
func Markdown(src string) (g.Node, error) {
	if strings.TrimSpace(src) == "" {
		return g.Group(nil), nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, err
	}
	return g.Raw(buf.String()), nil
}
