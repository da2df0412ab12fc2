package pages

import (
	"strings"

	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/vitalvas/oasnav/openapi"
	"github.com/vitalvas/oasnav/sidebar"
)

const stylesheet = `
body { margin: 0; display: flex; font-family: system-ui, sans-serif; color: #1f2328; }
nav.sidebar { width: 18rem; min-height: 100vh; padding: 1rem; background: #f6f8fa; border-right: 1px solid #d0d7de; box-sizing: border-box; }
nav.sidebar ul { list-style: none; margin: 0; padding-left: 0.75rem; }
nav.sidebar a { display: block; padding: 0.15rem 0; color: inherit; text-decoration: none; }
nav.sidebar a.active { font-weight: 600; color: #0969da; }
nav.sidebar summary { cursor: pointer; font-weight: 600; padding: 0.25rem 0; }
main { flex: 1; padding: 2rem 3rem; max-width: 60rem; }
.method { display: inline-block; padding: 0.1rem 0.5rem; border-radius: 4px; background: #0969da; color: #fff; font-size: 0.8rem; font-weight: 600; }
.method-delete { background: #cf222e; }
.method-post { background: #1a7f37; }
.method-put, .method-patch { background: #9a6700; }
.deprecated { color: #cf222e; font-weight: 600; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem; border-bottom: 1px solid #d0d7de; vertical-align: top; }
`

func layout(p *Page, groups []sidebar.Group) g.Node {
	nav := make([]g.Node, 0, len(groups))
	for _, group := range groups {
		nav = append(nav, navEntry(group, p.Href))
	}

	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Text(p.Title)),
				html.StyleEl(g.Raw(stylesheet)),
			),
			html.Body(
				html.Nav(html.Class("sidebar"), g.Group(nav)),
				html.Main(p.content),
			),
		),
	)
}

func navEntry(entry sidebar.Entry, current string) g.Node {
	switch e := entry.(type) {
	case sidebar.Link:
		return html.A(
			html.Href("/"+e.Href),
			g.If(e.Href == current, html.Class("active")),
			g.If(e.Href == current, g.Attr("aria-current", "page")),
			g.Text(e.Label),
		)
	case sidebar.Group:
		items := make([]g.Node, 0, len(e.Entries))
		for _, child := range e.Entries {
			items = append(items, html.Li(navEntry(child, current)))
		}
		return g.El("details",
			g.If(!e.Collapsed || containsHref(e, current), g.Attr("open")),
			g.El("summary", g.Text(e.Label)),
			html.Ul(g.Group(items)),
		)
	default:
		return g.Group(nil)
	}
}

func containsHref(group sidebar.Group, href string) bool {
	for _, l := range group.Links() {
		if l.Href == href {
			return true
		}
	}
	return false
}

func overviewContent(schema sidebar.Schema) (g.Node, error) {
	doc := schema.Document
	if doc == nil {
		return nil, sidebar.ErrNoDocument
	}

	description, err := Markdown(doc.Info.Description)
	if err != nil {
		return nil, err
	}

	tagRows := make([]g.Node, 0, len(doc.Tags))
	for _, tag := range doc.Tags {
		desc, err := Markdown(tag.Description)
		if err != nil {
			return nil, err
		}
		tagRows = append(tagRows, html.Tr(html.Td(g.Text(tag.Name)), html.Td(desc)))
	}

	servers := serverURLs(doc)
	serverItems := make([]g.Node, 0, len(servers))
	for _, s := range servers {
		serverItems = append(serverItems, html.Li(html.Code(g.Text(s))))
	}

	version := "OpenAPI " + doc.Version()
	if doc.IsSwagger() {
		version = "Swagger " + doc.Version()
	}

	return g.Group([]g.Node{
		html.H1(g.Text(schema.Label())),
		html.P(
			g.If(doc.Info.Version != "", html.Span(g.Text("Version "+doc.Info.Version+" · "))),
			html.Span(g.Text(version)),
		),
		g.If(doc.Info.Summary != "", html.P(g.Text(doc.Info.Summary))),
		description,
		g.If(len(serverItems) > 0, g.Group([]g.Node{
			html.H2(g.Text("Servers")),
			html.Ul(g.Group(serverItems)),
		})),
		g.If(len(tagRows) > 0, g.Group([]g.Node{
			html.H2(g.Text("Tags")),
			html.Table(html.TBody(g.Group(tagRows))),
		})),
		g.If(doc.Info.License != nil, html.P(g.Text("License: "+licenseName(doc.Info.License)))),
	}), nil
}

func serverURLs(doc *openapi.Document) []string {
	if doc.IsSwagger() {
		if doc.Host == "" {
			return nil
		}
		return []string{doc.Host + doc.BasePath}
	}

	out := make([]string, 0, len(doc.Servers))
	for _, s := range doc.Servers {
		out = append(out, s.URL)
	}
	return out
}

func licenseName(l *openapi.License) string {
	if l == nil {
		return ""
	}
	return l.Name
}

func operationContent(title string, op openapi.PathItemOperation) (g.Node, error) {
	description, err := Markdown(op.Operation.Description)
	if err != nil {
		return nil, err
	}

	params, err := parametersTable(op.Parameters())
	if err != nil {
		return nil, err
	}

	body, err := requestBody(op.Operation.RequestBody)
	if err != nil {
		return nil, err
	}

	responses, err := responsesTable(op.Operation)
	if err != nil {
		return nil, err
	}

	location := html.Code(g.Text(op.Path))
	if op.Webhook {
		location = html.Span(g.Text(op.Path))
	}

	return g.Group([]g.Node{
		html.H1(g.Text(title)),
		html.P(
			html.Span(html.Class("method method-"+op.Method), g.Text(strings.ToUpper(op.Method))),
			g.Text(" "),
			location,
		),
		g.If(op.Operation.Deprecated, html.P(html.Class("deprecated"), g.Text("Deprecated"))),
		description,
		params,
		body,
		responses,
	}), nil
}

func parametersTable(params []*openapi.Parameter) (g.Node, error) {
	if len(params) == 0 {
		return g.Group(nil), nil
	}

	rows := make([]g.Node, 0, len(params))
	for _, p := range params {
		desc, err := Markdown(p.Description)
		if err != nil {
			return nil, err
		}

		typeName := p.Schema.TypeName()
		if typeName == "" {
			typeName = p.Type
		}

		required := ""
		if p.Required {
			required = "required"
		}

		rows = append(rows, html.Tr(
			html.Td(html.Code(g.Text(p.Name))),
			html.Td(g.Text(p.In)),
			html.Td(g.Text(typeName)),
			html.Td(g.Text(required)),
			html.Td(desc),
		))
	}

	return g.Group([]g.Node{
		html.H2(g.Text("Parameters")),
		html.Table(
			html.THead(html.Tr(
				html.Th(g.Text("Name")),
				html.Th(g.Text("In")),
				html.Th(g.Text("Type")),
				html.Th(),
				html.Th(g.Text("Description")),
			)),
			html.TBody(g.Group(rows)),
		),
	}), nil
}

func requestBody(body *openapi.RequestBody) (g.Node, error) {
	if body == nil {
		return g.Group(nil), nil
	}

	desc, err := Markdown(body.Description)
	if err != nil {
		return nil, err
	}

	items := make([]g.Node, 0, body.Content.Len())
	for mediaType, mt := range body.Content.All() {
		items = append(items, html.Li(html.Code(g.Text(mediaType)), g.Text(" "+mediaSchema(mt))))
	}

	return g.Group([]g.Node{
		html.H2(g.Text("Request body")),
		g.If(body.Required, html.P(g.Text("Required"))),
		desc,
		g.If(len(items) > 0, html.Ul(g.Group(items))),
	}), nil
}

func responsesTable(op *openapi.Operation) (g.Node, error) {
	if op.Responses.Len() == 0 {
		return g.Group(nil), nil
	}

	rows := make([]g.Node, 0, op.Responses.Len())
	for code, resp := range op.Responses.All() {
		if resp == nil {
			continue
		}

		desc, err := Markdown(resp.Description)
		if err != nil {
			return nil, err
		}

		var content []string
		for mediaType, mt := range resp.Content.All() {
			content = append(content, strings.TrimSpace(mediaType+" "+mediaSchema(mt)))
		}
		if resp.Schema != nil {
			content = append(content, resp.Schema.TypeName())
		}

		rows = append(rows, html.Tr(
			html.Td(html.Code(g.Text(code))),
			html.Td(desc),
			html.Td(g.Text(strings.Join(content, ", "))),
		))
	}

	return g.Group([]g.Node{
		html.H2(g.Text("Responses")),
		html.Table(
			html.THead(html.Tr(
				html.Th(g.Text("Status")),
				html.Th(g.Text("Description")),
				html.Th(g.Text("Content")),
			)),
			html.TBody(g.Group(rows)),
		),
	}), nil
}

func mediaSchema(mt *openapi.MediaType) string {
	if mt == nil {
		return ""
	}
	return mt.Schema.TypeName()
}
