// Package pages renders the reference pages a sidebar points at.
//
// A Site is built from the same schemas as the sidebar and indexes one
// page per sidebar link: the Overview page of every schema and one page per
// operation or webhook. Pages are keyed by the link href, so a link and its
// page cannot disagree:
//
//	site, err := pages.Build(schemas)
//	if err != nil {
//		return err
//	}
//	err = site.Render(w, "api/petstore/get-pets")
//
// Descriptions are CommonMark (with GitHub extensions) rendered by goldmark.
// Raw HTML inside descriptions is dropped.
package pages
