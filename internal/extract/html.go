// Package extract turns rendered HTML pages into searchable sections. It
// implements the two extraction contracts of the pipeline: page-to-sections
// and page-to-partition-tag.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/statichq/sitesearch/internal/manifest"
)

// Section is one unit of indexable text within a page. Hash is the in-page
// anchor (empty for the leading section), Content is plain text with all
// markup stripped.
type Section struct {
	Hash    string
	Title   string
	Content string
	Tags    []string
}

// Page is the extraction result for one rendered HTML file.
type Page struct {
	Title     string
	Sections  []Section
	Ancestors []string // sidebar category chain, root to leaf; docs pages only
}

// skipElements never contribute text to a section.
var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "header": true, "footer": true, "aside": true,
}

// ParsePage extracts the page title, its sections split at h2/h3 headings,
// and (for docs pages) the ancestor category path.
func ParsePage(data []byte, ct manifest.ContentType) (*Page, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &Page{
		Title: headTitle(doc),
	}
	tags := metaList(doc, "keywords", ",")
	if ct == manifest.TypeDocs {
		page.Ancestors = ancestorPath(doc)
	}

	root := findElement(doc, "main")
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		return page, nil
	}

	sc := &sectionCollector{pageTitle: page.Title}
	sc.walk(root)
	sc.flush()
	if sc.pageTitle != "" && page.Title == "" {
		page.Title = sc.pageTitle
	}
	for i := range sc.sections {
		sc.sections[i].Tags = tags
	}
	page.Sections = sc.sections
	return page, nil
}

// sectionCollector accumulates text between headings. An h1 names the page
// and the leading section; every h2/h3 starts a fresh section anchored at the
// heading's id.
type sectionCollector struct {
	pageTitle string
	sections  []Section
	current   Section
	buf       strings.Builder
}

func (sc *sectionCollector) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sc.buf.WriteString(n.Data)
		sc.buf.WriteByte(' ')
		return
	case html.ElementNode:
		if skipElements[n.Data] {
			return
		}
		switch n.Data {
		case "h1":
			if title := nodeText(n); title != "" && sc.pageTitle == "" {
				sc.pageTitle = title
			}
			return
		case "h2", "h3":
			sc.flush()
			sc.current = Section{
				Hash:  headingAnchor(n),
				Title: nodeText(n),
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sc.walk(c)
	}
}

// flush closes the section being accumulated. Sections with neither title nor
// content are dropped.
func (sc *sectionCollector) flush() {
	content := collapseSpace(sc.buf.String())
	sc.buf.Reset()
	s := sc.current
	s.Content = content
	sc.current = Section{}
	if s.Title == "" && s.Content == "" {
		return
	}
	if s.Title == "" {
		s.Title = sc.pageTitle
	}
	sc.sections = append(sc.sections, s)
}

// headingAnchor returns the in-page anchor for a heading: its own id, or the
// id/name of an embedded anchor element.
func headingAnchor(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return "#" + id
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "a" {
			if id := attr(c, "id"); id != "" {
				return "#" + id
			}
			if name := attr(c, "name"); name != "" {
				return "#" + name
			}
		}
	}
	return ""
}

// headTitle returns the document <title>, with any " | Site Name" suffix
// trimmed.
func headTitle(doc *html.Node) string {
	t := findElement(doc, "title")
	if t == nil {
		return ""
	}
	title := nodeText(t)
	if i := strings.Index(title, " | "); i > 0 {
		title = title[:i]
	}
	return title
}

// ancestorPath reads the sidebar category chain: an explicit
// doc-ancestors meta tag when the theme emits one, otherwise the rendered
// breadcrumb trail minus the page itself.
func ancestorPath(doc *html.Node) []string {
	if path := metaList(doc, "doc-ancestors", "/"); len(path) > 0 {
		return path
	}
	nav := findBreadcrumbNav(doc)
	if nav == nil {
		return nil
	}
	var items []string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if text := nodeText(n); text != "" {
				items = append(items, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(nav)
	if len(items) < 2 {
		return nil
	}
	return items[:len(items)-1]
}

func findBreadcrumbNav(doc *html.Node) *html.Node {
	var found *html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "nav" {
			if strings.Contains(attr(n, "class"), "breadcrumbs") ||
				strings.EqualFold(attr(n, "aria-label"), "breadcrumbs") {
				found = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return found
}

// metaList reads a <meta name=...> tag and splits its content on sep.
func metaList(doc *html.Node, name, sep string) []string {
	content := metaContent(doc, name)
	if content == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(content, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func metaContent(doc *html.Node, name string) string {
	var found string
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" && attr(n, "name") == name {
			found = attr(n, "content")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return found
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the concatenated, whitespace-collapsed text of a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return collapseSpace(b.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
