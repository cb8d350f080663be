// Package route classifies generator-produced routes into indexable content
// types and filters out everything a search index must never contain: the
// error page, tag-listing pages, and debug routes.
package route

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/statichq/sitesearch/internal/manifest"
)

// ErrRouteOutsideBase signals a route that does not live under the declared
// base URL. The generator contract guarantees this never happens, so hitting
// it means the caller handed us a manifest from a different build.
var ErrRouteOutsideBase = errors.New("route outside base URL")

// internalPathSegment is the generator's debug/diagnostics subtree. Pages
// under it render fine but must never be indexed.
const internalPathSegment = "__debug"

// Classified is a route labeled with its content type. Route is the
// base-URL-stripped path, URL the original absolute route.
type Classified struct {
	Route string
	URL   string
	Type  manifest.ContentType
}

// Enabled selects which content types are indexed at all.
type Enabled struct {
	Docs  bool
	Blog  bool
	Pages bool
}

// Classifier applies the manifest's plugin base paths to a route list.
type Classifier struct {
	baseURL    string
	errorRoute string
	docs       []manifest.Plugin
	blogs      []manifest.Plugin
	pages      []manifest.Plugin
	enabled    Enabled
}

func NewClassifier(m *manifest.Manifest, enabled Enabled) *Classifier {
	return &Classifier{
		baseURL:    m.BaseURL,
		errorRoute: m.ErrorRoute,
		docs:       m.Instances(manifest.TypeDocs),
		blogs:      m.Instances(manifest.TypeBlog),
		pages:      m.Instances(manifest.TypePage),
		enabled:    enabled,
	}
}

// Classify labels every route, dropping excluded ones. Order is preserved.
// A route outside the base URL aborts classification.
func (c *Classifier) Classify(routes []string) ([]Classified, error) {
	out := make([]Classified, 0, len(routes))
	for _, url := range routes {
		if !strings.HasPrefix(url, c.baseURL) {
			return nil, fmt.Errorf("%w: route %q does not start with base URL %q", ErrRouteOutsideBase, url, c.baseURL)
		}
		route := strings.TrimPrefix(url, c.baseURL)
		route = strings.Trim(route, "/")
		if route == c.errorRoute {
			continue
		}
		ct, ok := c.classifyOne(route)
		if !ok {
			continue
		}
		out = append(out, Classified{Route: route, URL: url, Type: ct})
	}
	return out, nil
}

// classifyOne applies the content type rules in priority order: docs, blog,
// then generic pages. First matching plugin instance wins.
func (c *Classifier) classifyOne(route string) (manifest.ContentType, bool) {
	if c.enabled.Docs {
		for _, p := range c.docs {
			if !HasPathPrefix(route, p.BasePath) {
				continue
			}
			if c.excludedUnder(route, p) {
				return "", false
			}
			return manifest.TypeDocs, true
		}
	}
	if c.enabled.Blog {
		for _, p := range c.blogs {
			if !HasPathPrefix(route, p.BasePath) {
				continue
			}
			// The blog listing page itself is navigation, not content.
			if route == p.BasePath || c.excludedUnder(route, p) {
				return "", false
			}
			return manifest.TypeBlog, true
		}
	}
	if c.enabled.Pages {
		for _, p := range c.pages {
			if !HasPathPrefix(route, p.BasePath) {
				continue
			}
			if HasPathPrefix(route, join(p.BasePath, internalPathSegment)) {
				return "", false
			}
			return manifest.TypePage, true
		}
	}
	return "", false
}

// excludedUnder reports whether a route that matched an instance's base path
// is nevertheless unindexable: its tag-listing subtree or the debug subtree.
func (c *Classifier) excludedUnder(route string, p manifest.Plugin) bool {
	if p.TagsPath != "" && HasPathPrefix(route, join(p.BasePath, p.TagsPath)) {
		return true
	}
	return HasPathPrefix(route, join(p.BasePath, internalPathSegment))
}

// HasPathPrefix reports whether route equals prefix or starts with prefix
// followed by a path separator. Matching is exact-segment: "docsx" does not
// match prefix "docs". An empty prefix matches every route.
func HasPathPrefix(route, prefix string) bool {
	if prefix == "" {
		return true
	}
	return route == prefix || strings.HasPrefix(route, prefix+"/")
}

func join(elem ...string) string {
	return path.Join(elem...)
}
