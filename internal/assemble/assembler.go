// Package assemble reads classified routes back from the rendered output
// directory and flattens them into numbered section documents.
package assemble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/statichq/sitesearch/internal/extract"
	"github.com/statichq/sitesearch/internal/manifest"
	"github.com/statichq/sitesearch/internal/route"
)

// defaultReadConcurrency bounds parallel HTML file reads.
const defaultReadConcurrency = 8

// Document is one indexable record: a single section of a single page,
// carrying everything the index and artifact layers need. Ids are unique and
// contiguous across the whole crawl, independent of partition.
type Document struct {
	ID             int
	PageTitle      string
	PageRoute      string
	SectionRoute   string
	SectionTitle   string
	SectionContent string
	SectionTags    []string
	PartitionTag   string
	Ancestors      []string // root to leaf
	Type           manifest.ContentType
}

// Assembler resolves routes to files and extracts their sections.
type Assembler struct {
	outDir           string
	directoryRouting bool
	concurrency      int
}

func New(outDir string, directoryRouting bool) *Assembler {
	return &Assembler{
		outDir:           outDir,
		directoryRouting: directoryRouting,
		concurrency:      defaultReadConcurrency,
	}
}

// page is the parse result for one route, kept in route order.
type page struct {
	content *extract.Page
	tag     string
}

// Assemble reads every classified route and emits one Document per extracted
// section. File reads run concurrently; ids are assigned in a second,
// sequential pass over the results in route order, so output is reproducible
// regardless of read completion order. Any unreadable file fails the run.
func (a *Assembler) Assemble(ctx context.Context, routes []route.Classified) ([]Document, error) {
	pages := make([]page, len(routes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, r := range routes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := a.FilePath(r.Route)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read rendered page for route %q: %w", r.URL, err)
			}
			content, err := extract.ParsePage(data, r.Type)
			if err != nil {
				return fmt.Errorf("failed to extract sections from %s: %w", path, err)
			}
			pages[i] = page{content: content, tag: extract.PartitionTag(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var docs []Document
	nextID := 1
	for i, r := range routes {
		p := pages[i]
		for _, s := range p.content.Sections {
			docs = append(docs, Document{
				ID:             nextID,
				PageTitle:      p.content.Title,
				PageRoute:      r.URL,
				SectionRoute:   r.URL + s.Hash,
				SectionTitle:   s.Title,
				SectionContent: s.Content,
				SectionTags:    s.Tags,
				PartitionTag:   p.tag,
				Ancestors:      p.content.Ancestors,
				Type:           r.Type,
			})
			nextID++
		}
	}
	return docs, nil
}

// FilePath maps a stripped route to the HTML file the generator wrote for it.
// Directory routing renders route/index.html, flat routing renders
// route.html; the site root is index.html in both modes.
func (a *Assembler) FilePath(r string) string {
	r = strings.Trim(r, "/")
	if r == "" {
		return filepath.Join(a.outDir, "index.html")
	}
	if strings.HasSuffix(r, ".html") {
		return filepath.Join(a.outDir, filepath.FromSlash(r))
	}
	if a.directoryRouting {
		return filepath.Join(a.outDir, filepath.FromSlash(r), "index.html")
	}
	return filepath.Join(a.outDir, filepath.FromSlash(r)+".html")
}
