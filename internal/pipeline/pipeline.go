// Package pipeline wires the build steps together: classify routes, assemble
// section documents, partition by tag, then build and serialize one index
// per partition. It runs once per site build and either completes or fails
// fatally; there is no partial-success mode.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/statichq/sitesearch/internal/analysis"
	"github.com/statichq/sitesearch/internal/artifact"
	"github.com/statichq/sitesearch/internal/assemble"
	"github.com/statichq/sitesearch/internal/config"
	"github.com/statichq/sitesearch/internal/index"
	"github.com/statichq/sitesearch/internal/manifest"
	"github.com/statichq/sitesearch/internal/partition"
	"github.com/statichq/sitesearch/internal/route"
)

// Stats summarizes one pipeline run for operator logging.
type Stats struct {
	Routes     int
	Indexable  int
	Documents  int
	Partitions int
	Artifacts  []string
}

// Run executes the full pipeline against a build manifest. Partition builds
// fan out concurrently once grouping is done; a failure in any partition
// aborts the run, but already-written artifacts are not rolled back.
func Run(ctx context.Context, cfg *config.Config, m *manifest.Manifest) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkPlugins(cfg, m); err != nil {
		return nil, err
	}

	enabled := route.Enabled{Docs: cfg.IndexDocs, Blog: cfg.IndexBlog, Pages: cfg.IndexPages}
	classified, err := route.NewClassifier(m, enabled).Classify(m.Routes)
	if err != nil {
		return nil, err
	}

	docs, err := assemble.New(m.OutDir, m.DirectoryRouting).Assemble(ctx, classified)
	if err != nil {
		return nil, err
	}

	groups := partition.ByTag(docs)
	tags := partition.Tags(groups)
	fields := indexFields(cfg)

	g, ctx := errgroup.WithContext(ctx)
	for _, tag := range tags {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return buildPartition(cfg, m.OutDir, tag, groups[tag], fields)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := artifact.WriteClientConfig(m.OutDir, cfg.Client()); err != nil {
		return nil, err
	}

	stats := &Stats{
		Routes:     len(m.Routes),
		Indexable:  len(classified),
		Documents:  len(docs),
		Partitions: len(tags),
	}
	for _, tag := range tags {
		stats.Artifacts = append(stats.Artifacts, artifact.FileName(tag))
	}
	return stats, nil
}

// buildPartition constructs and serializes one partition's index. Each
// invocation gets its own analyzer value; nothing is shared across
// partitions.
func buildPartition(cfg *config.Config, outDir, tag string, docs []assemble.Document, fields []index.Field) error {
	analyzer, err := analysis.ForLanguages(cfg.Language, cfg.Separator)
	if err != nil {
		return err
	}

	builder := index.NewBuilder(index.Params{K1: cfg.K1, B: cfg.B, Fields: fields}, analyzer)
	summaries := make([]artifact.Summary, 0, len(docs))
	for _, d := range docs {
		if err := builder.Add(strconv.Itoa(d.ID), documentFields(cfg, d)); err != nil {
			return fmt.Errorf("partition %q: %w", tag, err)
		}
		summaries = append(summaries, artifact.Summarize(d, cfg.ParentCategoriesInPageTitle))
	}

	return artifact.Write(outDir, tag, &artifact.Artifact{
		Documents: summaries,
		Index:     builder.Build().Export(),
	})
}

// indexFields is the configured field set with boosts. The ancestors field
// exists only when ancestor-category indexing is enabled.
func indexFields(cfg *config.Config) []index.Field {
	fields := []index.Field{
		{Name: index.FieldTitle, Boost: cfg.TitleBoost},
		{Name: index.FieldContent, Boost: cfg.ContentBoost},
		{Name: index.FieldTags, Boost: cfg.TagsBoost},
	}
	if cfg.DocSidebarParentCategories > 0 {
		fields = append(fields, index.Field{Name: index.FieldAncestors, Boost: cfg.ParentCategoriesBoost})
	}
	return fields
}

func documentFields(cfg *config.Config, d assemble.Document) map[string]string {
	fields := map[string]string{
		index.FieldTitle:   d.SectionTitle,
		index.FieldContent: d.SectionContent,
		index.FieldTags:    strings.Join(d.SectionTags, " "),
	}
	if cfg.DocSidebarParentCategories > 0 {
		fields[index.FieldAncestors] = index.AncestorField(d.Ancestors, cfg.DocSidebarParentCategories)
	}
	return fields
}

// checkPlugins rejects a configuration that enables a content type the
// manifest has no plugin instance for.
func checkPlugins(cfg *config.Config, m *manifest.Manifest) error {
	checks := []struct {
		enabled bool
		t       manifest.ContentType
		option  string
	}{
		{cfg.IndexDocs, manifest.TypeDocs, "indexDocs"},
		{cfg.IndexBlog, manifest.TypeBlog, "indexBlog"},
		{cfg.IndexPages, manifest.TypePage, "indexPages"},
	}
	for _, c := range checks {
		if c.enabled && len(m.Instances(c.t)) == 0 {
			return fmt.Errorf("%w: %s is enabled but the manifest registers no %s plugin instance",
				config.ErrInvalidConfig, c.option, c.t)
		}
	}
	return nil
}
