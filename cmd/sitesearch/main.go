// Command sitesearch builds client-side search artifacts from a rendered
// static site. The generator hands over a build manifest after rendering;
// sitesearch classifies the produced routes, extracts section documents,
// and writes one search-index-<tag>.json per partition.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/statichq/sitesearch/internal/config"
	"github.com/statichq/sitesearch/internal/manifest"
	"github.com/statichq/sitesearch/internal/pipeline"
)

var cli struct {
	Config   string           `short:"c" help:"Pipeline configuration file (YAML). Defaults apply when the file does not exist." default:"sitesearch.yaml"`
	Manifest string           `short:"m" help:"Build manifest written by the site generator (JSON)." required:""`
	Version  kong.VersionFlag `help:"Print version and exit."`
}

const version = "1.3.0"

func main() {
	kong.Parse(&cli,
		kong.Name("sitesearch"),
		kong.Description("Build full-text search artifacts for a statically generated site."),
		kong.Vars{"version": version},
	)

	log.SetOutput(os.Stderr)
	start := time.Now()

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	m, err := manifest.Load(cli.Manifest)
	if err != nil {
		log.Fatalf("Manifest error: %v", err)
	}

	log.Printf("sitesearch v%s", version)
	log.Printf("Indexing %d routes from %s (languages: %v)", len(m.Routes), m.OutDir, cfg.Language)

	stats, err := pipeline.Run(context.Background(), cfg, m)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	log.Printf("✓ Indexed %d documents from %d routes (%d skipped) in %v",
		stats.Documents, stats.Indexable, stats.Routes-stats.Indexable, elapsed)
	log.Printf("✓ Wrote %d partition artifact(s) to %s:", stats.Partitions, m.OutDir)
	for _, name := range stats.Artifacts {
		log.Printf("    %s", name)
	}
}

// loadConfig reads the YAML configuration, falling back to defaults when the
// default config path simply does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("No configuration file at %s, using defaults", path)
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}
