// Package artifact serializes one search artifact per partition: the
// document summaries a widget renders plus the exported index it scores
// with.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/statichq/sitesearch/internal/assemble"
	"github.com/statichq/sitesearch/internal/config"
	"github.com/statichq/sitesearch/internal/index"
)

// Summary is the display record for one document, listed in ascending id
// order and referenced from the index by stringified id.
type Summary struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	SectionTitle string `json:"sectionTitle,omitempty"`
	Route        string `json:"route"`
	Type         string `json:"type"`
}

// Artifact is the full per-partition payload.
type Artifact struct {
	Documents []Summary       `json:"documents"`
	Index     *index.Exported `json:"index"`
}

// Summarize builds the display record for a document. When enabled, the
// ancestor category path prefixes the page title, root to leaf.
func Summarize(d assemble.Document, ancestorsInTitle bool) Summary {
	title := d.PageTitle
	if ancestorsInTitle && len(d.Ancestors) > 0 {
		title = strings.Join(d.Ancestors, " > ") + " > " + title
	}
	s := Summary{
		ID:    d.ID,
		Title: title,
		Route: d.SectionRoute,
		Type:  string(d.Type),
	}
	if d.SectionTitle != title {
		s.SectionTitle = d.SectionTitle
	}
	return s
}

// FileName returns the artifact file name for a partition tag.
func FileName(tag string) string {
	return fmt.Sprintf("search-index-%s.json", tag)
}

// Write serializes one partition's artifact into dir. The file is written to
// a temporary name and renamed into place so a crash mid-write never leaves
// a truncated artifact behind.
func Write(dir, tag string, a *Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to serialize artifact for partition %q: %w", tag, err)
	}
	return writeAtomic(filepath.Join(dir, FileName(tag)), data)
}

// WriteClientConfig writes the configuration echo consumed by the search
// widget alongside the artifacts.
func WriteClientConfig(dir string, cc config.ClientConfig) error {
	data, err := json.Marshal(cc)
	if err != nil {
		return fmt.Errorf("failed to serialize client configuration: %w", err)
	}
	return writeAtomic(filepath.Join(dir, "search-config.json"), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
