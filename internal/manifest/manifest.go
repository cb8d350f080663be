// Package manifest models the hand-off file the site generator writes after
// rendering: the produced routes, the output directory layout, and the
// content plugin instances whose base paths drive route classification.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ContentType labels what kind of page a route renders.
type ContentType string

const (
	TypeDocs ContentType = "docs"
	TypeBlog ContentType = "blog"
	TypePage ContentType = "page"
)

// Plugin describes one registered content plugin instance. A site may carry
// several instances of the same type (multi-version docs, secondary blogs),
// each with its own base path.
type Plugin struct {
	Type     ContentType `json:"type"`
	BasePath string      `json:"basePath"`
	TagsPath string      `json:"tagsPath,omitempty"`
}

// Manifest is the build hand-off from the generator.
type Manifest struct {
	Routes           []string `json:"routes"`
	OutDir           string   `json:"outDir"`
	BaseURL          string   `json:"baseUrl"`
	DirectoryRouting bool     `json:"directoryRouting"`
	ErrorRoute       string   `json:"errorRoute"`
	Plugins          []Plugin `json:"plugins"`
}

// Load reads and validates a manifest JSON file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.BaseURL == "" {
		m.BaseURL = "/"
	}
	if m.ErrorRoute == "" {
		m.ErrorRoute = "404.html"
	}
}

// Validate checks the structural contract the generator guarantees.
func (m *Manifest) Validate() error {
	if m.OutDir == "" {
		return fmt.Errorf("manifest missing outDir")
	}
	if !strings.HasPrefix(m.BaseURL, "/") {
		return fmt.Errorf("base URL %q must start with /", m.BaseURL)
	}
	for _, p := range m.Plugins {
		switch p.Type {
		case TypeDocs, TypeBlog, TypePage:
		default:
			return fmt.Errorf("unknown plugin type %q", p.Type)
		}
		if strings.HasPrefix(p.BasePath, "/") || strings.HasSuffix(p.BasePath, "/") {
			return fmt.Errorf("plugin base path %q must not have leading or trailing slashes", p.BasePath)
		}
	}
	return nil
}

// Instances returns the plugin instances of the given type, preserving
// registration order. Classification tries them in this order, first match
// wins.
func (m *Manifest) Instances(t ContentType) []Plugin {
	var out []Plugin
	for _, p := range m.Plugins {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}
