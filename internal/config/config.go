// Package config loads and validates the pipeline configuration: which
// content types to index, relevance parameters, and the language policy.
// Configuration arrives either as a YAML file (CLI use) or as a raw JSON
// options object handed over by the site generator; the latter is checked
// against a JSON Schema before decoding.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/statichq/sitesearch/internal/analysis"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Languages accepts either a single language code or a list of codes in both
// YAML and JSON.
type Languages []string

func (l *Languages) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var code string
		if err := value.Decode(&code); err != nil {
			return err
		}
		*l = Languages{code}
		return nil
	}
	var codes []string
	if err := value.Decode(&codes); err != nil {
		return err
	}
	*l = codes
	return nil
}

func (l *Languages) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err == nil {
		*l = Languages{code}
		return nil
	}
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	*l = codes
	return nil
}

// Config is the full tunable surface of the pipeline.
type Config struct {
	IndexDocs                   bool      `yaml:"indexDocs" json:"indexDocs"`
	IndexBlog                   bool      `yaml:"indexBlog" json:"indexBlog"`
	IndexPages                  bool      `yaml:"indexPages" json:"indexPages"`
	DocSidebarParentCategories  int       `yaml:"indexDocSidebarParentCategories" json:"indexDocSidebarParentCategories"`
	ParentCategoriesInPageTitle bool      `yaml:"includeParentCategoriesInPageTitle" json:"includeParentCategoriesInPageTitle"`
	Language                    Languages `yaml:"language" json:"language"`
	K1                          float64   `yaml:"k1" json:"k1"`
	B                           float64   `yaml:"b" json:"b"`
	TitleBoost                  float64   `yaml:"titleBoost" json:"titleBoost"`
	ContentBoost                float64   `yaml:"contentBoost" json:"contentBoost"`
	TagsBoost                   float64   `yaml:"tagsBoost" json:"tagsBoost"`
	ParentCategoriesBoost       float64   `yaml:"parentCategoriesBoost" json:"parentCategoriesBoost"`
	MaxSearchResults            int       `yaml:"maxSearchResults" json:"maxSearchResults"`
	Separator                   string    `yaml:"separator" json:"separator"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		IndexDocs:             true,
		IndexBlog:             true,
		IndexPages:            false,
		Language:              Languages{"en"},
		K1:                    1.2,
		B:                     0.75,
		TitleBoost:            5,
		ContentBoost:          1,
		TagsBoost:             3,
		ParentCategoriesBoost: 2,
		MaxSearchResults:      8,
	}
}

// Load reads a YAML configuration file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptionsJSON decodes a raw options object from the generator. The
// payload is validated against the embedded JSON Schema first, so type and
// range mistakes surface with a path into the offending option.
func LoadOptionsJSON(data []byte) (*Config, error) {
	if err := ValidateOptionsSchema(data); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate applies the semantic rules the schema cannot express.
func (c *Config) Validate() error {
	if c.K1 < 0 {
		return fmt.Errorf("%w: k1 must be >= 0, got %v", ErrInvalidConfig, c.K1)
	}
	if c.B < 0 || c.B > 1 {
		return fmt.Errorf("%w: b must be in [0,1], got %v", ErrInvalidConfig, c.B)
	}
	boosts := map[string]float64{
		"titleBoost":            c.TitleBoost,
		"contentBoost":          c.ContentBoost,
		"tagsBoost":             c.TagsBoost,
		"parentCategoriesBoost": c.ParentCategoriesBoost,
	}
	for name, v := range boosts {
		if v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, v)
		}
	}
	if c.MaxSearchResults < 1 {
		return fmt.Errorf("%w: maxSearchResults must be >= 1, got %d", ErrInvalidConfig, c.MaxSearchResults)
	}
	if c.DocSidebarParentCategories < 0 {
		return fmt.Errorf("%w: indexDocSidebarParentCategories must be >= 0, got %d", ErrInvalidConfig, c.DocSidebarParentCategories)
	}
	if err := analysis.Validate(c.Language, c.Separator); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ClientConfig is the explicit configuration object echoed to the consuming
// search widget: the relevance knobs it needs to score with, the result cap,
// and the path-filtering mode.
type ClientConfig struct {
	TitleBoost            float64  `json:"titleBoost"`
	ContentBoost          float64  `json:"contentBoost"`
	TagsBoost             float64  `json:"tagsBoost"`
	ParentCategoriesBoost float64  `json:"parentCategoriesBoost"`
	MaxSearchResults      int      `json:"maxSearchResults"`
	IndexDocs             bool     `json:"indexDocs"`
	IndexBlog             bool     `json:"indexBlog"`
	IndexPages            bool     `json:"indexPages"`
	Language              []string `json:"language"`
}

func (c *Config) Client() ClientConfig {
	return ClientConfig{
		TitleBoost:            c.TitleBoost,
		ContentBoost:          c.ContentBoost,
		TagsBoost:             c.TagsBoost,
		ParentCategoriesBoost: c.ParentCategoriesBoost,
		MaxSearchResults:      c.MaxSearchResults,
		IndexDocs:             c.IndexDocs,
		IndexBlog:             c.IndexBlog,
		IndexPages:            c.IndexPages,
		Language:              c.Language,
	}
}
