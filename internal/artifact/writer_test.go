package artifact_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statichq/sitesearch/internal/artifact"
	"github.com/statichq/sitesearch/internal/assemble"
	"github.com/statichq/sitesearch/internal/config"
	"github.com/statichq/sitesearch/internal/index"
	"github.com/statichq/sitesearch/internal/manifest"
)

func sampleDocument() assemble.Document {
	return assemble.Document{
		ID:           7,
		PageTitle:    "Install Guide",
		SectionRoute: "/docs/install#requirements",
		SectionTitle: "Requirements",
		Ancestors:    []string{"Guides", "Setup"},
		Type:         manifest.TypeDocs,
	}
}

func TestSummarize(t *testing.T) {
	s := artifact.Summarize(sampleDocument(), false)
	assert.Equal(t, 7, s.ID)
	assert.Equal(t, "Install Guide", s.Title)
	assert.Equal(t, "Requirements", s.SectionTitle)
	assert.Equal(t, "/docs/install#requirements", s.Route)
	assert.Equal(t, "docs", s.Type)
}

func TestSummarizeAncestorsInTitle(t *testing.T) {
	s := artifact.Summarize(sampleDocument(), true)
	assert.Equal(t, "Guides > Setup > Install Guide", s.Title)
}

func TestSummarizeOmitsRedundantSectionTitle(t *testing.T) {
	d := sampleDocument()
	d.SectionTitle = d.PageTitle

	s := artifact.Summarize(d, false)
	assert.Empty(t, s.SectionTitle)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sectionTitle")
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	in := &artifact.Artifact{
		Documents: []artifact.Summary{{ID: 1, Title: "A", Route: "/docs/a", Type: "docs"}},
		Index: &index.Exported{
			Version: index.ExportVersion,
			K1:      1.2,
			B:       0.75,
			Fields:  []index.Field{{Name: index.FieldTitle, Boost: 5}},
			Refs:    []string{"1"},
			FieldLengths: map[string]map[string]int{
				index.FieldTitle: {"1": 1},
			},
			AvgFieldLengths: map[string]float64{index.FieldTitle: 1},
			InvertedIndex: map[string]map[string]map[string]int{
				"a": {index.FieldTitle: {"1": 1}},
			},
		},
	}
	require.NoError(t, artifact.Write(dir, "en", in))

	data, err := os.ReadFile(filepath.Join(dir, artifact.FileName("en")))
	require.NoError(t, err)

	var out artifact.Artifact
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.Documents, out.Documents)
	assert.Equal(t, in.Index, out.Index)

	assert.NoFileExists(t, filepath.Join(dir, artifact.FileName("en")+".tmp"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "search-index-en.json", artifact.FileName("en"))
	assert.Equal(t, "search-index-v2.0.json", artifact.FileName("v2.0"))
}

func TestWriteClientConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	require.NoError(t, artifact.WriteClientConfig(dir, cfg.Client()))

	data, err := os.ReadFile(filepath.Join(dir, "search-config.json"))
	require.NoError(t, err)

	var echoed config.ClientConfig
	require.NoError(t, json.Unmarshal(data, &echoed))
	assert.Equal(t, cfg.Client(), echoed)
}

func TestWriteFailsOnMissingDirectory(t *testing.T) {
	err := artifact.Write(filepath.Join(t.TempDir(), "absent"), "en", &artifact.Artifact{})
	require.Error(t, err)
}
