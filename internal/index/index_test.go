package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statichq/sitesearch/internal/analysis"
	"github.com/statichq/sitesearch/internal/index"
)

func testParams(titleBoost float64) index.Params {
	return index.Params{
		K1: 1.2,
		B:  0.75,
		Fields: []index.Field{
			{Name: index.FieldTitle, Boost: titleBoost},
			{Name: index.FieldContent, Boost: 1},
		},
	}
}

func buildIndex(t *testing.T, titleBoost float64) *index.Index {
	t.Helper()
	az, err := analysis.ForLanguages([]string{"zh"}, "")
	require.NoError(t, err)

	b := index.NewBuilder(testParams(titleBoost), az)
	require.NoError(t, b.Add("1", map[string]string{
		index.FieldTitle:   "install guide",
		index.FieldContent: "short text",
	}))
	require.NoError(t, b.Add("2", map[string]string{
		index.FieldTitle:   "other page",
		index.FieldContent: "install install everywhere install notes",
	}))
	return b.Build()
}

func TestSearchFieldBoost(t *testing.T) {
	// A strong title boost ranks the title match above the repeated
	// content match; a weak one inverts the order.
	strong := buildIndex(t, 5).Search("install", 0)
	require.Len(t, strong, 2)
	assert.Equal(t, "1", strong[0].Ref)

	weak := buildIndex(t, 0.5).Search("install", 0)
	require.Len(t, weak, 2)
	assert.Equal(t, "2", weak[0].Ref)
}

func TestSearchLimitAndMiss(t *testing.T) {
	idx := buildIndex(t, 5)

	assert.Len(t, idx.Search("install", 1), 1)
	assert.Empty(t, idx.Search("nonexistent", 0))
}

func TestSearchAccumulatesAcrossTerms(t *testing.T) {
	idx := buildIndex(t, 1)

	single := idx.Search("guide", 0)
	require.Len(t, single, 1)

	both := idx.Search("guide text", 0)
	require.Len(t, both, 1)
	assert.Equal(t, "1", both[0].Ref)
	assert.Greater(t, both[0].Score, single[0].Score)
}

func TestAddDuplicateRef(t *testing.T) {
	az, err := analysis.ForLanguages([]string{"zh"}, "")
	require.NoError(t, err)

	b := index.NewBuilder(testParams(1), az)
	require.NoError(t, b.Add("1", map[string]string{index.FieldTitle: "a"}))
	err = b.Add("1", map[string]string{index.FieldTitle: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"1"`)
}

func TestEmptyIndex(t *testing.T) {
	az, err := analysis.ForLanguages([]string{"en"}, "")
	require.NoError(t, err)

	idx := index.NewBuilder(testParams(1), az).Build()
	assert.Zero(t, idx.DocCount())
	assert.Nil(t, idx.Search("anything", 0))

	exported := idx.Export()
	assert.Equal(t, index.ExportVersion, exported.Version)
	assert.Empty(t, exported.Refs)
	assert.Zero(t, exported.AvgFieldLengths[index.FieldTitle])
}

func TestExportReferentialIntegrity(t *testing.T) {
	idx := buildIndex(t, 5)
	exported := idx.Export()

	assert.Equal(t, index.ExportVersion, exported.Version)
	assert.Equal(t, 1.2, exported.K1)
	assert.Equal(t, 0.75, exported.B)
	assert.Equal(t, []string{"1", "2"}, exported.Refs)

	known := make(map[string]bool)
	for _, ref := range exported.Refs {
		known[ref] = true
	}
	for term, byField := range exported.InvertedIndex {
		for field, byRef := range byField {
			for ref := range byRef {
				assert.True(t, known[ref], "term %q field %q references unknown doc %q", term, field, ref)
			}
		}
	}
	for field, byRef := range exported.FieldLengths {
		for ref := range byRef {
			assert.True(t, known[ref], "field %q length entry for unknown doc %q", field, ref)
		}
	}

	assert.Equal(t, 2, exported.FieldLengths[index.FieldTitle]["1"])
	assert.Equal(t, 5, exported.FieldLengths[index.FieldContent]["2"])
	assert.InDelta(t, 2.0, exported.AvgFieldLengths[index.FieldTitle], 1e-9)
	assert.InDelta(t, 3.5, exported.AvgFieldLengths[index.FieldContent], 1e-9)
	assert.Equal(t, 3, exported.InvertedIndex["install"][index.FieldContent]["2"])
}

func TestAncestorField(t *testing.T) {
	tests := []struct {
		name      string
		ancestors []string
		depth     int
		want      string
	}{
		{"leaf first truncated", []string{"Guides", "Setup", "Install"}, 2, "Install Setup"},
		{"depth covers all", []string{"Guides", "Setup"}, 5, "Setup Guides"},
		{"depth zero disables", []string{"Guides"}, 0, ""},
		{"no ancestors", nil, 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, index.AncestorField(tt.ancestors, tt.depth))
		})
	}
}
