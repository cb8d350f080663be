package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statichq/sitesearch/internal/assemble"
	"github.com/statichq/sitesearch/internal/partition"
)

func doc(id int, tag string) assemble.Document {
	return assemble.Document{ID: id, PartitionTag: tag}
}

func TestByTag(t *testing.T) {
	docs := []assemble.Document{
		doc(1, "en"), doc(2, "fr"), doc(3, "en"), doc(4, "v2.0"), doc(5, "en"),
	}

	groups := partition.ByTag(docs)
	require.Len(t, groups, 3)
	assert.Equal(t, []assemble.Document{doc(1, "en"), doc(3, "en"), doc(5, "en")}, groups["en"])
	assert.Equal(t, []assemble.Document{doc(2, "fr")}, groups["fr"])
	assert.Equal(t, []assemble.Document{doc(4, "v2.0")}, groups["v2.0"])

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, len(docs), total, "every document lands in exactly one group")
}

func TestByTagEmpty(t *testing.T) {
	groups := partition.ByTag(nil)
	assert.Empty(t, groups)
	assert.Empty(t, partition.Tags(groups))
}

func TestTagsSorted(t *testing.T) {
	groups := partition.ByTag([]assemble.Document{
		doc(1, "fr"), doc(2, "default"), doc(3, "en"),
	})
	assert.Equal(t, []string{"default", "en", "fr"}, partition.Tags(groups))
}
