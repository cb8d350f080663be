// Package partition groups assembled documents by their partition tag.
// Partitions are independent after grouping: each one gets its own index and
// artifact, built with no shared state.
package partition

import (
	"sort"

	"github.com/statichq/sitesearch/internal/assemble"
)

// ByTag groups documents by partition tag. Input order is preserved within
// each group; every document lands in exactly one group. Empty input yields
// an empty map.
func ByTag(docs []assemble.Document) map[string][]assemble.Document {
	groups := make(map[string][]assemble.Document)
	for _, d := range docs {
		groups[d.PartitionTag] = append(groups[d.PartitionTag], d)
	}
	return groups
}

// Tags returns the partition tags in sorted order, for deterministic logging
// and iteration.
func Tags(groups map[string][]assemble.Document) []string {
	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
