package extract

import (
	"bytes"

	"golang.org/x/net/html"
)

// DefaultPartitionTag is used when a page declares no partition at all.
const DefaultPartitionTag = "default"

// PartitionTag extracts the partition key a page belongs to. Themes can set
// it explicitly with <meta name="search-partition">; otherwise the document
// language attribute is used, and failing that every page lands in the
// default partition.
func PartitionTag(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return DefaultPartitionTag
	}
	if tag := metaContent(doc, "search-partition"); tag != "" {
		return tag
	}
	if root := findElement(doc, "html"); root != nil {
		if lang := attr(root, "lang"); lang != "" {
			return lang
		}
	}
	return DefaultPartitionTag
}
