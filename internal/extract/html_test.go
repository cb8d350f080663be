package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statichq/sitesearch/internal/extract"
	"github.com/statichq/sitesearch/internal/manifest"
)

const docsPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Install Guide | My Site</title>
<meta name="keywords" content="setup, install">
<meta name="doc-ancestors" content="Guides / Setup">
</head>
<body>
<nav class="navbar"><a href="/">Home</a></nav>
<main>
<h1>Install Guide</h1>
<p>Download the release archive first.</p>
<h2 id="requirements">Requirements</h2>
<p>You need a recent toolchain.</p>
<script>sideEffect()</script>
<h3 id="optional-tools">Optional tools</h3>
<p>Editor plugins help.</p>
</main>
<footer>Copyright</footer>
</body>
</html>`

func TestParsePageSections(t *testing.T) {
	page, err := extract.ParsePage([]byte(docsPage), manifest.TypeDocs)
	require.NoError(t, err)

	assert.Equal(t, "Install Guide", page.Title)
	assert.Equal(t, []string{"Guides", "Setup"}, page.Ancestors)

	require.Len(t, page.Sections, 3)

	root := page.Sections[0]
	assert.Empty(t, root.Hash)
	assert.Equal(t, "Install Guide", root.Title)
	assert.Equal(t, "Download the release archive first.", root.Content)
	assert.Equal(t, []string{"setup", "install"}, root.Tags)

	req := page.Sections[1]
	assert.Equal(t, "#requirements", req.Hash)
	assert.Equal(t, "Requirements", req.Title)
	assert.Equal(t, "You need a recent toolchain.", req.Content)

	tools := page.Sections[2]
	assert.Equal(t, "#optional-tools", tools.Hash)
	assert.Equal(t, "Optional tools", tools.Title)
	assert.Equal(t, "Editor plugins help.", tools.Content)
}

func TestParsePageTitleFallsBackToHeading(t *testing.T) {
	html := `<html><body><main><h1>From Heading</h1><p>Body text.</p></main></body></html>`
	page, err := extract.ParsePage([]byte(html), manifest.TypePage)
	require.NoError(t, err)
	assert.Equal(t, "From Heading", page.Title)
	require.Len(t, page.Sections, 1)
	assert.Equal(t, "From Heading", page.Sections[0].Title)
}

func TestParsePageAncestorsFromBreadcrumbs(t *testing.T) {
	html := `<html><body>
<main>
<nav class="theme-breadcrumbs"><ul>
<li>Guides</li><li>Setup</li><li>Install</li>
</ul></nav>
<h1>Install</h1><p>Text.</p>
</main></body></html>`

	page, err := extract.ParsePage([]byte(html), manifest.TypeDocs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Guides", "Setup"}, page.Ancestors)
}

func TestParsePageNonDocsHasNoAncestors(t *testing.T) {
	page, err := extract.ParsePage([]byte(docsPage), manifest.TypeBlog)
	require.NoError(t, err)
	assert.Nil(t, page.Ancestors)
}

func TestParsePageAnchorFromEmbeddedAnchor(t *testing.T) {
	html := `<html><body><main>
<h2><a name="legacy-anchor"></a>Legacy Section</h2><p>Old style anchors.</p>
</main></body></html>`

	page, err := extract.ParsePage([]byte(html), manifest.TypePage)
	require.NoError(t, err)
	require.Len(t, page.Sections, 1)
	assert.Equal(t, "#legacy-anchor", page.Sections[0].Hash)
}

func TestParsePageEmpty(t *testing.T) {
	page, err := extract.ParsePage([]byte("<html><body></body></html>"), manifest.TypePage)
	require.NoError(t, err)
	assert.Empty(t, page.Sections)
}

func TestPartitionTag(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "explicit partition meta wins",
			html: `<html lang="en"><head><meta name="search-partition" content="v2.0"></head><body></body></html>`,
			want: "v2.0",
		},
		{
			name: "document language attribute",
			html: `<html lang="fr"><body></body></html>`,
			want: "fr",
		},
		{
			name: "no declaration falls back to default",
			html: `<html><body></body></html>`,
			want: extract.DefaultPartitionTag,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.PartitionTag([]byte(tt.html)))
		})
	}
}
