// Package index builds the per-partition ranked full-text index. The
// structure is a field-aware inverted index with BM25 parameters and
// query-time field boosts, designed to serialize into a compact JSON form a
// client-side widget can load directly.
package index

import (
	"fmt"
	"sort"

	"github.com/blevesearch/bleve/v2/analysis"
)

// Canonical field names. Ancestors is only present when ancestor-category
// indexing is enabled.
const (
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldTags      = "tags"
	FieldAncestors = "ancestors"
)

// Field pairs an indexed field with its query-time boost weight.
type Field struct {
	Name  string  `json:"name"`
	Boost float64 `json:"boost"`
}

// Params is the relevance configuration for one index build. K1 controls
// term-frequency saturation, B length-normalization strength.
type Params struct {
	K1     float64
	B      float64
	Fields []Field
}

// Builder accumulates documents for one partition. The index natively
// supports only string references, so callers register documents under
// their stringified id.
type Builder struct {
	params   Params
	analyzer analysis.Analyzer
	refs     []string
	refSet   map[string]struct{}
	postings map[string]map[string]map[string]int // term -> field -> ref -> tf
	lengths  map[string]map[string]int            // field -> ref -> token count
}

func NewBuilder(params Params, analyzer analysis.Analyzer) *Builder {
	b := &Builder{
		params:   params,
		analyzer: analyzer,
		refSet:   make(map[string]struct{}),
		postings: make(map[string]map[string]map[string]int),
		lengths:  make(map[string]map[string]int),
	}
	for _, f := range params.Fields {
		b.lengths[f.Name] = make(map[string]int)
	}
	return b
}

// Add registers a document's fields under ref. Fields not in the configured
// field set are ignored; empty field values contribute nothing.
func (b *Builder) Add(ref string, fields map[string]string) error {
	if _, dup := b.refSet[ref]; dup {
		return fmt.Errorf("duplicate document reference %q", ref)
	}
	b.refSet[ref] = struct{}{}
	b.refs = append(b.refs, ref)

	for _, f := range b.params.Fields {
		text := fields[f.Name]
		if text == "" {
			continue
		}
		stream := b.analyzer.Analyze([]byte(text))
		b.lengths[f.Name][ref] = len(stream)
		for _, tok := range stream {
			term := string(tok.Term)
			if term == "" {
				continue
			}
			byField, ok := b.postings[term]
			if !ok {
				byField = make(map[string]map[string]int)
				b.postings[term] = byField
			}
			byRef, ok := byField[f.Name]
			if !ok {
				byRef = make(map[string]int)
				byField[f.Name] = byRef
			}
			byRef[ref]++
		}
	}
	return nil
}

// Build freezes the accumulated state into an immutable Index. An empty
// builder produces a valid empty index.
func (b *Builder) Build() *Index {
	avg := make(map[string]float64, len(b.params.Fields))
	for _, f := range b.params.Fields {
		if len(b.refs) == 0 {
			avg[f.Name] = 0
			continue
		}
		total := 0
		for _, l := range b.lengths[f.Name] {
			total += l
		}
		avg[f.Name] = float64(total) / float64(len(b.refs))
	}
	return &Index{
		params:   b.params,
		analyzer: b.analyzer,
		refs:     b.refs,
		postings: b.postings,
		lengths:  b.lengths,
		avgLens:  avg,
	}
}

// Index is the built, read-only form.
type Index struct {
	params   Params
	analyzer analysis.Analyzer
	refs     []string
	postings map[string]map[string]map[string]int
	lengths  map[string]map[string]int
	avgLens  map[string]float64
}

// Refs returns the registered document references in insertion order.
func (idx *Index) Refs() []string {
	return idx.refs
}

// DocCount returns the number of registered documents.
func (idx *Index) DocCount() int {
	return len(idx.refs)
}

// AncestorField synthesizes the ancestor-categories field value: the nearest
// depth ancestors, leaf-first, space-joined. Returns "" when disabled or the
// document has no ancestors.
func AncestorField(ancestors []string, depth int) string {
	if depth <= 0 || len(ancestors) == 0 {
		return ""
	}
	reversed := make([]string, 0, len(ancestors))
	for i := len(ancestors) - 1; i >= 0; i-- {
		reversed = append(reversed, ancestors[i])
	}
	if len(reversed) > depth {
		reversed = reversed[:depth]
	}
	out := reversed[0]
	for _, a := range reversed[1:] {
		out += " " + a
	}
	return out
}

// sortedTerms returns the vocabulary in lexical order for deterministic
// export.
func (idx *Index) sortedTerms() []string {
	terms := make([]string, 0, len(idx.postings))
	for term := range idx.postings {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
