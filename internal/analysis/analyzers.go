package analysis

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	unicodetok "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/snowballstem"
)

// basicAnalyzer lowercases, trims, and splits on a separator pattern. No
// stemming, no stop words. This is the portable fallback used for Chinese
// and the base of the custom-separator path.
type basicAnalyzer struct {
	sep *regexp.Regexp
}

func newBasicAnalyzer(sep *regexp.Regexp) *basicAnalyzer {
	return &basicAnalyzer{sep: sep}
}

func (a *basicAnalyzer) Analyze(input []byte) analysis.TokenStream {
	text := strings.ToLower(strings.TrimSpace(string(input)))
	var stream analysis.TokenStream
	pos := 1
	offset := 0
	for _, part := range a.sep.Split(text, -1) {
		if part == "" {
			continue
		}
		start := strings.Index(text[offset:], part) + offset
		end := start + len(part)
		offset = end
		stream = append(stream, &analysis.Token{
			Term:     []byte(part),
			Position: pos,
			Start:    start,
			End:      end,
		})
		pos++
	}
	return stream
}

// separatorAnalyzer is the custom-separator path for stemmed languages:
// separator splitting, lowercasing, then the language's snowball stemmer.
type separatorAnalyzer struct {
	base *basicAnalyzer
	stem func(*snowballstem.Env) bool
}

func newSeparatorAnalyzer(sep *regexp.Regexp, stem func(*snowballstem.Env) bool) *separatorAnalyzer {
	return &separatorAnalyzer{base: newBasicAnalyzer(sep), stem: stem}
}

func (a *separatorAnalyzer) Analyze(input []byte) analysis.TokenStream {
	stream := a.base.Analyze(input)
	if a.stem == nil {
		return stream
	}
	for _, tok := range stream {
		env := snowballstem.NewEnv(string(tok.Term))
		a.stem(env)
		tok.Term = []byte(env.Current())
	}
	return stream
}

// thaiAnalyzer segments with the unicode tokenizer, lowercases embedded
// Latin, then splits Thai script runs into rune bigrams. Thai has no spaces
// between words; bigrams keep recall without a word-cut dictionary, the same
// trade the CJK bigram filter makes.
type thaiAnalyzer struct {
	tokenizer analysis.Tokenizer
	lower     analysis.TokenFilter
}

func newThaiAnalyzer() *thaiAnalyzer {
	return &thaiAnalyzer{
		tokenizer: unicodetok.NewUnicodeTokenizer(),
		lower:     lowercase.NewLowerCaseFilter(),
	}
}

func (a *thaiAnalyzer) Analyze(input []byte) analysis.TokenStream {
	stream := a.lower.Filter(a.tokenizer.Tokenize(input))
	var out analysis.TokenStream
	pos := 1
	for _, tok := range stream {
		for _, term := range thaiBigrams(tok.Term) {
			out = append(out, &analysis.Token{
				Term:     term,
				Position: pos,
				Start:    tok.Start,
				End:      tok.End,
			})
			pos++
		}
	}
	return out
}

// thaiBigrams splits a Thai-script term into overlapping rune bigrams.
// Non-Thai terms and single-rune terms pass through unchanged.
func thaiBigrams(term []byte) [][]byte {
	if !isThai(term) {
		return [][]byte{term}
	}
	runes := bytes.Runes(term)
	if len(runes) < 3 {
		return [][]byte{term}
	}
	out := make([][]byte, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out = append(out, []byte(string(runes[i:i+2])))
	}
	return out
}

func isThai(term []byte) bool {
	r, _ := utf8.DecodeRune(term)
	return unicode.Is(unicode.Thai, r)
}

// unionAnalyzer merges the output of several language analyzers over the
// same input, deduplicating identical (term, position) pairs so overlapping
// pipelines do not double-count.
type unionAnalyzer struct {
	analyzers []analysis.Analyzer
}

func (a *unionAnalyzer) Analyze(input []byte) analysis.TokenStream {
	var out analysis.TokenStream
	seen := make(map[string]struct{})
	for _, az := range a.analyzers {
		for _, tok := range az.Analyze(input) {
			key := strconv.Itoa(tok.Position) + ":" + string(tok.Term)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}
