// Package analysis resolves the configured language policy into an immutable
// token analyzer. Language support is a static registry resolved up front:
// unknown codes fail at configuration time, never at first use, and the
// returned analyzer is a fully-parameterized value with no shared mutable
// state.
package analysis

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/analysis/lang/de"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/lang/es"
	"github.com/blevesearch/bleve/v2/analysis/lang/fr"
	"github.com/blevesearch/bleve/v2/analysis/lang/hi"
	"github.com/blevesearch/bleve/v2/analysis/lang/it"
	"github.com/blevesearch/bleve/v2/analysis/lang/pt"
	"github.com/blevesearch/bleve/v2/analysis/lang/ru"
	"github.com/blevesearch/bleve/v2/registry"
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/french"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/russian"
	"github.com/blevesearch/snowballstem/spanish"
)

var (
	ErrUnsupportedLanguage  = errors.New("unsupported language")
	ErrDeprecatedLanguage   = errors.New("deprecated language code")
	ErrSeparatorUnsupported = errors.New("custom separator not supported for language")
)

// DefaultSeparator splits on runs of whitespace and hyphens.
const DefaultSeparator = `[\s-]+`

// entry describes how one language code is analyzed. analyzerName is the
// bleve-registered analyzer used on the default path; stem is the snowball
// function used when a custom separator replaces the tokenizer; segmented
// languages need script-aware segmentation and refuse custom separators.
type entry struct {
	analyzerName string
	stem         func(*snowballstem.Env) bool
	segmented    bool
}

var languages = map[string]entry{
	"en": {analyzerName: en.AnalyzerName, stem: english.Stem},
	"fr": {analyzerName: fr.AnalyzerName, stem: french.Stem},
	"es": {analyzerName: es.AnalyzerName, stem: spanish.Stem},
	"de": {analyzerName: de.AnalyzerName, stem: german.Stem},
	"it": {analyzerName: it.AnalyzerName, stem: italian.Stem},
	"pt": {analyzerName: pt.AnalyzerName, stem: portuguese.Stem},
	"ru": {analyzerName: ru.AnalyzerName, stem: russian.Stem},
	"hi": {analyzerName: hi.AnalyzerName},
	// Dictionary-free width-normalizing bigram segmentation.
	"ja": {analyzerName: cjk.AnalyzerName, segmented: true},
	// Thai has no registered bleve analyzer; script runs are bigrammed.
	"th": {segmented: true},
	// Deliberate portability fallback: the consuming runtime cannot ship a
	// dictionary segmenter, so Chinese gets plain separator splitting.
	"zh": {},
}

// Supported returns the supported language codes, sorted.
func Supported() []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Validate checks a language list and separator combination without building
// anything. It is the pre-execution half of the configuration contract.
func Validate(codes []string, separator string) error {
	if len(codes) == 0 {
		return fmt.Errorf("%w: no language configured", ErrUnsupportedLanguage)
	}
	for _, code := range codes {
		if code == "jp" {
			return fmt.Errorf("%w: %q, use \"ja\" instead", ErrDeprecatedLanguage, code)
		}
		lang, ok := languages[code]
		if !ok {
			return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedLanguage, code, strings.Join(Supported(), ", "))
		}
		if separator != "" && lang.segmented {
			return fmt.Errorf("%w: %q requires script segmentation", ErrSeparatorUnsupported, code)
		}
	}
	if separator != "" {
		if _, err := regexp.Compile(separator); err != nil {
			return fmt.Errorf("invalid separator pattern %q: %w", separator, err)
		}
	}
	return nil
}

// ForLanguages builds the analyzer for the configured language list. A
// single code resolves to that language's analyzer; multiple codes compose a
// union analyzer that merges every constituent's output. separator, when
// non-empty, overrides the default splitter.
func ForLanguages(codes []string, separator string) (analysis.Analyzer, error) {
	if err := Validate(codes, separator); err != nil {
		return nil, err
	}
	if len(codes) == 1 {
		return forLanguage(codes[0], separator)
	}
	analyzers := make([]analysis.Analyzer, 0, len(codes))
	for _, code := range codes {
		az, err := forLanguage(code, separator)
		if err != nil {
			return nil, err
		}
		analyzers = append(analyzers, az)
	}
	return &unionAnalyzer{analyzers: analyzers}, nil
}

func forLanguage(code, separator string) (analysis.Analyzer, error) {
	lang := languages[code]

	switch code {
	case "zh":
		return newBasicAnalyzer(separatorPattern(separator)), nil
	case "th":
		return newThaiAnalyzer(), nil
	}

	// A custom separator replaces the whole registered pipeline with
	// separator splitting + lowercasing + the language's snowball stemmer.
	if separator != "" {
		return newSeparatorAnalyzer(separatorPattern(separator), lang.stem), nil
	}

	cache := registry.NewCache()
	az, err := cache.AnalyzerNamed(lang.analyzerName)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q analyzer: %w", code, err)
	}
	return az, nil
}

func separatorPattern(separator string) *regexp.Regexp {
	if separator == "" {
		separator = DefaultSeparator
	}
	return regexp.MustCompile(separator)
}
