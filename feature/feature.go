// Package feature provides the named feature extractors that turn a document into boolean signals for a classifier.
//
// Every extractor in this package only records positive features: a token that does not appear in a document is
// implicitly false and is never materialised in the returned map. Each family of extractor uses its own key
// namespace so that features from different families never collide.
package feature

import (
	"fmt"
	"github.com/bbalet/stopwords"
	"github.com/hscells/go-unidecode"
	"github.com/jdkato/prose/v2"
	"github.com/reiver/go-porterstemmer"
	"sort"
	"strings"
)

// Extractor transforms the text of a document into a set of named boolean features.
type Extractor func(text string) map[string]bool

// Registry maps indicator names to extractors.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// DefaultRegistry creates a registry containing every extractor in this package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("ci", CaseInsensitive)
	r.Register("cs", CaseSensitive)
	r.Register("stem", Stemmed)
	r.Register("ascii", ASCII)
	r.Register("prose", Prose)
	return r
}

// Register adds (or replaces) the extractor known by name.
func (r *Registry) Register(name string, extractor Extractor) {
	r.extractors[name] = extractor
}

// Lookup finds the extractor for an indicator. An unknown indicator is not an error; the second return value is
// false and the caller should fall back to the classifier's own default extraction.
func (r *Registry) Lookup(name string) (Extractor, bool) {
	e, ok := r.extractors[name]
	return e, ok
}

// Names lists the registered indicators in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(namespace string, tokens []string) map[string]bool {
	features := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if len(token) == 0 {
			continue
		}
		features[fmt.Sprintf("contains_%s(%s)", namespace, token)] = true
	}
	return features
}

// CaseInsensitive records a feature for the uppercased form of each whitespace-delimited token.
func CaseInsensitive(text string) map[string]bool {
	tokens := strings.Fields(text)
	for i, token := range tokens {
		tokens[i] = strings.ToUpper(token)
	}
	return contains("ci", tokens)
}

// CaseSensitive records a feature for each whitespace-delimited token as it appears.
func CaseSensitive(text string) map[string]bool {
	return contains("cs", strings.Fields(text))
}

// Stemmed removes English stop words and records the Porter stem of each remaining token.
func Stemmed(text string) map[string]bool {
	clean := stopwords.CleanString(text, "en", false)
	tokens := strings.Fields(strings.ToLower(clean))
	for i, token := range tokens {
		tokens[i] = porterstemmer.StemString(token)
	}
	return contains("stem", tokens)
}

// ASCII transliterates each token to its closest ASCII form before lowercasing it.
func ASCII(text string) map[string]bool {
	tokens := strings.Fields(unidecode.Unidecode(text))
	for i, token := range tokens {
		tokens[i] = strings.ToLower(token)
	}
	return contains("ascii", tokens)
}

// Prose records the tokens produced by the prose tokeniser. Tagging, entity extraction and sentence segmentation
// are disabled since only the tokens are needed.
func Prose(text string) map[string]bool {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false))
	if err != nil {
		// Fall back to whitespace tokens.
		return contains("prose", strings.Fields(text))
	}
	tokens := doc.Tokens()
	t := make([]string, len(tokens))
	for i, token := range tokens {
		t[i] = token.Text
	}
	return contains("prose", t)
}
