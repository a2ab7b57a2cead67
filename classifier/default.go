package classifier

import (
	"fmt"
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/feature"
	"github.com/xtgo/set"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"strings"
	"unicode"
)

func sanitiser() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return ' '
			}
			return unicode.ToLower(r)
		}),
		norm.NFC)
}

// Words splits text into the lowercase words used by the default extraction. Accents and punctuation are removed.
func Words(text string) []string {
	s, _, err := transform.String(sanitiser(), text)
	if err != nil {
		s = strings.ToLower(text)
	}
	return strings.Fields(s)
}

// Vocabulary is the sorted set of words in the examples.
func Vocabulary(examples []dataset.Example) []string {
	var words []string
	for _, e := range examples {
		words = append(words, Words(e.Text)...)
	}
	return set.Strings(words)
}

// DefaultExtractor records, for every word in the vocabulary, whether the word appears in a document. Unlike the
// extractors in the feature package, absent words are recorded as explicit false features.
func DefaultExtractor(vocabulary []string) feature.Extractor {
	keys := make([]string, len(vocabulary))
	for i, word := range vocabulary {
		keys[i] = fmt.Sprintf("contains(%s)", word)
	}
	return func(text string) map[string]bool {
		present := make(map[string]struct{})
		for _, w := range Words(text) {
			present[w] = struct{}{}
		}
		features := make(map[string]bool, len(vocabulary))
		for i, word := range vocabulary {
			_, ok := present[word]
			features[keys[i]] = ok
		}
		return features
	}
}
