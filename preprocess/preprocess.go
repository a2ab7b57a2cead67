// Package preprocess handles normalisation of document text and extraction of plain text from markup.
package preprocess

import (
	"github.com/hscells/go-unidecode"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"io"
	"regexp"
	"strings"
)

// TextProcessor is applied to text before it is tokenised.
type TextProcessor func(text string) string

// Extractor turns a rich (markup) document into plain text.
type Extractor func(markup string) (string, error)

var (
	alphanum, _ = regexp.Compile("[^a-zA-Z0-9 ]+")
	numbers, _  = regexp.Compile("[0-9]")
	spaces, _   = regexp.Compile(" +")
)

// AlphaNum removes all non-alphanumeric characters from text.
func AlphaNum(text string) string {
	return spaces.ReplaceAllString(alphanum.ReplaceAllString(text, " "), " ")
}

// StripNumbers removes numbers from text.
func StripNumbers(text string) string {
	return numbers.ReplaceAllString(text, "")
}

// Lowercase transforms all capital letters to lowercase.
func Lowercase(text string) string {
	return strings.ToLower(text)
}

// ASCII transliterates text into ASCII.
func ASCII(text string) string {
	return unidecode.Unidecode(text)
}

// Process applies each processor to the text in order.
func Process(text string, processors ...TextProcessor) string {
	for _, p := range processors {
		text = p(text)
	}
	return text
}

// Tokens normalises text (ASCII, lowercase, alphanumeric only) and splits it on whitespace.
func Tokens(text string) []string {
	return strings.Fields(Process(text, ASCII, Lowercase, AlphaNum))
}

// Markup extracts the text of an HTML document, separated by single spaces. Entities are decoded and the contents
// of script and style elements are dropped. Unbalanced tags are tolerated.
func Markup(markup string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		parts []string
		skip  string
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", errors.Wrap(err, "extracting text from markup")
			}
			return strings.Join(parts, " "), nil
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); len(skip) == 0 && (tag == "script" || tag == "style") {
				skip = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == skip {
				skip = ""
			}
		case html.TextToken:
			if len(skip) > 0 {
				continue
			}
			if part := strings.TrimSpace(string(z.Text())); len(part) > 0 {
				parts = append(parts, part)
			}
		}
	}
}
