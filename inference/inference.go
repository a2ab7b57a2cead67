// Package inference applies a trained classifier to a single input.
package inference

import (
	"github.com/hscells/wat/classifier"
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/preprocess"
	"github.com/pkg/errors"
	"io"
	"io/ioutil"
	"os"
	"strings"
)

// Stdin is the input value that means "read the input from standard input".
const Stdin = "-"

// Kind is the kind of input being classified.
type Kind string

const (
	// Text input is classified as-is.
	Text Kind = "text"
	// Markup input has its text extracted before it is classified.
	Markup Kind = "markup"
)

// ErrUnknownKind is returned when parsing an input kind that is not text or markup.
var ErrUnknownKind = errors.New("unknown input kind")

// ParseKind parses an input kind. The empty string is text, and html is accepted for markup.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return Text, nil
	case "markup", "html":
		return Markup, nil
	}
	return "", errors.Wrap(ErrUnknownKind, s)
}

// Result is the outcome of classifying an input.
type Result struct {
	// Input is the input as it was read, before any extraction.
	Input string `json:"input"`
	// Class is the positive class of the classifier.
	Class string `json:"class"`
	// Prob is the probability that the input belongs to the class.
	Prob float64 `json:"prob"`
}

type applier struct {
	stdin     io.Reader
	extractor preprocess.Extractor
}

// Option configures an application of a classifier.
type Option func(a *applier)

// WithStdin reads Stdin inputs from r instead of standard input.
func WithStdin(r io.Reader) Option {
	return func(a *applier) {
		a.stdin = r
	}
}

// WithExtractor sets the extractor used for markup input. The default is preprocess.Markup.
func WithExtractor(extractor preprocess.Extractor) Option {
	return func(a *applier) {
		a.extractor = extractor
	}
}

// Apply classifies raw with a model trained for class. If raw is Stdin the whole of standard input is read and
// classified instead.
func Apply(model classifier.Classifier, class, raw string, kind Kind, options ...Option) (Result, error) {
	a := &applier{
		stdin:     os.Stdin,
		extractor: preprocess.Markup,
	}
	for _, option := range options {
		option(a)
	}

	input := raw
	if raw == Stdin {
		b, err := ioutil.ReadAll(a.stdin)
		if err != nil {
			return Result{}, errors.Wrap(err, "reading standard input")
		}
		input = string(b)
	}

	text := input
	switch kind {
	case Text:
	case Markup:
		var err error
		text, err = a.extractor(input)
		if err != nil {
			return Result{}, err
		}
	default:
		return Result{}, errors.Wrap(ErrUnknownKind, string(kind))
	}

	return Result{
		Input: input,
		Class: class,
		Prob:  model.ProbClassify(text).Prob(dataset.Positive),
	}, nil
}
