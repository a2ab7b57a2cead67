package classifier

import (
	"encoding/json"
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/feature"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"math"
	"math/bits"
	"sort"
	"strconv"
)

// NaiveBayesType identifies serialised naive Bayes models.
const NaiveBayesType = "naivebayes"

// Feature values. A feature that an extractor did not produce for a document takes the value none.
const (
	valueFalse = iota
	valueTrue
	valueNone
)

type featureCounts struct {
	// Values is a bit set of the values observed for the feature.
	Values uint8 `json:"values"`
	// Counts holds, per label, the number of documents with each value.
	Counts map[dataset.Label][3]int `json:"counts"`
}

// NaiveBayes is a naive Bayes classifier over boolean features. Label and feature probabilities are expected
// likelihood estimates (counts smoothed by one half), so a value never seen with a label is improbable rather than
// impossible. Features in a document that were never seen in training are ignored.
type NaiveBayes struct {
	LabelCounts map[dataset.Label]int     `json:"labels"`
	Features    map[string]*featureCounts `json:"features"`
	// Vocabulary is only set when the model uses its own default extraction.
	Vocabulary []string `json:"vocabulary,omitempty"`
	Default    bool     `json:"default_extraction"`

	labels    []dataset.Label
	total     int
	extractor feature.Extractor
}

// Train is a Trainer that fits a naive Bayes classifier to the examples.
func Train(examples []dataset.Example, extractor feature.Extractor) (Model, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}

	nb := &NaiveBayes{
		LabelCounts: make(map[dataset.Label]int),
		Features:    make(map[string]*featureCounts),
	}
	if extractor == nil {
		nb.Default = true
		nb.Vocabulary = Vocabulary(examples)
		extractor = DefaultExtractor(nb.Vocabulary)
	}
	nb.extractor = extractor

	for _, e := range examples {
		nb.LabelCounts[e.Label]++
		for name, v := range nb.extractor(e.Text) {
			fc, ok := nb.Features[name]
			if !ok {
				fc = &featureCounts{Counts: make(map[dataset.Label][3]int)}
				nb.Features[name] = fc
			}
			fc.add(e.Label, value(v), 1)
		}
	}

	// Documents of a label that did not produce a feature take the value none.
	for _, fc := range nb.Features {
		for label, n := range nb.LabelCounts {
			c := fc.Counts[label]
			if missing := n - c[valueFalse] - c[valueTrue]; missing > 0 {
				fc.add(label, valueNone, missing)
			}
		}
	}

	nb.init()
	return nb, nil
}

func decodeNaiveBayes(b []byte, extractor feature.Extractor) (Model, error) {
	var nb NaiveBayes
	if err := json.Unmarshal(b, &nb); err != nil {
		return nil, errors.Wrap(err, "decoding naive bayes model")
	}
	if len(nb.LabelCounts) == 0 {
		return nil, ErrNoExamples
	}
	if nb.Features == nil {
		nb.Features = make(map[string]*featureCounts)
	}
	switch {
	case nb.Default:
		extractor = DefaultExtractor(nb.Vocabulary)
	case extractor == nil:
		return nil, ErrExtractorRequired
	}
	nb.extractor = extractor
	nb.init()
	return &nb, nil
}

func (nb *NaiveBayes) init() {
	nb.labels = nb.labels[:0]
	nb.total = 0
	for label, n := range nb.LabelCounts {
		nb.labels = append(nb.labels, label)
		nb.total += n
	}
	sort.Slice(nb.labels, func(i, j int) bool {
		return nb.labels[i] < nb.labels[j]
	})
}

func value(v bool) int {
	if v {
		return valueTrue
	}
	return valueFalse
}

func (fc *featureCounts) add(label dataset.Label, v, n int) {
	c := fc.Counts[label]
	c[v] += n
	fc.Counts[label] = c
	fc.Values |= 1 << uint(v)
}

// logProb is the expected likelihood estimate of the value for a label, given the label was seen n times.
func (fc *featureCounts) logProb(label dataset.Label, v, n int) float64 {
	bins := bits.OnesCount8(fc.Values)
	c := fc.Counts[label]
	return math.Log((float64(c[v]) + 0.5) / (float64(n) + 0.5*float64(bins)))
}

func (nb *NaiveBayes) labelLogProb(label dataset.Label) float64 {
	return math.Log((float64(nb.LabelCounts[label]) + 0.5) / (float64(nb.total) + 0.5*float64(len(nb.labels))))
}

// ProbClassify computes the posterior probability of each label.
func (nb *NaiveBayes) ProbClassify(text string) ProbDist {
	fs := nb.extractor(text)

	// Sum in a fixed order so the same text always gives the same probabilities.
	names := make([]string, 0, len(fs))
	for name := range fs {
		if _, ok := nb.Features[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	logp := make([]float64, len(nb.labels))
	for i, label := range nb.labels {
		logp[i] = nb.labelLogProb(label)
		for _, name := range names {
			logp[i] += nb.Features[name].logProb(label, value(fs[name]), nb.LabelCounts[label])
		}
	}

	norm := floats.LogSumExp(logp)
	dist := make(ProbDist, len(nb.labels))
	for i, label := range nb.labels {
		dist[label] = math.Exp(logp[i] - norm)
	}
	return dist
}

// Classify predicts the most probable label.
func (nb *NaiveBayes) Classify(text string) dataset.Label {
	return nb.ProbClassify(text).Max()
}

// Accuracy is the fraction of examples classified correctly.
func (nb *NaiveBayes) Accuracy(examples []dataset.Example) float64 {
	return accuracy(nb, examples)
}

// Type is NaiveBayesType.
func (nb *NaiveBayes) Type() string {
	return NaiveBayesType
}

// Marshal encodes the counts (and vocabulary) the model was trained with.
func (nb *NaiveBayes) Marshal() ([]byte, error) {
	return json.Marshal(nb)
}

func (nb *NaiveBayes) String() string {
	return "<NaiveBayes trained on " + strconv.Itoa(nb.total) + " instances>"
}
