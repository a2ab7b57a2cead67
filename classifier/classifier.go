// Package classifier is the trainable probabilistic classifier used by the experiment pipeline. The interfaces in
// this package are the boundary the rest of the pipeline programs against; NaiveBayes is the implementation that
// ships with it.
package classifier

import (
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/feature"
	"github.com/pkg/errors"
	"sort"
)

var (
	// ErrNoExamples is returned when a classifier is trained with no examples.
	ErrNoExamples = errors.New("cannot train a classifier without examples")
	// ErrUnknownModelType is returned when no decoder is registered for a serialised model.
	ErrUnknownModelType = errors.New("unknown model type")
	// ErrExtractorRequired is returned when a serialised model needs an extractor that was not supplied.
	ErrExtractorRequired = errors.New("model was trained with a feature extractor but none was supplied")
)

// Classifier predicts labels for texts.
type Classifier interface {
	// Classify predicts the most likely label of the text.
	Classify(text string) dataset.Label
	// ProbClassify computes the probability of each label for the text.
	ProbClassify(text string) ProbDist
	// Accuracy is the fraction of examples whose label is predicted correctly. It is zero for no examples.
	Accuracy(examples []dataset.Example) float64
}

// Model is a trained classifier that can be serialised.
type Model interface {
	Classifier
	// Type identifies the decoder able to restore the model.
	Type() string
	// Marshal serialises the learned parameters of the model.
	Marshal() ([]byte, error)
}

// Trainer produces a model from labelled examples. A nil extractor means the classifier's own default feature
// extraction is used.
type Trainer func(examples []dataset.Example, extractor feature.Extractor) (Model, error)

// Decoder restores a model produced by Model.Marshal.
type Decoder func(b []byte, extractor feature.Extractor) (Model, error)

var decoders = map[string]Decoder{
	NaiveBayesType: decodeNaiveBayes,
}

// Decode restores a serialised model of the given type.
func Decode(modelType string, b []byte, extractor feature.Extractor) (Model, error) {
	d, ok := decoders[modelType]
	if !ok {
		return nil, errors.Wrap(ErrUnknownModelType, modelType)
	}
	return d(b, extractor)
}

// ProbDist is a probability distribution over labels.
type ProbDist map[dataset.Label]float64

// Prob is the probability mass of the label, or zero if the label is not in the distribution.
func (p ProbDist) Prob(label dataset.Label) float64 {
	return p[label]
}

// Max is the label with the most probability mass. Ties are broken by label order.
func (p ProbDist) Max() dataset.Label {
	labels := make([]dataset.Label, 0, len(p))
	for l := range p {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	var best dataset.Label
	for i, l := range labels {
		if i == 0 || p[l] > p[best] {
			best = l
		}
	}
	return best
}

func accuracy(c Classifier, examples []dataset.Example) float64 {
	if len(examples) == 0 {
		return 0
	}
	var correct int
	for _, e := range examples {
		if c.Classify(e.Text) == e.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(examples))
}
