package classifier_test

import (
	"github.com/hscells/wat/classifier"
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

var training = []dataset.Example{
	{Text: "race horse track win", Label: dataset.Positive},
	{Text: "horse race derby", Label: dataset.Positive},
	{Text: "track race fast horse", Label: dataset.Positive},
	{Text: "spa massage relax", Label: dataset.Negative},
	{Text: "agency office staff", Label: dataset.Negative},
	{Text: "massage office relax staff", Label: dataset.Negative},
	{Text: "age old young", Label: dataset.Negative},
}

var texts = []string{
	"horse race",
	"relax at the spa",
	"office massage",
	"derby track",
	"",
	"completely unseen words",
}

func TestTrainClassify(t *testing.T) {
	for name, extractor := range map[string]feature.Extractor{"cs": feature.CaseSensitive, "default": nil} {
		m, err := classifier.Train(training, extractor)
		require.NoError(t, err, name)

		assert.Equal(t, dataset.Positive, m.Classify("the horse race"), name)
		assert.Equal(t, dataset.Negative, m.Classify("relax with a massage"), name)
		assert.Equal(t, 1.0, m.Accuracy(training), name)
	}
}

func TestProbClassifySumsToOne(t *testing.T) {
	m, err := classifier.Train(training, feature.CaseInsensitive)
	require.NoError(t, err)
	for _, text := range texts {
		p := m.ProbClassify(text)
		sum := p.Prob(dataset.Positive) + p.Prob(dataset.Negative)
		assert.InDelta(t, 1.0, sum, 1e-9, text)
		assert.Equal(t, p.Max(), m.Classify(text), text)
	}
	assert.Greater(t, m.ProbClassify("horse race track").Prob(dataset.Positive), 0.5)
}

func TestUnseenFeaturesUsePrior(t *testing.T) {
	m, err := classifier.Train(training, feature.CaseSensitive)
	require.NoError(t, err)
	// 3 positive and 4 negative examples, smoothed by one half.
	p := m.ProbClassify("nothing known here").Prob(dataset.Positive)
	assert.InDelta(t, 3.5/8.0, p, 1e-9)
}

func TestAccuracyEmpty(t *testing.T) {
	m, err := classifier.Train(training, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Accuracy(nil))
}

func TestTrainNoExamples(t *testing.T) {
	_, err := classifier.Train(nil, feature.CaseSensitive)
	assert.ErrorIs(t, err, classifier.ErrNoExamples)
}

func TestRoundTrip(t *testing.T) {
	for name, extractor := range map[string]feature.Extractor{"cs": feature.CaseSensitive, "ci": feature.CaseInsensitive, "default": nil} {
		m, err := classifier.Train(training, extractor)
		require.NoError(t, err, name)

		b, err := m.Marshal()
		require.NoError(t, err, name)

		r, err := classifier.Decode(m.Type(), b, extractor)
		require.NoError(t, err, name)

		for _, text := range append(texts, exampleTexts()...) {
			assert.Equal(t, m.Classify(text), r.Classify(text), "%s: %q", name, text)
			assert.InDelta(t, m.ProbClassify(text).Prob(dataset.Positive), r.ProbClassify(text).Prob(dataset.Positive), 1e-12)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := classifier.Decode("svm", []byte("{}"), nil)
	assert.ErrorIs(t, err, classifier.ErrUnknownModelType)

	_, err = classifier.Decode(classifier.NaiveBayesType, []byte("not json"), nil)
	assert.Error(t, err)

	m, err := classifier.Train(training, feature.CaseSensitive)
	require.NoError(t, err)
	b, err := m.Marshal()
	require.NoError(t, err)
	_, err = classifier.Decode(classifier.NaiveBayesType, b, nil)
	assert.ErrorIs(t, err, classifier.ErrExtractorRequired)
}

func TestDefaultExtractionMaterialisesFalse(t *testing.T) {
	e := classifier.DefaultExtractor(classifier.Vocabulary(training))
	f := e("horse")
	assert.True(t, f["contains(horse)"])
	v, ok := f["contains(spa)"]
	assert.True(t, ok)
	assert.False(t, v)
	assert.Len(t, f, len(classifier.Vocabulary(training)))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"cafe", "au", "lait"}, classifier.Words("Café, au-lait!"))
	assert.Equal(t, []string{"a", "b"}, classifier.Vocabulary([]dataset.Example{{Text: "b a"}, {Text: "a"}}))
}

func TestProbDistMax(t *testing.T) {
	assert.Equal(t, dataset.Negative, classifier.ProbDist{dataset.Positive: 0.5, dataset.Negative: 0.5}.Max())
	assert.Equal(t, dataset.Positive, classifier.ProbDist{dataset.Positive: 0.7, dataset.Negative: 0.3}.Max())
	assert.Equal(t, 0.0, classifier.ProbDist{}.Prob(dataset.Positive))
	assert.False(t, math.IsNaN(classifier.ProbDist{dataset.Negative: 1}.Prob(dataset.Positive)))
}

func exampleTexts() []string {
	s := make([]string, len(training))
	for i, e := range training {
		s[i] = e.Text
	}
	return s
}
