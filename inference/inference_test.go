package inference_test

import (
	"github.com/hscells/wat/classifier"
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/inference"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"regexp"
	"strings"
	"testing"
)

// recorder remembers the texts it was asked to classify.
type recorder struct {
	seen []string
	prob float64
}

func (r *recorder) Classify(text string) dataset.Label {
	return r.ProbClassify(text).Max()
}

func (r *recorder) ProbClassify(text string) classifier.ProbDist {
	r.seen = append(r.seen, text)
	return classifier.ProbDist{dataset.Positive: r.prob, dataset.Negative: 1 - r.prob}
}

func (r *recorder) Accuracy(examples []dataset.Example) float64 {
	return 0
}

var tags = regexp.MustCompile("<[^>]*>")

func stripTags(markup string) (string, error) {
	return tags.ReplaceAllString(markup, ""), nil
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]inference.Kind{
		"":       inference.Text,
		"text":   inference.Text,
		"markup": inference.Markup,
		"html":   inference.Markup,
		"HTML":   inference.Markup,
	} {
		k, err := inference.ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, k, in)
	}
	_, err := inference.ParseKind("pdf")
	assert.True(t, errors.Is(err, inference.ErrUnknownKind))
}

func TestApplyText(t *testing.T) {
	r := &recorder{prob: 0.25}
	res, err := inference.Apply(r, "race", "horse race", inference.Text)
	require.NoError(t, err)
	assert.Equal(t, inference.Result{Input: "horse race", Class: "race", Prob: 0.25}, res)
	assert.Equal(t, []string{"horse race"}, r.seen)
}

func TestApplyMarkup(t *testing.T) {
	r := &recorder{prob: 0.9}
	res, err := inference.Apply(r, "race", "<p>HELLO</p>", inference.Markup, inference.WithExtractor(stripTags))
	require.NoError(t, err)
	assert.Equal(t, []string{"HELLO"}, r.seen)
	assert.Equal(t, "<p>HELLO</p>", res.Input)
	assert.Equal(t, 0.9, res.Prob)
}

func TestApplyMarkupExtractorError(t *testing.T) {
	failing := func(string) (string, error) {
		return "", errors.New("bad markup")
	}
	_, err := inference.Apply(&recorder{}, "race", "<p>", inference.Markup, inference.WithExtractor(failing))
	assert.Error(t, err)
}

func TestApplyStdin(t *testing.T) {
	r := &recorder{prob: 0.5}
	stdin := strings.NewReader("line one\nline two\n")
	res, err := inference.Apply(r, "age", inference.Stdin, inference.Text, inference.WithStdin(stdin))
	require.NoError(t, err)
	assert.Equal(t, []string{"line one\nline two\n"}, r.seen)
	assert.Equal(t, "line one\nline two\n", res.Input)
	assert.Equal(t, "age", res.Class)
}

func TestApplyStdinMarkup(t *testing.T) {
	r := &recorder{}
	stdin := strings.NewReader("<b>bold</b> text")
	res, err := inference.Apply(r, "age", inference.Stdin, inference.Markup, inference.WithStdin(stdin), inference.WithExtractor(stripTags))
	require.NoError(t, err)
	assert.Equal(t, []string{"bold text"}, r.seen)
	assert.Equal(t, "<b>bold</b> text", res.Input)
}

func TestApplyUnknownKind(t *testing.T) {
	_, err := inference.Apply(&recorder{}, "race", "x", inference.Kind("pdf"))
	assert.True(t, errors.Is(err, inference.ErrUnknownKind))
}

func TestApplyNaiveBayes(t *testing.T) {
	m, err := classifier.Train([]dataset.Example{
		{Text: "horse race", Label: dataset.Positive},
		{Text: "spa massage", Label: dataset.Negative},
	}, nil)
	require.NoError(t, err)
	res, err := inference.Apply(m, "race", "horse race", inference.Text)
	require.NoError(t, err)
	assert.Greater(t, res.Prob, 0.5)
	assert.LessOrEqual(t, res.Prob, 1.0)
}
