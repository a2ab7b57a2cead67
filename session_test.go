package wat_test

import (
	"bytes"
	"fmt"
	"github.com/hscells/wat"
	"github.com/hscells/wat/corpus"
	"github.com/hscells/wat/eval"
	"github.com/hscells/wat/feature"
	"github.com/hscells/wat/inference"
	"github.com/hscells/wat/persist"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"regexp"
	"strings"
	"testing"
)

// bodies is a Tokeniser over an in-memory map of document bodies.
type bodies map[string]string

func (b bodies) BodyTokens(documentID string) ([]string, error) {
	body, ok := b[documentID]
	if !ok {
		return nil, corpus.ErrUnknownDocument
	}
	return strings.Fields(body), nil
}

// fixture builds a corpus of n documents where every third document is about horse racing.
func fixture(n int) (*corpus.MapTagStore, bodies) {
	tags := corpus.NewMapTagStore(nil)
	b := make(bodies)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("http://example.com/%03d", i)
		if i%3 == 0 {
			tags.Add(id, "race", "typical")
			b[id] = fmt.Sprintf("horse race track derby jockey %d", i)
		} else {
			tags.Add(id, "healthspa")
			b[id] = fmt.Sprintf("spa massage relax sauna office %d", i)
		}
	}
	return tags, b
}

func logger(buf *bytes.Buffer, verbose bool) wat.SessionOption {
	return wat.Logger(wat.NewLogger(buf, verbose))
}

func TestExecuteTrainTest(t *testing.T) {
	tags, b := fixture(60)
	var log bytes.Buffer
	s := wat.NewSession("race", tags, b, wat.Sizes(40, 15, 10), logger(&log, true), wat.Measures(eval.F05Measure))

	r, err := s.Execute()
	require.NoError(t, err)
	assert.Equal(t, 60, r.Documents)
	assert.Equal(t, 40, r.Training)
	assert.Equal(t, 15, r.Test)
	assert.Equal(t, 5, r.Validation)
	assert.Equal(t, "cs", r.Indicator)
	assert.Equal(t, s.Run(), r.Run)
	assert.Nil(t, r.Inference)
	assert.Empty(t, r.Artifact)

	require.NotNil(t, r.Evaluation)
	assert.Equal(t, 15, r.Evaluation.Total())
	assert.True(t, r.Evaluation.Agrees())
	assert.Equal(t, 1.0, r.Evaluation.Accuracy)
	assert.Contains(t, r.Evaluation.Measures, "F0.5Measure")

	out := log.String()
	for _, stage := range []string{"INITIALIZING", "BUILDING", "TESTING", "VALIDATING"} {
		assert.Contains(t, out, "msg="+stage)
	}
	assert.NotContains(t, out, "msg=SAVING")
	assert.NotContains(t, out, "msg=APPLYING")
	assert.Contains(t, out, "validation not implemented")
	assert.Contains(t, out, `"training race classifier"`)
	assert.Contains(t, out, "run="+s.Run())
}

func TestExecuteQuiet(t *testing.T) {
	tags, b := fixture(30)
	var log bytes.Buffer
	_, err := wat.NewSession("race", tags, b, wat.Sizes(20, 5, 5), logger(&log, false)).Execute()
	require.NoError(t, err)
	assert.NotContains(t, log.String(), "INITIALIZING")
	assert.Contains(t, log.String(), "validation not implemented")
}

func TestExecuteNoTestNoValidate(t *testing.T) {
	tags, b := fixture(30)
	var log bytes.Buffer
	r, err := wat.NewSession("race", tags, b, wat.Sizes(30, 0, 0), logger(&log, true)).Execute()
	require.NoError(t, err)
	assert.Nil(t, r.Evaluation)
	assert.NotContains(t, log.String(), "TESTING")
	assert.NotContains(t, log.String(), "VALIDATING")
}

func TestExecuteEmptyTestSet(t *testing.T) {
	tags, b := fixture(10)
	r, err := wat.NewSession("race", tags, b, wat.Sizes(20, 5, 0), logger(&bytes.Buffer{}, false)).Execute()
	require.NoError(t, err)
	assert.Equal(t, 10, r.Training)
	assert.Equal(t, 0, r.Test)
	require.NotNil(t, r.Evaluation)
	assert.Equal(t, eval.Undefined, r.Evaluation.Precision)
	assert.Equal(t, eval.Undefined, r.Evaluation.Recall)
	assert.Equal(t, eval.Undefined, r.Evaluation.F1)
}

func TestExecuteNoTrainingExamples(t *testing.T) {
	tags, b := fixture(10)
	_, err := wat.NewSession("race", tags, b, wat.Sizes(0, 5, 0), logger(&bytes.Buffer{}, false)).Execute()
	assert.Error(t, err)
}

func TestDeterminism(t *testing.T) {
	tags, b := fixture(45)
	run := func() *eval.Result {
		r, err := wat.NewSession("race", tags, b, wat.Sizes(5, 30, 0), wat.Seed(3), logger(&bytes.Buffer{}, false)).Execute()
		require.NoError(t, err)
		return r.Evaluation
	}
	assert.Equal(t, run(), run())
}

func TestSaveLoadApply(t *testing.T) {
	tags, b := fixture(60)
	store := persist.NewStore(t.TempDir())

	saved, err := wat.NewSession("race", tags, b,
		wat.Sizes(50, 10, 0),
		wat.Persistence(store),
		wat.Save(true),
		wat.Apply("horse race derby"),
		logger(&bytes.Buffer{}, false)).Execute()
	require.NoError(t, err)
	assert.Equal(t, store.Path(persist.Key{Class: "race", Indicator: "cs"}), saved.Artifact)
	assert.FileExists(t, saved.Artifact)
	require.NotNil(t, saved.Inference)

	loaded, err := wat.NewSession("race", tags, b,
		wat.Sizes(50, 10, 0),
		wat.Persistence(store),
		wat.Load(true),
		wat.Apply("horse race derby"),
		logger(&bytes.Buffer{}, false)).Execute()
	require.NoError(t, err)
	require.NotNil(t, loaded.Inference)
	assert.Equal(t, saved.Inference.Prob, loaded.Inference.Prob)
	assert.Equal(t, saved.Evaluation, loaded.Evaluation)
	assert.Greater(t, loaded.Inference.Prob, 0.5)
	assert.Equal(t, "race", loaded.Inference.Class)
}

func TestLoadMissingArtifact(t *testing.T) {
	tags, b := fixture(10)
	_, err := wat.NewSession("race", tags, b,
		wat.Persistence(persist.NewStore(t.TempDir())),
		wat.Load(true),
		logger(&bytes.Buffer{}, false)).Execute()
	assert.True(t, errors.Is(err, persist.ErrNoArtifact))
}

func TestNoPersistence(t *testing.T) {
	tags, b := fixture(10)
	_, err := wat.NewSession("race", tags, b, wat.Save(true), logger(&bytes.Buffer{}, false)).Execute()
	assert.True(t, errors.Is(err, wat.ErrNoPersistence))
}

func TestUnknownIndicatorUsesDefaultExtraction(t *testing.T) {
	tags, b := fixture(30)
	store := persist.NewStore(t.TempDir())
	s := wat.NewSession("race", tags, b,
		wat.Indicator("nonexistent"),
		wat.Sizes(20, 10, 0),
		wat.Persistence(store),
		wat.Save(true),
		logger(&bytes.Buffer{}, false))
	assert.Nil(t, s.Extractor())

	r, err := s.Execute()
	require.NoError(t, err)
	assert.Equal(t, store.Path(persist.Key{Class: "race", Indicator: "nonexistent"}), r.Artifact)

	// The artifact was trained with default extraction, so it loads without an extractor.
	_, _, err = store.Load(s.Key(), nil)
	assert.NoError(t, err)
}

func TestExtractors(t *testing.T) {
	registry := feature.NewRegistry()
	registry.Register("words", feature.CaseSensitive)
	tags, b := fixture(10)
	s := wat.NewSession("race", tags, b, wat.Extractors(registry), wat.Indicator("words"), logger(&bytes.Buffer{}, false))
	assert.NotNil(t, s.Extractor())
	assert.Equal(t, persist.Key{Class: "race", Indicator: "words"}, s.Key())

	s = wat.NewSession("race", tags, b, wat.Extractors(registry), logger(&bytes.Buffer{}, false))
	assert.Nil(t, s.Extractor())
}

func TestApplyEmptyInput(t *testing.T) {
	tags, b := fixture(30)
	r, err := wat.NewSession("race", tags, b,
		wat.Sizes(30, 0, 0),
		wat.Apply(""),
		wat.Stdin(strings.NewReader("horse race")),
		logger(&bytes.Buffer{}, false)).Execute()
	require.NoError(t, err)
	assert.Nil(t, r.Inference)
}

func TestApplyStdinMarkup(t *testing.T) {
	tags, b := fixture(30)
	stripped := regexp.MustCompile("<[^>]*>")
	var seen string
	r, err := wat.NewSession("race", tags, b,
		wat.Sizes(30, 0, 0),
		wat.Apply(inference.Stdin),
		wat.Input(inference.Markup),
		wat.Stdin(strings.NewReader("<p>horse race</p>")),
		wat.MarkupExtractor(func(markup string) (string, error) {
			seen = stripped.ReplaceAllString(markup, "")
			return seen, nil
		}),
		logger(&bytes.Buffer{}, false)).Execute()
	require.NoError(t, err)
	require.NotNil(t, r.Inference)
	assert.Equal(t, "horse race", seen)
	assert.Equal(t, "<p>horse race</p>", r.Inference.Input)
}

func TestSessionsAreIndependent(t *testing.T) {
	tags, b := fixture(30)
	a := wat.NewSession("race", tags, b, logger(&bytes.Buffer{}, false))
	c := wat.NewSession("healthspa", tags, b, logger(&bytes.Buffer{}, false))
	assert.NotEqual(t, a.Run(), c.Run())

	ra, err := a.Execute()
	require.NoError(t, err)
	rc, err := c.Execute()
	require.NoError(t, err)
	assert.Equal(t, "race", ra.Class)
	assert.Equal(t, "healthspa", rc.Class)
}
