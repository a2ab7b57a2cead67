// Package eval evaluates a binary classifier against labelled examples.
package eval

import (
	goerrors "github.com/go-errors/errors"
	"github.com/hscells/wat/classifier"
	"github.com/hscells/wat/dataset"
	"github.com/pkg/errors"
	"math"
	"strconv"
)

// ErrInvariantViolation is raised when a label or a prediction falls outside of the binary labels. The error
// returned carries the stack of the offending call, available through ErrorStack.
var ErrInvariantViolation = errors.New("classification outcome outside of the confusion matrix")

// stackError attaches a stack trace to an error while keeping it visible to errors.Is and errors.As.
type stackError struct {
	err *goerrors.Error
}

func (e stackError) Error() string {
	return e.err.Error()
}

// ErrorStack returns the error message followed by the stack of the call that raised it.
func (e stackError) ErrorStack() string {
	return e.err.ErrorStack()
}

func (e stackError) Unwrap() error {
	return e.err.Err
}

// Evaluator is an interface for measuring a confusion matrix.
type Evaluator interface {
	Score(c Confusion) Score
	Name() string
}

// Confusion counts the outcomes of classifying a set of examples.
type Confusion struct {
	TP int `json:"true_positive"`
	TN int `json:"true_negative"`
	FP int `json:"false_positive"`
	FN int `json:"false_negative"`
}

// Total is the number of outcomes counted.
func (c Confusion) Total() int {
	return c.TP + c.TN + c.FP + c.FN
}

// Add counts the outcome of one prediction.
func (c *Confusion) Add(label, prediction dataset.Label) error {
	switch {
	case label == dataset.Positive && prediction == dataset.Positive:
		c.TP++
	case label == dataset.Negative && prediction == dataset.Negative:
		c.TN++
	case label == dataset.Positive && prediction == dataset.Negative:
		c.FN++
	case label == dataset.Negative && prediction == dataset.Positive:
		c.FP++
	default:
		return stackError{goerrors.Wrap(errors.Wrapf(ErrInvariantViolation, "label %q prediction %q", label, prediction), 1)}
	}
	return nil
}

// Score is a ratio that may be undefined, e.g. when its denominator is zero.
type Score struct {
	Value   float64
	Defined bool
}

// Undefined is a score with no value.
var Undefined = Score{}

// Ratio divides numerator by denominator. A zero denominator gives an undefined score rather than NaN or Inf.
func Ratio(numerator, denominator float64) Score {
	if denominator == 0 {
		return Undefined
	}
	return Score{Value: numerator / denominator, Defined: true}
}

func (s Score) String() string {
	if !s.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// MarshalJSON encodes an undefined score as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Defined || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'g', -1, 64)), nil
}

// Result is the outcome of evaluating a classifier on a test set.
type Result struct {
	Confusion
	Precision Score            `json:"precision"`
	Recall    Score            `json:"recall"`
	F1        Score            `json:"f1"`
	Accuracy  float64          `json:"accuracy"`
	Measures  map[string]Score `json:"measures,omitempty"`
}

// Agrees reports whether the accuracy computed by the classifier matches the fraction of correct outcomes in the
// confusion matrix. An empty test set agrees when the classifier reports zero accuracy.
func (r Result) Agrees() bool {
	if r.Total() == 0 {
		return r.Accuracy == 0
	}
	return math.Abs(float64(r.TP+r.TN)/float64(r.Total())-r.Accuracy) < 1e-9
}

// Evaluate classifies every example in the test set and counts the outcomes. Additional evaluators are scored and
// stored in the result by name.
func Evaluate(model classifier.Classifier, test []dataset.Example, evaluators ...Evaluator) (Result, error) {
	var c Confusion
	for _, e := range test {
		if err := c.Add(e.Label, model.Classify(e.Text)); err != nil {
			return Result{}, err
		}
	}

	r := Result{
		Confusion: c,
		Precision: Precision.Score(c),
		Recall:    Recall.Score(c),
		F1:        F1Measure.Score(c),
		Accuracy:  model.Accuracy(test),
	}
	if len(evaluators) > 0 {
		r.Measures = make(map[string]Score, len(evaluators))
		for _, evaluator := range evaluators {
			r.Measures[evaluator.Name()] = evaluator.Score(c)
		}
	}
	return r, nil
}
