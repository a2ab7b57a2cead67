package eval

import (
	"fmt"
	"math"
)

type recallEvaluator struct{}
type precisionEvaluator struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
type FMeasure struct {
	beta float64
}

var (
	// Precision is the fraction of positive predictions that were correct.
	Precision = precisionEvaluator{}
	// Recall is the fraction of positive examples that were predicted positive.
	Recall = recallEvaluator{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{beta: 1}
	// F05Measure is f-measure with beta=0.5.
	F05Measure = FMeasure{beta: 0.5}
	// F3Measure is f-measure with beta=3.
	F3Measure = FMeasure{beta: 3}
)

func (precisionEvaluator) Name() string {
	return "Precision"
}

func (precisionEvaluator) Score(c Confusion) Score {
	return Ratio(float64(c.TP), float64(c.TP+c.FP))
}

func (recallEvaluator) Name() string {
	return "Recall"
}

func (recallEvaluator) Score(c Confusion) Score {
	return Ratio(float64(c.TP), float64(c.TP+c.FN))
}

// Score uses the beta parameter to compute f-measure directly from the counts, so it is only undefined when there
// are no true positives, false positives or false negatives at all.
func (f FMeasure) Score(c Confusion) Score {
	b2 := math.Pow(f.beta, 2)
	tp := (1 + b2) * float64(c.TP)
	return Ratio(tp, tp+b2*float64(c.FN)+float64(c.FP))
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.beta)
}
