package eval_test

import (
	"github.com/hscells/wat/eval"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNNR(t *testing.T) {
	assert.InDelta(t, 4.0/3.0, eval.NNR.Score(eval.Confusion{TP: 2, TN: 1, FP: 1}).Value, 1e-12)
	assert.Equal(t, eval.Score{Value: 1, Defined: true}, eval.NNR.Score(eval.Confusion{}))
	assert.Equal(t, "NNR", eval.NNR.Name())
}

func TestWSS(t *testing.T) {
	// 10 examples, 4 classified negative, recall 0.75.
	c := eval.Confusion{TP: 3, FN: 1, TN: 3, FP: 3}
	assert.InDelta(t, 0.4-0.25, eval.WSS.Score(c).Value, 1e-12)
	assert.Equal(t, eval.Undefined, eval.WSS.Score(eval.Confusion{}))
	assert.Equal(t, eval.Undefined, eval.WSS.Score(eval.Confusion{TN: 4}))
}

func TestSpecificity(t *testing.T) {
	assert.InDelta(t, 0.5, eval.Specificity.Score(eval.Confusion{TN: 3, FP: 3}).Value, 1e-12)
	assert.Equal(t, eval.Undefined, eval.Specificity.Score(eval.Confusion{TP: 3}))
}
