// Package dataset contains labelled examples and the deterministic partitioning of them into training, test and
// validation sets.
package dataset

import (
	"math/rand"
)

// Label is the binary class assigned to an example.
type Label string

const (
	// Positive examples belong to the positive class.
	Positive Label = "pos"
	// Negative examples belong to anything but the positive class.
	Negative Label = "neg"
)

// Valid reports whether the label is one of the two binary labels.
func (l Label) Valid() bool {
	return l == Positive || l == Negative
}

// Example is a document text paired with its label.
type Example struct {
	Text  string
	Label Label
}

// NewExample labels text as positive or negative.
func NewExample(text string, positive bool) Example {
	if positive {
		return Example{Text: text, Label: Positive}
	}
	return Example{Text: text, Label: Negative}
}

// Dataset is an ordered sequence of examples.
type Dataset []Example

// Shuffle permutes the dataset in place. The same source of randomness in the same state always produces the same
// permutation.
func (d Dataset) Shuffle(r *rand.Rand) {
	r.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Count returns the number of examples with the label.
func (d Dataset) Count(label Label) int {
	var n int
	for _, e := range d {
		if e.Label == label {
			n++
		}
	}
	return n
}
