package dataset

// Partition is three contiguous, non-overlapping slices of a dataset.
type Partition struct {
	Training   Dataset
	Test       Dataset
	Validation Dataset
}

// Allocate slices the dataset into training, test and validation sets of the requested sizes, in that order.
// Requested sizes that exceed the available data are truncated, possibly to empty slices; negative sizes count as
// zero. No randomness is involved, the dataset is expected to have been shuffled already.
func Allocate(d Dataset, train, test, validate int) Partition {
	n := len(d)
	a := clamp(train, 0, n)
	b := a + clamp(test, 0, n-a)
	c := b + clamp(validate, 0, n-b)
	return Partition{
		Training:   d[0:a:a],
		Test:       d[a:b:b],
		Validation: d[b:c:c],
	}
}

// Sizes returns the length of each slice.
func (p Partition) Sizes() (train, test, validate int) {
	return len(p.Training), len(p.Test), len(p.Validation)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
