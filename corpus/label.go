package corpus

import (
	"github.com/cheggaaa/pb/v3"
	"github.com/hscells/wat/dataset"
	"github.com/pkg/errors"
	"io"
	"math/rand"
	"strings"
)

type labeler struct {
	progress io.Writer
}

// LabelOption configures a labelling run.
type LabelOption func(l *labeler)

// WithProgress draws a progress bar to w while documents are tokenised.
func WithProgress(w io.Writer) LabelOption {
	return func(l *labeler) {
		l.progress = w
	}
}

// Label builds a dataset of every document in the tag store. The text of an example is the body tokens of the
// document joined by single spaces, and it is labelled positive if the document has been tagged with positiveClass.
// The dataset is shuffled once with r before it is returned.
func Label(tags TagStore, tok Tokeniser, positiveClass string, r *rand.Rand, options ...LabelOption) (dataset.Dataset, error) {
	l := &labeler{}
	for _, option := range options {
		option(l)
	}

	ids, err := tags.Documents()
	if err != nil {
		return nil, errors.Wrap(err, "listing tagged documents")
	}

	var bar *pb.ProgressBar
	if l.progress != nil {
		bar = pb.New(len(ids)).SetWriter(l.progress)
		bar.Start()
		defer bar.Finish()
	}

	d := make(dataset.Dataset, 0, len(ids))
	for _, id := range ids {
		t, err := tags.Tags(id)
		if err != nil {
			return nil, err
		}
		tokens, err := tok.BodyTokens(id)
		if err != nil {
			return nil, errors.Wrapf(err, "labelling %s", id)
		}
		d = append(d, dataset.NewExample(strings.Join(tokens, " "), HasTag(t, positiveClass)))
		if bar != nil {
			bar.Increment()
		}
	}

	d.Shuffle(r)
	return d, nil
}
