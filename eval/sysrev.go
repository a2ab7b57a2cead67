package eval

var (
	// NNR computes the number of documents needed to read.
	// Or in other words, the number of documents classified positive per true positive.
	NNR = numberNeededToRead{}
	// WSS computes the work saved over sampling at the recall the classifier achieves.
	WSS = workSavedOverSampling{}
	// Specificity is the fraction of negative examples classified negative.
	Specificity = specificity{}
)

type numberNeededToRead struct{}

type workSavedOverSampling struct{}

type specificity struct{}

func (n numberNeededToRead) Score(c Confusion) Score {
	return Ratio(float64(c.TP+c.FP+1), float64(c.TP+1))
}

func (n numberNeededToRead) Name() string {
	return "NNR"
}

func (w workSavedOverSampling) Score(c Confusion) Score {
	r := Recall.Score(c)
	if !r.Defined || c.Total() == 0 {
		return Undefined
	}
	return Score{Value: float64(c.TN+c.FN)/float64(c.Total()) - (1 - r.Value), Defined: true}
}

func (w workSavedOverSampling) Name() string {
	return "WSS"
}

func (s specificity) Score(c Confusion) Score {
	return Ratio(float64(c.TN), float64(c.TN+c.FP))
}

func (s specificity) Name() string {
	return "Specificity"
}
