// Package output provides different formats of output for experiments.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"github.com/hscells/wat/eval"
	"sort"
	"strconv"
)

// EvaluationFormatter is used in a session to output the evaluation of a classifier for a class.
type EvaluationFormatter func(class string, r eval.Result) (string, error)

// JsonEvaluationFormatter outputs an evaluation in a JSON format. Undefined measures are null.
func JsonEvaluationFormatter(class string, r eval.Result) (string, error) {
	v, err := json.MarshalIndent(map[string]eval.Result{class: r}, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs an evaluation in CSV format: a header row and one row for the class. Additional
// measures follow the standard columns in name order.
func CsvEvaluationFormatter(class string, r eval.Result) (string, error) {
	names := make([]string, 0, len(r.Measures))
	for name := range r.Measures {
		names = append(names, name)
	}
	sort.Strings(names)

	h := []string{"Class", "TruePositive", "TrueNegative", "FalsePositive", "FalseNegative", "Precision", "Recall", "F1Measure", "Accuracy"}
	h = append(h, names...)
	record := []string{
		class,
		strconv.Itoa(r.TP),
		strconv.Itoa(r.TN),
		strconv.Itoa(r.FP),
		strconv.Itoa(r.FN),
		r.Precision.String(),
		r.Recall.String(),
		r.F1.String(),
		strconv.FormatFloat(r.Accuracy, 'f', -1, 64),
	}
	for _, name := range names {
		record = append(record, r.Measures[name].String())
	}

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	if err := w.Write(h); err != nil {
		return "", err
	}
	if err := w.Write(record); err != nil {
		return "", err
	}
	w.Flush()
	return b.String(), w.Error()
}
