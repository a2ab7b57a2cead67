package output

import (
	"encoding/json"
	"github.com/hscells/wat/inference"
)

// ResultFormatter is used in a session to output the result of applying a classifier.
type ResultFormatter func(r inference.Result) (string, error)

// JsonResultFormatter outputs the result of applying a classifier in a JSON format.
func JsonResultFormatter(r inference.Result) (string, error) {
	v, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}
