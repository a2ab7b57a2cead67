package main

import (
	"fmt"
	"github.com/alexflint/go-arg"
	"github.com/hscells/wat"
	"github.com/hscells/wat/corpus"
	"github.com/hscells/wat/eval"
	"github.com/hscells/wat/inference"
	"github.com/hscells/wat/output"
	"github.com/hscells/wat/persist"
	"github.com/pkg/errors"
	"io/ioutil"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	name    = "wat_learn"
	version = "17.Oct.2026"
	author  = "Harry Scells"
)

type args struct {
	Name       string  `help:"name, tag of positive class" arg:"-n,--name,required"`
	Load       bool    `help:"load the classifier instead of training it" arg:"-l,--load"`
	Save       bool    `help:"save the classifier after training it" arg:"-s,--save"`
	Verbose    bool    `help:"report stages and timings" arg:"-v,--verbose"`
	Indicator  string  `help:"feature extractor to train with" arg:"-i,--indicator" default:"cs"`
	Type       string  `help:"input type of --apply (text, markup or html)" arg:"-t,--type" default:"text"`
	Train      int     `help:"training set size" arg:"--train" default:"800"`
	Test       int     `help:"test set size" arg:"--test" default:"100"`
	Validate   int     `help:"validation set size" arg:"--validate" default:"100"`
	Apply      *string `help:"text to classify, - to read standard input" arg:"--apply"`
	Config     string  `help:"path to configuration file" arg:"-c,--config" default:"wat.properties"`
	Evaluation string  `help:"write the evaluation to this file (.json or .csv)" arg:"-e,--evaluation"`
	Progress   bool    `help:"draw a progress bar while labelling" arg:"-p,--progress"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s`, name, author, version)
}

func fatal(logger *slog.Logger, err error) {
	var stack interface{ ErrorStack() string }
	if errors.As(err, &stack) {
		fmt.Fprintln(os.Stderr, stack.ErrorStack())
	}
	logger.Error(err.Error())
	os.Exit(1)
}

func main() {
	var args args
	p := arg.MustParse(&args)

	c, err := wat.LoadConfig(args.Config)
	if err != nil {
		p.Fail(err.Error())
	}
	if !c.HasClass(args.Name) {
		p.Fail(fmt.Sprintf("invalid choice %q for --name (choose from %s)", args.Name, strings.Join(c.Classes, ", ")))
	}
	kind, err := inference.ParseKind(args.Type)
	if err != nil {
		p.Fail(err.Error())
	}
	var formatter output.EvaluationFormatter
	switch ext := filepath.Ext(args.Evaluation); ext {
	case "":
	case ".json":
		formatter = output.JsonEvaluationFormatter
	case ".csv":
		formatter = output.CsvEvaluationFormatter
	default:
		p.Fail(fmt.Sprintf("unknown evaluation format %q", ext))
	}

	logger := wat.ConfigureLogging(args.Verbose)

	tags, err := corpus.LoadTagFile(c.Tags)
	if err != nil {
		fatal(logger, err)
	}
	tokeniser, err := corpus.NewStoreTokeniser(corpus.NewDocumentStore(c.Documents), c.TokenCache)
	if err != nil {
		fatal(logger, err)
	}

	options := []wat.SessionOption{
		wat.Logger(logger),
		wat.Verbose(args.Verbose),
		wat.Seed(c.Seed),
		wat.Indicator(args.Indicator),
		wat.Sizes(args.Train, args.Test, args.Validate),
		wat.Persistence(persist.NewStore(c.Artifacts)),
		wat.Load(args.Load),
		wat.Save(args.Save),
		wat.Input(kind),
		wat.Measures(eval.F05Measure, eval.F3Measure, eval.Specificity, eval.NNR, eval.WSS),
	}
	if args.Apply != nil && len(*args.Apply) > 0 {
		options = append(options, wat.Apply(*args.Apply))
	}
	if args.Progress {
		options = append(options, wat.Progress(os.Stderr))
	}

	report, err := wat.NewSession(args.Name, tags, tokeniser, options...).Execute()
	if err != nil {
		fatal(logger, err)
	}

	if formatter != nil && report.Evaluation != nil {
		s, err := formatter(args.Name, *report.Evaluation)
		if err != nil {
			fatal(logger, err)
		}
		if err := ioutil.WriteFile(args.Evaluation, []byte(s), 0664); err != nil {
			fatal(logger, err)
		}
	}

	if report.Inference != nil {
		s, err := output.JsonResultFormatter(*report.Inference)
		if err != nil {
			fatal(logger, err)
		}
		fmt.Println(s)
	}
}
