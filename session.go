// Package wat provides a framework for reproducible binary text classification experiments. A Session labels a
// tagged corpus for one class, partitions it, trains (or loads) a classifier, and then tests, saves and applies it.
package wat

import (
	"github.com/google/uuid"
	"github.com/hscells/wat/classifier"
	"github.com/hscells/wat/corpus"
	"github.com/hscells/wat/dataset"
	"github.com/hscells/wat/eval"
	"github.com/hscells/wat/feature"
	"github.com/hscells/wat/inference"
	"github.com/hscells/wat/persist"
	"github.com/hscells/wat/preprocess"
	"github.com/pkg/errors"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"
)

// ErrNoPersistence is returned when a session is asked to load or save without an artifact store.
var ErrNoPersistence = errors.New("no artifact store configured")

// Session contains everything needed to run one experiment for one class. Sessions share nothing, so many can
// run in the same process.
type Session struct {
	Class     string
	Tags      corpus.TagStore
	Tokeniser corpus.Tokeniser

	run        string
	indicator  string
	registry   *feature.Registry
	train      int
	test       int
	validate   int
	store      *persist.Store
	load       bool
	save       bool
	applying   bool
	input      string
	kind       inference.Kind
	stdin      io.Reader
	markup     preprocess.Extractor
	trainer    classifier.Trainer
	evaluators []eval.Evaluator
	logger     *slog.Logger
	seed       int64
	verbose    bool
	progress   io.Writer
}

// SessionOption configures a session.
type SessionOption func(s *Session)

// Sizes sets the number of examples in the training, test and validation sets.
func Sizes(train, test, validate int) SessionOption {
	return func(s *Session) {
		s.train = train
		s.test = test
		s.validate = validate
	}
}

// Indicator names the feature extractor to train with. An indicator that is not registered falls back to the
// classifier's default feature extraction.
func Indicator(name string) SessionOption {
	return func(s *Session) {
		s.indicator = name
	}
}

// Extractors sets the registry indicators are looked up in.
func Extractors(registry *feature.Registry) SessionOption {
	return func(s *Session) {
		s.registry = registry
	}
}

// Persistence sets the artifact store classifiers are loaded from and saved to.
func Persistence(store *persist.Store) SessionOption {
	return func(s *Session) {
		s.store = store
	}
}

// Load loads the classifier from the artifact store instead of training it.
func Load(load bool) SessionOption {
	return func(s *Session) {
		s.load = load
	}
}

// Save saves the classifier to the artifact store.
func Save(save bool) SessionOption {
	return func(s *Session) {
		s.save = save
	}
}

// Apply classifies input once the classifier has been built. An input of inference.Stdin reads standard input.
// An empty input applies nothing.
func Apply(input string) SessionOption {
	return func(s *Session) {
		s.applying = len(input) > 0
		s.input = input
	}
}

// Input sets the kind of input being applied.
func Input(kind inference.Kind) SessionOption {
	return func(s *Session) {
		s.kind = kind
	}
}

// Stdin sets the reader standard input is read from.
func Stdin(r io.Reader) SessionOption {
	return func(s *Session) {
		s.stdin = r
	}
}

// MarkupExtractor sets how text is extracted from markup input.
func MarkupExtractor(extractor preprocess.Extractor) SessionOption {
	return func(s *Session) {
		s.markup = extractor
	}
}

// Trainer sets how classifiers are trained.
func Trainer(trainer classifier.Trainer) SessionOption {
	return func(s *Session) {
		s.trainer = trainer
	}
}

// Measures adds evaluation measures to those reported when testing.
func Measures(evaluators ...eval.Evaluator) SessionOption {
	return func(s *Session) {
		s.evaluators = append(s.evaluators, evaluators...)
	}
}

// Logger sets where diagnostics are written.
func Logger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// Seed sets the seed of the random source used to shuffle the dataset.
func Seed(seed int64) SessionOption {
	return func(s *Session) {
		s.seed = seed
	}
}

// Verbose enables stage reporting and timings.
func Verbose(verbose bool) SessionOption {
	return func(s *Session) {
		s.verbose = verbose
	}
}

// Progress draws a progress bar to w while labelling.
func Progress(w io.Writer) SessionOption {
	return func(s *Session) {
		s.progress = w
	}
}

// NewSession creates a session for a class. The tag store and tokeniser are required; everything else is
// configured with options.
func NewSession(class string, tags corpus.TagStore, tokeniser corpus.Tokeniser, options ...SessionOption) *Session {
	s := &Session{
		Class:     class,
		Tags:      tags,
		Tokeniser: tokeniser,
		run:       uuid.New().String(),
		indicator: "cs",
		registry:  feature.DefaultRegistry(),
		train:     800,
		test:      100,
		validate:  100,
		kind:      inference.Text,
		stdin:     os.Stdin,
		markup:    preprocess.Markup,
		trainer:   classifier.Train,
		seed:      10,
	}
	for _, option := range options {
		option(s)
	}
	if s.logger == nil {
		s.logger = NewLogger(os.Stderr, s.verbose)
	}
	s.logger = s.logger.With("run", s.run, "class", s.Class)
	return s
}

// Run identifies the session.
func (s *Session) Run() string {
	return s.run
}

// Key identifies the artifact of the session's classifier.
func (s *Session) Key() persist.Key {
	return persist.Key{Class: s.Class, Indicator: s.indicator}
}

// Extractor is the feature extractor the session trains with, or nil for the default feature extraction.
func (s *Session) Extractor() feature.Extractor {
	extractor, ok := s.registry.Lookup(s.indicator)
	if !ok {
		return nil
	}
	return extractor
}

// Report is the outcome of executing a session.
type Report struct {
	Run        string            `json:"run"`
	Class      string            `json:"class"`
	Indicator  string            `json:"indicator"`
	Documents  int               `json:"documents"`
	Training   int               `json:"training"`
	Test       int               `json:"test"`
	Validation int               `json:"validation"`
	Artifact   string            `json:"artifact,omitempty"`
	Evaluation *eval.Result      `json:"evaluation,omitempty"`
	Inference  *inference.Result `json:"inference,omitempty"`
}

func (s *Session) stage(name string) {
	if s.verbose {
		s.logger.Info(name)
	}
}

// Execute runs the session: the corpus is labelled and partitioned, a classifier is trained or loaded, and then it
// is tested, saved, validated and applied as configured.
func (s *Session) Execute() (Report, error) {
	report := Report{
		Run:       s.run,
		Class:     s.Class,
		Indicator: s.indicator,
	}
	if (s.load || s.save) && s.store == nil {
		return report, ErrNoPersistence
	}

	s.stage("INITIALIZING")
	extractor := s.Extractor()
	if extractor == nil {
		s.logger.Debug("no feature extractor registered, using default extraction", "indicator", s.indicator)
	}

	d, err := s.label()
	if err != nil {
		return report, err
	}
	p := dataset.Allocate(d, s.train, s.test, s.validate)
	report.Documents = len(d)
	report.Training, report.Test, report.Validation = p.Sizes()

	var model classifier.Model
	if s.load {
		s.stage("LOADING")
		model, err = s.loadModel(extractor)
	} else {
		s.stage("BUILDING")
		model, err = s.trainModel(p.Training, extractor)
	}
	if err != nil {
		return report, err
	}

	if s.test > 0 {
		s.stage("TESTING")
		r, err := eval.Evaluate(model, p.Test, s.evaluators...)
		if err != nil {
			return report, err
		}
		s.logger.Info("evaluation",
			"true_positive", r.TP, "true_negative", r.TN, "false_positive", r.FP, "false_negative", r.FN,
			"precision", r.Precision, "recall", r.Recall, "f1", r.F1, "accuracy", r.Accuracy)
		if !r.Agrees() {
			s.logger.Warn("accuracy disagrees with confusion counts", "accuracy", r.Accuracy, "total", r.Total())
		}
		report.Evaluation = &r
	}

	if s.save {
		s.stage("SAVING")
		path, err := s.saveModel(model)
		if err != nil {
			return report, err
		}
		report.Artifact = path
	}

	if s.validate > 0 {
		s.stage("VALIDATING")
		s.logger.Warn("validation not implemented", "size", report.Validation)
	}

	if s.applying {
		s.stage("APPLYING")
		r, err := s.applyModel(model)
		if err != nil {
			return report, err
		}
		report.Inference = &r
	}

	return report, nil
}

func (s *Session) label() (dataset.Dataset, error) {
	s.logger.Debug("loading and labelling texts")
	t := StartTimer(s.logger, "labelling texts", s.verbose)
	defer t.Stop()

	var options []corpus.LabelOption
	if s.progress != nil {
		options = append(options, corpus.WithProgress(s.progress))
	}
	d, err := corpus.Label(s.Tags, s.Tokeniser, s.Class, rand.New(rand.NewSource(s.seed)), options...)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("finished labelling texts", "texts", len(d), "positive", d.Count(dataset.Positive))
	return d, nil
}

func (s *Session) trainModel(training dataset.Dataset, extractor feature.Extractor) (classifier.Model, error) {
	t := StartTimer(s.logger, "training "+s.Class+" classifier", s.verbose)
	defer t.Stop()

	model, err := s.trainer(training, extractor)
	if err != nil {
		return nil, errors.Wrapf(err, "training %s classifier", s.Class)
	}
	s.logger.Debug("trained classifier", "model", model.Type(), "examples", len(training))
	return model, nil
}

func (s *Session) loadModel(extractor feature.Extractor) (classifier.Model, error) {
	t := StartTimer(s.logger, "loading "+s.Class+" "+s.indicator+" classifier", s.verbose)
	defer t.Stop()

	model, meta, err := s.store.Load(s.Key(), extractor)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded classifier", "path", s.store.Path(s.Key()), "model", model.Type(), "trained_by", meta.Run, "created", meta.Created)
	return model, nil
}

func (s *Session) saveModel(model classifier.Model) (string, error) {
	t := StartTimer(s.logger, "saving "+s.Class+" "+s.indicator+" classifier", s.verbose)
	defer t.Stop()

	path, err := s.store.Save(model, s.Key(), persist.Meta{Run: s.run, Created: time.Now().UTC()})
	if err != nil {
		return "", err
	}
	s.logger.Info("saved classifier", "path", path, "model", model.Type())
	return path, nil
}

func (s *Session) applyModel(model classifier.Model) (inference.Result, error) {
	t := StartTimer(s.logger, "applying "+s.Class+" "+s.indicator+" classifier", s.verbose)
	defer t.Stop()

	return inference.Apply(model, s.Class, s.input, s.kind,
		inference.WithStdin(s.stdin),
		inference.WithExtractor(s.markup))
}
