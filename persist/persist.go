// Package persist stores trained classifiers on disk so that later runs can load them instead of training.
//
// Artifacts are gzip compressed JSON envelopes, one file per (class, indicator) pair:
//
//	<artifacts>/<class>_<indicator>_classifier.json.gz
//
// The envelope records the format name and version, the type of model it holds and the run that produced it. The
// model itself is the payload, encoded by the classifier package.
package persist

import (
	"encoding/json"
	"fmt"
	"github.com/hscells/wat/classifier"
	"github.com/hscells/wat/feature"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"path/filepath"
	"time"
)

const (
	// Format identifies classifier artifacts.
	Format = "wat-classifier"
	// Version is the version of the envelope written by Save. Load accepts only this version.
	Version = 1

	extension = ".json.gz"
)

var (
	// ErrNoArtifact is returned when loading a key that has never been saved.
	ErrNoArtifact = errors.New("no classifier artifact")
	// ErrArtifactFormat is returned for a file that is not a classifier artifact.
	ErrArtifactFormat = errors.New("malformed classifier artifact")
	// ErrArtifactVersion is returned for an artifact written by an incompatible version.
	ErrArtifactVersion = errors.New("unsupported classifier artifact version")
)

// Key identifies a classifier artifact.
type Key struct {
	Class     string
	Indicator string
}

// Name is the file stem of the artifact. A key without an indicator names the classifier trained with the
// default feature extraction, so it shares its name with the indicator "default".
func (k Key) Name() string {
	indicator := k.Indicator
	if len(indicator) == 0 {
		indicator = "default"
	}
	return fmt.Sprintf("%s_%s_classifier", k.Class, indicator)
}

// Meta is the provenance of an artifact.
type Meta struct {
	Run     string    `json:"run"`
	Created time.Time `json:"created"`
}

type envelope struct {
	Format    string          `json:"format"`
	Version   int             `json:"version"`
	ModelType string          `json:"model_type"`
	Class     string          `json:"class"`
	Indicator string          `json:"indicator"`
	Run       string          `json:"run"`
	Created   time.Time       `json:"created"`
	Payload   json.RawMessage `json:"payload"`
}

// Store is a directory of classifier artifacts.
type Store struct {
	dir string
	dv  *diskv.Diskv
}

// NewStore opens (or creates) an artifact store in a directory.
func NewStore(dir string) *Store {
	return &Store{
		dir: dir,
		dv: diskv.New(diskv.Options{
			BasePath: dir,
			Transform: func(s string) []string {
				return []string{}
			},
			CacheSizeMax: 1024 * 1024,
			Compression:  diskv.NewGzipCompression(),
		}),
	}
}

// Path is the file an artifact is written to.
func (s *Store) Path(k Key) string {
	return filepath.Join(s.dir, k.Name()+extension)
}

// Has reports whether an artifact exists.
func (s *Store) Has(k Key) bool {
	return s.dv.Has(k.Name() + extension)
}

// Save writes a model to the artifact for k, replacing any previous artifact. It returns the path written to.
func (s *Store) Save(model classifier.Model, k Key, meta Meta) (string, error) {
	payload, err := model.Marshal()
	if err != nil {
		return "", errors.Wrapf(err, "encoding %s model", model.Type())
	}
	b, err := json.Marshal(envelope{
		Format:    Format,
		Version:   Version,
		ModelType: model.Type(),
		Class:     k.Class,
		Indicator: k.Indicator,
		Run:       meta.Run,
		Created:   meta.Created,
		Payload:   payload,
	})
	if err != nil {
		return "", err
	}
	if err := s.dv.Write(k.Name()+extension, b); err != nil {
		return "", errors.Wrapf(err, "writing %s", s.Path(k))
	}
	return s.Path(k), nil
}

// Load reads the artifact for k. The extractor must be the one the model was trained with; it is not needed for
// models trained with the default extraction.
func (s *Store) Load(k Key, extractor feature.Extractor) (classifier.Model, Meta, error) {
	path := s.Path(k)
	if !s.Has(k) {
		return nil, Meta{}, errors.Wrap(ErrNoArtifact, path)
	}
	b, err := s.dv.Read(k.Name() + extension)
	if err != nil {
		return nil, Meta{}, errors.Wrapf(ErrArtifactFormat, "%s: %v", path, err)
	}

	var e envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, Meta{}, errors.Wrapf(ErrArtifactFormat, "%s: %v", path, err)
	}
	if e.Format != Format {
		return nil, Meta{}, errors.Wrapf(ErrArtifactFormat, "%s: format %q", path, e.Format)
	}
	if e.Version != Version {
		return nil, Meta{}, errors.Wrapf(ErrArtifactVersion, "%s: version %d", path, e.Version)
	}
	if stored := (Key{Class: e.Class, Indicator: e.Indicator}); stored.Name() != k.Name() {
		return nil, Meta{}, errors.Wrapf(ErrArtifactFormat, "%s: holds the %s %s classifier", path, e.Class, e.Indicator)
	}

	model, err := classifier.Decode(e.ModelType, e.Payload, extractor)
	if err != nil {
		return nil, Meta{}, errors.Wrapf(err, "decoding %s", path)
	}
	return model, Meta{Run: e.Run, Created: e.Created}, nil
}
