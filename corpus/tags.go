// Package corpus provides the tagged documents classifiers are trained on: the store of tags per document, the
// store of document bodies, the tokeniser that turns a document into normalised body tokens, and the labelling of
// documents into a dataset.
package corpus

import (
	"encoding/json"
	"github.com/pkg/errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
)

// TagStore maps document identifiers to the tags of the document.
type TagStore interface {
	// Documents lists every document identifier. The order is the same each time the same data is listed.
	Documents() ([]string, error)
	// Tags returns the tags of a document.
	Tags(documentID string) ([]string, error)
}

// ErrUnknownDocument is returned for a document identifier that is not in a store.
var ErrUnknownDocument = errors.New("unknown document")

// MapTagStore is a TagStore held in memory. It is read from and written to JSON files of the form
// {"<document id>": ["tag", ...], ...}.
type MapTagStore struct {
	tags map[string][]string
}

// NewMapTagStore creates a store from a map of document identifiers to tags.
func NewMapTagStore(tags map[string][]string) *MapTagStore {
	if tags == nil {
		tags = make(map[string][]string)
	}
	return &MapTagStore{tags: tags}
}

// LoadTagFile reads a JSON tag file.
func LoadTagFile(path string) (*MapTagStore, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading tag file")
	}
	var tags map[string][]string
	if err := json.Unmarshal(b, &tags); err != nil {
		return nil, errors.Wrapf(err, "decoding tag file %s", path)
	}
	return NewMapTagStore(tags), nil
}

// Documents lists the document identifiers in sorted order.
func (s *MapTagStore) Documents() ([]string, error) {
	ids := make([]string, 0, len(s.tags))
	for id := range s.tags {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Tags returns the tags of a document.
func (s *MapTagStore) Tags(documentID string) ([]string, error) {
	t, ok := s.tags[documentID]
	if !ok {
		return nil, errors.Wrap(ErrUnknownDocument, documentID)
	}
	return t, nil
}

// Add adds tags to a document, adding the document if it is new. Tags the document already has are skipped.
func (s *MapTagStore) Add(documentID string, tags ...string) {
	existing, ok := s.tags[documentID]
	if !ok {
		existing = []string{}
	}
	for _, tag := range tags {
		if !HasTag(existing, tag) {
			existing = append(existing, tag)
		}
	}
	s.tags[documentID] = existing
}

// Len is the number of documents in the store.
func (s *MapTagStore) Len() int {
	return len(s.tags)
}

// WriteFile writes the store as a JSON tag file.
func (s *MapTagStore) WriteFile(path string) error {
	b, err := json.MarshalIndent(s.tags, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); len(dir) > 0 {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return err
		}
	}
	return ioutil.WriteFile(path, b, 0664)
}

// HasTag reports whether tag is one of tags.
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
