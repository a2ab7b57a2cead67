package corpus

import (
	"crypto/sha1"
	"encoding/hex"
	"github.com/hashicorp/golang-lru"
	"github.com/hscells/wat/preprocess"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"net/url"
	"strings"
)

// Tokeniser resolves a document identifier to the normalised tokens of its body.
type Tokeniser interface {
	BodyTokens(documentID string) ([]string, error)
}

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// CanonURL puts a document URL into canonical form: the scheme and host are lowercased, default ports, fragments and
// trailing slashes are removed. Identifiers that are not absolute URLs are only trimmed.
func CanonURL(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil || len(u.Scheme) == 0 || len(u.Host) == 0 {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if port := u.Port(); len(port) > 0 && !(u.Scheme == "http" && port == "80") && !(u.Scheme == "https" && port == "443") {
		host += ":" + port
	}
	u.Host = host
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String()
}

// DocumentStore keeps the raw bodies of documents on disk, keyed by canonical URL.
type DocumentStore struct {
	dv *diskv.Diskv
}

// NewDocumentStore opens (or creates) a document store in a directory.
func NewDocumentStore(dir string) *DocumentStore {
	return &DocumentStore{
		dv: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    BlockTransform(8),
			CacheSizeMax: 4096 * 1024,
			Compression:  diskv.NewGzipCompression(),
		}),
	}
}

func documentKey(documentID string) string {
	h := sha1.Sum([]byte(CanonURL(documentID)))
	return hex.EncodeToString(h[:])
}

// Put stores the body of a document.
func (s *DocumentStore) Put(documentID string, body []byte) error {
	return errors.Wrapf(s.dv.Write(documentKey(documentID), body), "storing %s", documentID)
}

// Get reads the body of a document.
func (s *DocumentStore) Get(documentID string) ([]byte, error) {
	key := documentKey(documentID)
	if !s.dv.Has(key) {
		return nil, errors.Wrap(ErrUnknownDocument, documentID)
	}
	b, err := s.dv.Read(key)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", documentID)
	}
	return b, nil
}

// Has reports whether the body of a document is stored.
func (s *DocumentStore) Has(documentID string) bool {
	return s.dv.Has(documentKey(documentID))
}

// StoreTokeniser tokenises documents from a DocumentStore. Bodies that look like markup have their text extracted
// first. Token lists are kept in a fixed-size LRU cache.
type StoreTokeniser struct {
	store *DocumentStore
	cache *lru.Cache
}

// NewStoreTokeniser creates a tokeniser that caches the tokens of up to size documents.
func NewStoreTokeniser(store *DocumentStore, size int) (*StoreTokeniser, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &StoreTokeniser{store: store, cache: c}, nil
}

// BodyTokens returns the normalised tokens of a document body.
func (t *StoreTokeniser) BodyTokens(documentID string) ([]string, error) {
	id := CanonURL(documentID)
	if v, ok := t.cache.Get(id); ok {
		return v.([]string), nil
	}
	b, err := t.store.Get(id)
	if err != nil {
		return nil, err
	}
	body := string(b)
	if looksLikeMarkup(body) {
		body, err = preprocess.Markup(body)
		if err != nil {
			return nil, errors.Wrapf(err, "tokenising %s", documentID)
		}
	}
	tokens := preprocess.Tokens(body)
	t.cache.Add(id, tokens)
	return tokens, nil
}

func looksLikeMarkup(body string) bool {
	s := strings.TrimSpace(body)
	return strings.HasPrefix(s, "<") && strings.Contains(s, ">")
}
