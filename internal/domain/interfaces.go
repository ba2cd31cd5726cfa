package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned when a "kind:text" string cannot be parsed.
var ErrInvalidKey = errors.New("invalid morpheme key")

// Kind classifies a morpheme by its position in the word.
// The declaration order is the sort order used in reports.
type Kind int

const (
	Prefix Kind = iota
	Root
	Suffix
)

// String returns the lowercase label used in rendered output.
func (k Kind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Root:
		return "root"
	case Suffix:
		return "suffix"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prefix":
		return Prefix, nil
	case "root":
		return Root, nil
	case "suffix":
		return Suffix, nil
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidKey, s)
}

// Morpheme is a tagged piece of a segmented word.
type Morpheme struct {
	Kind Kind
	Text string
}

// Display renders the morpheme as kind(text).
func (m Morpheme) Display() string {
	return m.Kind.String() + "(" + m.Text + ")"
}

// Key returns the aggregation identity of the morpheme.
func (m Morpheme) Key() Key {
	return Key{Kind: m.Kind, Text: m.Text}
}

// Key identifies a morpheme across words: two occurrences with the same kind
// and text are the same morpheme.
type Key struct {
	Kind Kind
	Text string
}

// String renders the key as kind:text.
func (k Key) String() string {
	return k.Kind.String() + ":" + k.Text
}

// Less orders keys by kind, then text.
func (k Key) Less(other Key) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	return k.Text < other.Text
}

// ParseKey parses "kind:text" as produced by Key.String.
func ParseKey(s string) (Key, error) {
	kind, text, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || text == "" {
		return Key{}, fmt.Errorf("%w: %q (want kind:text)", ErrInvalidKey, s)
	}
	k, err := ParseKind(kind)
	if err != nil {
		return Key{}, err
	}
	return Key{Kind: k, Text: strings.ToLower(text)}, nil
}

// Embedding is the mean feature vector of a morpheme over all its occurrences.
type Embedding struct {
	Key    Key
	Vector []float64
	Count  int
}

// WordReport is the per-word outcome of a pipeline run.
type WordReport struct {
	Word       string
	Morphemes  []Morpheme
	Definition string
	Features   []float64
}

// Report is the full outcome of a pipeline run.
type Report struct {
	Words      []WordReport
	Missing    []string
	Matched    int
	Dimension  int
	Embeddings []Embedding
}

// SearchResult is a morpheme ranked by similarity to a query morpheme.
type SearchResult struct {
	Embedding Embedding
	Score     float64
}

// Segmenter splits a word into morphemes.
type Segmenter interface {
	Segment(word string) []Morpheme
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Dictionary maps words to definitions.
type Dictionary interface {
	Lookup(word string) (string, bool)
	Words() []string
}

// VectorStore keeps morpheme embeddings and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(embeddings []Embedding) error
	Get(key Key) (Embedding, bool)
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// Service defines the operations exposed by the application core.
type Service interface {
	Process(words []string) (*Report, error)
	Similar(key Key, topK int) ([]SearchResult, error)
}
