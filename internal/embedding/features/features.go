// Package features derives a small fixed-size feature vector from a
// dictionary definition.
package features

import (
	"strings"
)

// Dimension is the length of every feature vector.
const Dimension = 5

// Slot indexes of the feature vector.
const (
	SlotTokenCount = iota
	SlotAvgTokenLength
	SlotSensoryRatio
	SlotAbstractRatio
	SlotVariety
)

// Config holds the word sets and weights of the extractor.
type Config struct {
	SensoryWords   []string
	AbstractWords  []string
	UniqueWeight   float64
	SyllableWeight float64
}

// Extractor maps definition text to a feature vector. It holds no per-call
// state and is safe for concurrent use.
type Extractor struct {
	sensory        map[string]struct{}
	abstract       map[string]struct{}
	uniqueWeight   float64
	syllableWeight float64
}

// NewExtractor creates an extractor from the given word sets and weights.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{
		sensory:        wordSet(cfg.SensoryWords),
		abstract:       wordSet(cfg.AbstractWords),
		uniqueWeight:   cfg.UniqueWeight,
		syllableWeight: cfg.SyllableWeight,
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Extractor) Name() string { return "features" }

// Prepare is a no-op; the extractor needs no corpus statistics.
func (e *Extractor) Prepare(corpus []string) error { return nil }

// Dimension returns the dimensionality of the produced vectors.
func (e *Extractor) Dimension() int { return Dimension }

// Embed returns Extract(text). It never fails.
func (e *Extractor) Embed(text string) ([]float64, error) {
	return e.Extract(text), nil
}

// Extract computes the feature vector of a definition:
// token count, average token length, sensory ratio, abstract ratio and a
// variety score mixing the distinct-token ratio with multi-syllable density.
// Text without letters yields the zero vector.
func (e *Extractor) Extract(definition string) []float64 {
	vec := make([]float64, Dimension)
	tokens := Tokenize(definition)
	if len(tokens) == 0 {
		return vec
	}

	total := float64(len(tokens))
	letters, sensory, abstract, multi := 0, 0, 0, 0
	distinct := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		letters += len(tok)
		if _, ok := e.sensory[tok]; ok {
			sensory++
		}
		if _, ok := e.abstract[tok]; ok {
			abstract++
		}
		if Syllables(tok) > 1 {
			multi++
		}
		distinct[tok] = struct{}{}
	}

	vec[SlotTokenCount] = total
	vec[SlotAvgTokenLength] = float64(letters) / total
	vec[SlotSensoryRatio] = float64(sensory) / total
	vec[SlotAbstractRatio] = float64(abstract) / total
	vec[SlotVariety] = e.uniqueWeight*float64(len(distinct))/total + e.syllableWeight*float64(multi)/total
	return vec
}

// Tokenize lowercases text and splits it into runs of ASCII letters.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})
}

// Syllables estimates the syllable count of a lowercase token by counting
// maximal vowel groups (y counts as a vowel). A final e after a consonant is
// silent unless it is the only group.
func Syllables(token string) int {
	groups := 0
	inGroup := false
	for i := 0; i < len(token); i++ {
		if isVowel(token[i]) {
			if !inGroup {
				groups++
			}
			inGroup = true
		} else {
			inGroup = false
		}
	}
	n := len(token)
	if groups > 1 && n >= 2 && token[n-1] == 'e' && !isVowel(token[n-2]) {
		groups--
	}
	return groups
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func wordSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return m
}
