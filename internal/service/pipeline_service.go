package service

import (
	"errors"
	"fmt"

	"morphemb/internal/accumulator"
	"morphemb/internal/dictionary"
	"morphemb/internal/domain"
	"morphemb/internal/logger"
)

var (
	// ErrNoWords is returned by Process when no words were supplied.
	ErrNoWords = errors.New("no words supplied")
	// ErrNoMatches is returned by Process, together with the partial
	// report, when none of the words had a dictionary entry.
	ErrNoMatches = errors.New("no dictionary entries matched")
	// ErrUnknownMorpheme is returned by Similar for a morpheme the last
	// run did not produce.
	ErrUnknownMorpheme = errors.New("unknown morpheme")
)

// PipelineService segments words, extracts definition features and
// aggregates them per morpheme. Runs are sequential.
type PipelineService struct {
	segmenter domain.Segmenter
	embedder  domain.Embedder
	dict      domain.Dictionary
	store     domain.VectorStore
}

func NewPipelineService(segmenter domain.Segmenter, embedder domain.Embedder, dict domain.Dictionary, store domain.VectorStore) *PipelineService {
	return &PipelineService{segmenter: segmenter, embedder: embedder, dict: dict, store: store}
}

type match struct {
	word       string
	definition string
}

// Process runs the pipeline over words in order. Each matched word
// contributes its definition's feature vector once per morpheme occurrence.
// The resulting embeddings replace the contents of the vector store.
func (s *PipelineService) Process(words []string) (*domain.Report, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	logger.Info("processing words", "count", len(words))

	report := &domain.Report{}
	var matches []match
	for _, w := range words {
		canonical := dictionary.Canonical(w)
		if canonical == "" {
			logger.Debug("skipping blank word")
			continue
		}
		def, ok := s.dict.Lookup(canonical)
		if !ok {
			logger.Warn("no dictionary entry", "word", canonical)
			report.Missing = append(report.Missing, canonical)
			continue
		}
		matches = append(matches, match{word: canonical, definition: def})
	}
	report.Matched = len(matches)
	if len(matches) == 0 {
		return report, ErrNoMatches
	}

	corpus := make([]string, len(matches))
	for i, m := range matches {
		corpus[i] = m.definition
	}
	if err := s.embedder.Prepare(corpus); err != nil {
		return nil, fmt.Errorf("prepare %s embedder: %w", s.embedder.Name(), err)
	}
	report.Dimension = s.embedder.Dimension()
	acc := accumulator.New(report.Dimension)

	for _, m := range matches {
		morphemes := s.segmenter.Segment(m.word)
		if len(morphemes) == 0 {
			logger.Warn("no morphemic chunks produced", "word", m.word)
			continue
		}
		vec, err := s.embedder.Embed(m.definition)
		if err != nil {
			return nil, fmt.Errorf("embed definition of %q: %w", m.word, err)
		}
		for _, morpheme := range morphemes {
			acc.Record(morpheme.Key(), vec)
		}
		report.Words = append(report.Words, domain.WordReport{
			Word:       m.word,
			Morphemes:  morphemes,
			Definition: m.definition,
			Features:   vec,
		})
		logger.Debug("segmented", "word", m.word, "morphemes", len(morphemes))
	}
	report.Embeddings = acc.All()

	if err := s.store.Init(report.Dimension); err != nil {
		return nil, fmt.Errorf("init vector store: %w", err)
	}
	if err := s.store.Upsert(report.Embeddings); err != nil {
		return nil, fmt.Errorf("store embeddings: %w", err)
	}
	logger.Info("run complete",
		"matched", report.Matched,
		"missing", len(report.Missing),
		"morphemes", len(report.Embeddings),
	)
	return report, nil
}

// Similar returns up to topK morphemes of the last run ranked by cosine
// similarity to key's embedding, excluding key itself.
func (s *PipelineService) Similar(key domain.Key, topK int) ([]domain.SearchResult, error) {
	query, ok := s.store.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMorpheme, key)
	}
	if topK <= 0 {
		topK = 5
	}
	res, err := s.store.Search(query.Vector, topK+1)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SearchResult, 0, topK)
	for _, r := range res {
		if r.Embedding.Key == key {
			continue
		}
		if len(out) == topK {
			break
		}
		out = append(out, r)
	}
	return out, nil
}
