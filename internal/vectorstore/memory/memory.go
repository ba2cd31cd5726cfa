package memory

import (
	"errors"
	"math"
	"sort"
	"sync"

	"morphemb/internal/domain"
)

// Storage is a simple in-memory store of morpheme embeddings using
// brute-force cosine similarity.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	index     map[domain.Key]int
	items     []domain.Embedding
}

func NewStorage() *Storage { return &Storage{index: make(map[domain.Key]int)} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.index = make(map[domain.Key]int)
	s.items = nil
	return nil
}

// Upsert inserts embeddings, replacing any stored under the same key.
func (s *Storage) Upsert(embeddings []domain.Embedding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range embeddings {
		if len(e.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for _, e := range embeddings {
		e.Vector = append([]float64(nil), e.Vector...)
		if i, ok := s.index[e.Key]; ok {
			s.items[i] = e
			continue
		}
		s.index[e.Key] = len(s.items)
		s.items = append(s.items, e)
	}
	return nil
}

func (s *Storage) Get(key domain.Key) (domain.Embedding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[key]
	if !ok {
		return domain.Embedding{}, false
	}
	return s.items[i], true
}

// Search returns the topK stored embeddings most similar to vector, best
// first. Ties are broken by key order.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, errors.New("vector dimension mismatch")
	}
	if topK <= 0 {
		topK = 5
	}
	results := make([]domain.SearchResult, len(s.items))
	for i := range s.items {
		results[i] = domain.SearchResult{Embedding: s.items[i], Score: cosine(s.items[i].Vector, vector)}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Embedding.Key.Less(results[j].Embedding.Key)
	})
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(map[domain.Key]int)
	s.items = nil
	return nil
}

// cosine returns 0 when either vector has zero norm.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
