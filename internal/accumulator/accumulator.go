// Package accumulator keeps a running mean feature vector per morpheme.
package accumulator

import (
	"fmt"
	"sort"

	"morphemb/internal/domain"
)

type entry struct {
	mean  []float64
	count int
}

// Accumulator records feature vectors under morpheme keys and exposes their
// element-wise mean. It is not safe for concurrent use; a single driver
// feeds it sequentially.
type Accumulator struct {
	dimension int
	entries   map[domain.Key]*entry
}

// New creates an empty accumulator for vectors of the given dimension.
func New(dimension int) *Accumulator {
	if dimension <= 0 {
		panic(fmt.Sprintf("accumulator: invalid dimension %d", dimension))
	}
	return &Accumulator{
		dimension: dimension,
		entries:   make(map[domain.Key]*entry),
	}
}

// Dimension returns the vector length the accumulator accepts.
func (a *Accumulator) Dimension() int { return a.dimension }

// Len returns the number of distinct keys recorded so far.
func (a *Accumulator) Len() int { return len(a.entries) }

// Record adds vec to the running mean of key. Recording a vector of the
// wrong dimension is a programming error and panics.
func (a *Accumulator) Record(key domain.Key, vec []float64) {
	if len(vec) != a.dimension {
		panic(fmt.Sprintf("accumulator: vector for %s has dimension %d, want %d", key, len(vec), a.dimension))
	}
	e, ok := a.entries[key]
	if !ok {
		e = &entry{mean: make([]float64, a.dimension)}
		a.entries[key] = e
	}
	e.count++
	n := float64(e.count)
	for i, v := range vec {
		e.mean[i] += (v - e.mean[i]) / n
	}
}

// EmbeddingOf returns a copy of the mean vector of key, or false if nothing
// was recorded under it.
func (a *Accumulator) EmbeddingOf(key domain.Key) ([]float64, bool) {
	e, ok := a.entries[key]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), e.mean...), true
}

// Count returns how many vectors were recorded under key.
func (a *Accumulator) Count(key domain.Key) int {
	if e, ok := a.entries[key]; ok {
		return e.count
	}
	return 0
}

// All returns a snapshot of every embedding ordered by kind, then text.
func (a *Accumulator) All() []domain.Embedding {
	out := make([]domain.Embedding, 0, len(a.entries))
	for key, e := range a.entries {
		out = append(out, domain.Embedding{
			Key:    key,
			Vector: append([]float64(nil), e.mean...),
			Count:  e.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

// Merge folds other into a, as if every vector recorded in other had been
// recorded in a. Both accumulators must share a dimension.
func (a *Accumulator) Merge(other *Accumulator) {
	if other.dimension != a.dimension {
		panic(fmt.Sprintf("accumulator: merge dimension %d into %d", other.dimension, a.dimension))
	}
	for key, o := range other.entries {
		e, ok := a.entries[key]
		if !ok {
			a.entries[key] = &entry{mean: append([]float64(nil), o.mean...), count: o.count}
			continue
		}
		total := float64(e.count + o.count)
		w := float64(o.count) / total
		for i := range e.mean {
			e.mean[i] += (o.mean[i] - e.mean[i]) * w
		}
		e.count += o.count
	}
}
