package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morphemb/internal/domain"
)

type fakePort struct {
	results []domain.SearchResult
	err     error
	asked   []domain.Key
}

func (f *fakePort) Similar(key domain.Key, topK int) ([]domain.SearchResult, error) {
	f.asked = append(f.asked, key)
	return f.results, f.err
}

func sampleReport() *domain.Report {
	return &domain.Report{
		Words: []domain.WordReport{
			{Word: "biblioklept", Morphemes: []domain.Morpheme{{Kind: domain.Root, Text: "biblio"}, {Kind: domain.Root, Text: "klept"}}},
			{Word: "kerfuffle", Morphemes: []domain.Morpheme{{Kind: domain.Root, Text: "kerfuffle"}}},
		},
		Matched:   2,
		Dimension: 5,
	}
}

func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	m.input.SetValue(q)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestQueryShowsNeighbours(t *testing.T) {
	port := &fakePort{results: []domain.SearchResult{
		{Embedding: domain.Embedding{Key: domain.Key{Kind: domain.Root, Text: "klept"}, Vector: []float64{1, 2}, Count: 1}, Score: 0.9},
		{Embedding: domain.Embedding{Key: domain.Key{Kind: domain.Root, Text: "kerfuffle"}, Vector: []float64{3, 4}, Count: 1}, Score: 0.5},
	}}
	m := New(port, sampleReport(), 3)
	m = typeQuery(t, m, "root:biblio")

	require.Equal(t, []domain.Key{{Kind: domain.Root, Text: "biblio"}}, port.asked)
	assert.Equal(t, "Neighbours of root:biblio", m.status)
	out := m.renderCurrentResult()
	assert.Contains(t, out, "Result 1/2  root:klept  score=0.900")
	assert.Contains(t, out, "vector: [1.000, 2.000]")
	assert.Contains(t, out, "biblioklept:")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Contains(t, m.renderCurrentResult(), "root:kerfuffle")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	assert.Contains(t, m.renderCurrentResult(), "root:klept")
}

func TestQueryErrors(t *testing.T) {
	port := &fakePort{err: errors.New("unknown morpheme")}
	m := New(port, sampleReport(), 3)

	m = typeQuery(t, m, "nonsense")
	assert.Contains(t, m.status, "invalid morpheme key")
	assert.Empty(t, port.asked)

	m = typeQuery(t, m, "root:nope")
	assert.Equal(t, "Error: unknown morpheme", m.status)
	assert.Equal(t, "No results yet.", m.renderCurrentResult())
}

func TestQuitKeys(t *testing.T) {
	m := New(&fakePort{}, sampleReport(), 3)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestViewBeforeAndAfterResize(t *testing.T) {
	m := New(&fakePort{}, sampleReport(), 3)
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	view := next.(Model).View()
	assert.Contains(t, view, "Morpheme Embeddings")
	assert.Contains(t, view, "2 words matched, 0 missing, 0 morphemes x 5 features")
}
