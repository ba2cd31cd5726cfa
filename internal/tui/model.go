package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"morphemb/internal/domain"
	"morphemb/internal/report"
)

// SimilarityPort is the TUI-facing subset of the pipeline service.
type SimilarityPort interface {
	Similar(key domain.Key, topK int) ([]domain.SearchResult, error)
}

// Model is the Bubble Tea model for browsing a finished run.
type Model struct {
	service   SimilarityPort
	report    *domain.Report
	precision int
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	summary   string
	status    string
	cursor    int
	ready     bool
	lastQuery domain.Key
}

// New creates a new TUI model instance.
func New(service SimilarityPort, r *domain.Report, precision int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "kind:text (e.g. root:establish) and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	summary := fmt.Sprintf("%d words matched, %d missing, %d morphemes x %d features",
		r.Matched, len(r.Missing), len(r.Embeddings), r.Dimension)
	return Model{
		service:   service,
		report:    r,
		precision: precision,
		input:     ti,
		viewport:  vp,
		summary:   summary,
		status:    "Loaded. Query a morpheme to find its neighbours.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2 // header + summary
		totalFooterLines := 1 // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.query(q)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) query(q string) Model {
	key, err := domain.ParseKey(q)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return m
	}
	res, err := m.service.Similar(key, 10)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return m
	}
	m.status = fmt.Sprintf("Neighbours of %s", key)
	m.results = res
	m.cursor = 0
	m.lastQuery = key
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Morpheme Embeddings")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  %s  score=%.3f", m.cursor+1, len(m.results), r.Embedding.Key, r.Score)
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString("vector: " + report.FormatVector(r.Embedding.Vector, m.precision) + "\n")
	b.WriteString(fmt.Sprintf("occurrences: %d\n", r.Embedding.Count))
	for _, w := range wordsContaining(m.report, r.Embedding.Key) {
		b.WriteString("  " + highlightMorpheme(w, r.Embedding.Key) + "\n")
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

func wordsContaining(r *domain.Report, key domain.Key) []domain.WordReport {
	if r == nil {
		return nil
	}
	var out []domain.WordReport
	for _, w := range r.Words {
		for _, mo := range w.Morphemes {
			if mo.Key() == key {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

func highlightMorpheme(w domain.WordReport, key domain.Key) string {
	parts := make([]string, len(w.Morphemes))
	for i, mo := range w.Morphemes {
		if mo.Key() == key {
			parts[i] = highlightStyle.Render(mo.Display())
		} else {
			parts[i] = mo.Display()
		}
	}
	return w.Word + ": " + strings.Join(parts, " + ")
}
