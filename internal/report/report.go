// Package report renders pipeline results for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"morphemb/internal/domain"
)

// Options controls number formatting and column layout.
type Options struct {
	Precision int
	KeyWidth  int
}

// Writer renders reports to an output stream. Styling is dropped
// automatically when the stream is not a terminal.
type Writer struct {
	out       io.Writer
	opts      Options
	header    lipgloss.Style
	word      lipgloss.Style
	faint     lipgloss.Style
	missing   lipgloss.Style
	keyColumn lipgloss.Style
}

func NewWriter(out io.Writer, opts Options) *Writer {
	if opts.Precision < 0 {
		opts.Precision = 3
	}
	if opts.KeyWidth <= 0 {
		opts.KeyWidth = 22
	}
	r := lipgloss.NewRenderer(out)
	return &Writer{
		out:       out,
		opts:      opts,
		header:    r.NewStyle().Bold(true),
		word:      r.NewStyle().Foreground(lipgloss.Color("12")),
		faint:     r.NewStyle().Foreground(lipgloss.Color("8")),
		missing:   r.NewStyle().Foreground(lipgloss.Color("9")),
		keyColumn: r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Processing announces the number of words about to be processed.
func (w *Writer) Processing(n int) {
	fmt.Fprintf(w.out, "Processing %d words...\n", n)
}

// Notice writes an informational line.
func (w *Writer) Notice(msg string) {
	fmt.Fprintln(w.out, msg)
}

// Report writes every word, every missing word and the embedding matrix.
func (w *Writer) Report(r *domain.Report) {
	for _, wr := range r.Words {
		w.Word(wr)
	}
	for _, m := range r.Missing {
		w.Missing(m)
	}
	if len(r.Embeddings) == 0 {
		return
	}
	fmt.Fprintln(w.out)
	w.Matrix(r.Embeddings, r.Dimension)
}

// Word writes the segmentation and definition of one word.
func (w *Writer) Word(wr domain.WordReport) {
	fmt.Fprintf(w.out, "- %s: %s\n", w.word.Render(wr.Word), Breakdown(wr.Morphemes))
	fmt.Fprintf(w.out, "  definition: %s\n", w.faint.Render(wr.Definition))
}

// Missing writes the diagnostic for a word without a dictionary entry.
func (w *Writer) Missing(word string) {
	fmt.Fprintf(w.out, "- %s: %s\n", word, w.missing.Render("no dictionary entry available"))
}

// Matrix writes one line per embedding: key -> [v1, v2, ...].
func (w *Writer) Matrix(embeddings []domain.Embedding, dimension int) {
	fmt.Fprintln(w.out, w.header.Render(fmt.Sprintf(
		"Derived morpheme embedding matrix (%d morphemes x %d features):", len(embeddings), dimension)))
	for _, e := range embeddings {
		key := PadRight(e.Key.String(), w.opts.KeyWidth)
		fmt.Fprintf(w.out, "  %s -> %s\n", w.keyColumn.Render(key), FormatVector(e.Vector, w.opts.Precision))
	}
}

// Similar writes similarity search results for query.
func (w *Writer) Similar(query domain.Key, results []domain.SearchResult) {
	fmt.Fprintln(w.out, w.header.Render(fmt.Sprintf("Morphemes most similar to %s:", query)))
	if len(results) == 0 {
		fmt.Fprintln(w.out, w.faint.Render("  (none)"))
		return
	}
	for _, r := range results {
		key := PadRight(r.Embedding.Key.String(), w.opts.KeyWidth)
		fmt.Fprintf(w.out, "  %s score=%s -> %s\n",
			w.keyColumn.Render(key),
			strconv.FormatFloat(r.Score, 'f', w.opts.Precision, 64),
			FormatVector(r.Embedding.Vector, w.opts.Precision))
	}
}

// Breakdown renders morphemes as "kind(text) + kind(text)".
func Breakdown(morphemes []domain.Morpheme) string {
	parts := make([]string, len(morphemes))
	for i, m := range morphemes {
		parts[i] = m.Display()
	}
	return strings.Join(parts, " + ")
}

// FormatVector renders vec as "[a, b, ...]" with fixed precision.
func FormatVector(vec []float64, precision int) string {
	parts := make([]string, len(vec))
	for i, v := range vec {
		parts[i] = strconv.FormatFloat(v, 'f', precision, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// PadRight pads s with spaces to width display cells. Longer strings are
// returned unchanged.
func PadRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
