package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"morphemb/internal/domain"
)

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[17.000, 5.882, 0.000]", FormatVector([]float64{17, 5.882352941, 0}, 3))
	assert.Equal(t, "[1.5]", FormatVector([]float64{1.49}, 1))
	assert.Equal(t, "[]", FormatVector(nil, 3))
}

func TestBreakdown(t *testing.T) {
	got := Breakdown([]domain.Morpheme{
		{Kind: domain.Prefix, Text: "anti"},
		{Kind: domain.Prefix, Text: "dis"},
		{Kind: domain.Root, Text: "establish"},
		{Kind: domain.Suffix, Text: "ment"},
		{Kind: domain.Suffix, Text: "arianism"},
	})
	assert.Equal(t, "prefix(anti) + prefix(dis) + root(establish) + suffix(ment) + suffix(arianism)", got)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "root:ped  ", PadRight("root:ped", 10))
	assert.Equal(t, "root:antidisestablish", PadRight("root:antidisestablish", 5))
}

func TestWriterReport(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Precision: 3, KeyWidth: 22})
	w.Report(&domain.Report{
		Words: []domain.WordReport{{
			Word:       "biblioklept",
			Morphemes:  []domain.Morpheme{{Kind: domain.Root, Text: "biblio"}, {Kind: domain.Root, Text: "klept"}},
			Definition: "a person who steals books",
		}},
		Missing:   []string{"zorp"},
		Matched:   1,
		Dimension: 2,
		Embeddings: []domain.Embedding{
			{Key: domain.Key{Kind: domain.Root, Text: "biblio"}, Vector: []float64{5, 4.2}, Count: 1},
			{Key: domain.Key{Kind: domain.Root, Text: "klept"}, Vector: []float64{5, 4.2}, Count: 1},
		},
	})

	want := strings.Join([]string{
		"- biblioklept: root(biblio) + root(klept)",
		"  definition: a person who steals books",
		"- zorp: no dictionary entry available",
		"",
		"Derived morpheme embedding matrix (2 morphemes x 2 features):",
		"  root:biblio            -> [5.000, 4.200]",
		"  root:klept             -> [5.000, 4.200]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriterSimilar(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Options{Precision: 2, KeyWidth: 12})
	q := domain.Key{Kind: domain.Root, Text: "ped"}
	w.Similar(q, []domain.SearchResult{{
		Embedding: domain.Embedding{Key: domain.Key{Kind: domain.Suffix, Text: "ian"}, Vector: []float64{1, 2}},
		Score:     0.987,
	}})
	assert.Equal(t, "Morphemes most similar to root:ped:\n  suffix:ian   score=0.99 -> [1.00, 2.00]\n", buf.String())

	buf.Reset()
	w.Similar(q, nil)
	assert.Contains(t, buf.String(), "(none)")
}
