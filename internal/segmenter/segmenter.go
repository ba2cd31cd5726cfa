// Package segmenter splits English words into prefix, root and suffix
// morphemes using ordered affix tables.
package segmenter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"morphemb/internal/chunker"
	"morphemb/internal/domain"
)

// Tables are the ordered affix and root lists. The first entry that matches
// wins, so an entry must come before any shorter entry it contains.
type Tables struct {
	Prefixes []string
	Suffixes []string
	Roots    []string
}

// Config configures a Segmenter.
type Config struct {
	Tables Tables
	// ChunkWidth is the width of fallback chunks for spans no root matches.
	ChunkWidth int
	// MinRootLength is the shortest span affix stripping may leave behind.
	MinRootLength int
	// FoldDiacritics maps accented letters to their base letter before
	// non-ASCII characters are stripped.
	FoldDiacritics bool
}

// Segmenter is a greedy table-driven morpheme segmenter. It is safe for
// concurrent use.
type Segmenter struct {
	prefixes []string
	suffixes []string
	roots    []string
	minRoot  int
	fold     bool
	chunker  *chunker.FixedWidthChunker
}

func New(cfg Config) *Segmenter {
	if cfg.MinRootLength < 1 {
		cfg.MinRootLength = 1
	}
	return &Segmenter{
		prefixes: normalizeTable(cfg.Tables.Prefixes),
		suffixes: normalizeTable(cfg.Tables.Suffixes),
		roots:    normalizeTable(cfg.Tables.Roots),
		minRoot:  cfg.MinRootLength,
		fold:     cfg.FoldDiacritics,
		chunker:  chunker.NewFixedWidthChunker(cfg.ChunkWidth),
	}
}

// state is a phase of the segmentation state machine.
type state int

const (
	stripPrefixes state = iota
	stripSuffixes
	resolveRoots
	done
)

// Segment returns the morphemes of word in reading order. Their texts
// concatenate to Clean(word). An empty cleaned word yields nil.
func (s *Segmenter) Segment(word string) []domain.Morpheme {
	span := s.Clean(word)
	if span == "" {
		return nil
	}

	var prefixes, suffixes, roots []domain.Morpheme
	for st := stripPrefixes; st != done; {
		switch st {
		case stripPrefixes:
			p, ok := s.match(span, s.prefixes, strings.HasPrefix)
			if !ok {
				st = stripSuffixes
				continue
			}
			prefixes = append(prefixes, domain.Morpheme{Kind: domain.Prefix, Text: p})
			span = span[len(p):]
		case stripSuffixes:
			sfx, ok := s.match(span, s.suffixes, strings.HasSuffix)
			if !ok {
				st = resolveRoots
				continue
			}
			suffixes = append(suffixes, domain.Morpheme{Kind: domain.Suffix, Text: sfx})
			span = span[:len(span)-len(sfx)]
		case resolveRoots:
			roots = s.decompose(span)
			st = done
		}
	}

	out := make([]domain.Morpheme, 0, len(prefixes)+len(roots)+len(suffixes))
	out = append(out, prefixes...)
	out = append(out, roots...)
	// suffixes were peeled outermost first
	for i := len(suffixes) - 1; i >= 0; i-- {
		out = append(out, suffixes[i])
	}
	return out
}

// match returns the first table entry accepted by has, provided stripping it
// leaves at least minRoot bytes. A first match that would over-strip ends
// the phase; later entries are not tried.
func (s *Segmenter) match(span string, table []string, has func(string, string) bool) (string, bool) {
	for _, entry := range table {
		if !has(span, entry) {
			continue
		}
		if len(span)-len(entry) < s.minRoot {
			return "", false
		}
		return entry, true
	}
	return "", false
}

// decompose resolves the middle span into root morphemes. The highest
// priority root pattern found anywhere in the span becomes a root token and
// the flanks on either side are decomposed the same way; a span with no
// pattern is split into fixed-width chunks.
func (s *Segmenter) decompose(span string) []domain.Morpheme {
	if span == "" {
		return nil
	}
	for _, pattern := range s.roots {
		i := strings.Index(span, pattern)
		if i < 0 {
			continue
		}
		out := s.decompose(span[:i])
		out = append(out, domain.Morpheme{Kind: domain.Root, Text: pattern})
		return append(out, s.decompose(span[i+len(pattern):])...)
	}
	chunks := s.chunker.Chunk(span)
	out := make([]domain.Morpheme, len(chunks))
	for i, c := range chunks {
		out[i] = domain.Morpheme{Kind: domain.Root, Text: c}
	}
	return out
}

// Clean lowercases word and keeps only ASCII letters. With diacritic folding
// enabled, accented letters are first reduced to their base letter.
func (s *Segmenter) Clean(word string) string {
	if s.fold {
		word = foldDiacritics(word)
	}
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func normalizeTable(table []string) []string {
	out := make([]string, 0, len(table))
	for _, entry := range table {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
