// Package dictionary supplies word definitions and word lists to the pipeline.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dictionary is an immutable word -> definition mapping.
type Dictionary struct {
	entries map[string]string
}

// New returns the built-in dictionary extended (or overridden) by extra.
func New(extra map[string]string) *Dictionary {
	entries := make(map[string]string, len(builtin)+len(extra))
	for word, def := range builtin {
		entries[word] = def
	}
	for word, def := range extra {
		if key := Canonical(word); key != "" {
			entries[key] = def
		}
	}
	return &Dictionary{entries: entries}
}

// FromEntries builds a dictionary holding only the given entries.
func FromEntries(entries map[string]string) *Dictionary {
	d := &Dictionary{entries: make(map[string]string, len(entries))}
	for word, def := range entries {
		if key := Canonical(word); key != "" {
			d.entries[key] = def
		}
	}
	return d
}

// Lookup returns the definition of word after canonicalisation.
func (d *Dictionary) Lookup(word string) (string, bool) {
	def, ok := d.entries[Canonical(word)]
	return def, ok
}

// Words returns every dictionary word in sorted order.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.entries) }

// Canonical trims and lowercases a word for lookup.
func Canonical(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// LoadWordList reads a newline separated word list. A leading ~ in path is
// expanded to the home directory.
func LoadWordList(path string) ([]string, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", expanded, err)
	}
	return words, nil
}

// ReadWords returns the non-blank lines of r with everything from the first
// '#' on each line removed and surrounding whitespace trimmed.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, sc.Err()
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

var builtin = map[string]string{
	"antidisestablishmentarianism": "Oxford English Dictionary (paraphrased): opposition to the withdrawal of state support or recognition from an established church.",
	"hypermetamorphosis":           "Oxford English Dictionary (paraphrased): a kind of insect development marked by distinctly different successive larval stages.",
	"biblioklept":                  "Oxford English Dictionary (paraphrased): a person who steals books; a book thief.",
	"defenestration":               "Oxford English Dictionary (paraphrased): the act of throwing someone or something out of a window.",
	"absquatulate":                 "Oxford English Dictionary (paraphrased): to depart abruptly; to abscond with comic haste.",
	"cattywampus":                  "Oxford English Dictionary (paraphrased): askew or awry; positioned diagonally in a delightfully unruly fashion.",
	"transmogrification":           "Oxford English Dictionary (paraphrased): a transformation, especially one that is startling or magical.",
	"sesquipedalian":               "Oxford English Dictionary (paraphrased): characterized by or fond of using long words.",
	"kerfuffle":                    "Oxford English Dictionary (paraphrased): a commotion or fuss, especially one caused by conflicting opinions.",
}
