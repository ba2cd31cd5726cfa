package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morphemb/internal/cli"
)

// execute runs the CLI against a config path that does not exist, which
// yields the built-in defaults without touching the user's home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := filepath.Join(t.TempDir(), "absent.yaml")

	var out bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg, "--log-level", "none"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeWordList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSegmentCommand(t *testing.T) {
	out, err := execute(t, "segment", "Antidisestablishmentarianism", "zzzzzzzzz", "123")
	require.NoError(t, err)
	assert.Contains(t, out, "- antidisestablishmentarianism: prefix(anti) + prefix(dis) + root(establish) + suffix(ment) + suffix(arianism)\n")
	assert.Contains(t, out, "- zzzzzzzzz: root(zzzz) + root(zzzz) + root(z)\n")
	assert.Contains(t, out, "- 123: no morphemic chunks produced\n")
}

func TestFeaturesCommand(t *testing.T) {
	out, err := execute(t, "features", "A", "state", "of", "change", "and", "recovery.")
	require.NoError(t, err)
	assert.Equal(t, "[6.000, 4.167, 0.000, 0.500, 1.167]\n", out)

	out, err = execute(t, "features", "")
	require.NoError(t, err)
	assert.Equal(t, "[0.000, 0.000, 0.000, 0.000, 0.000]\n", out)
}

func TestRunBuiltinWords(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Processing 9 words...")
	assert.Contains(t, out, "- biblioklept: root(biblio) + root(klept)")
	assert.Contains(t, out, "  definition: Oxford English Dictionary (paraphrased): a person who steals books; a book thief.")
	assert.Contains(t, out, "morphemes x 5 features):")
	assert.Contains(t, out, "  root:establish"+strings.Repeat(" ", 8)+" -> [")
}

func TestRunWordList(t *testing.T) {
	path := writeWordList(t, "# sample\nKerfuffle\nzorp # not in the dictionary\n")
	out, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Processing 2 words...")
	assert.Contains(t, out, "- kerfuffle: root(kerfuffle)")
	assert.Contains(t, out, "- zorp: no dictionary entry available")
	assert.Contains(t, out, "(1 morphemes x 5 features)")
}

func TestRunWordListWithoutMatches(t *testing.T) {
	path := writeWordList(t, "zorp\nblat\n")
	out, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "No dictionary entries matched the provided words.")
	assert.NotContains(t, out, "embedding matrix")
}

func TestRunEmptyWordList(t *testing.T) {
	path := writeWordList(t, "# only comments\n\n")
	out, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, out, "No words supplied")
}

func TestRunMissingWordListFails(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSimilarCommand(t *testing.T) {
	out, err := execute(t, "similar", "root:klept", "--top", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Morphemes most similar to root:klept:")
	assert.NotContains(t, out, "  root:klept ")
	assert.Contains(t, out, "  root:biblio ")

	_, err = execute(t, "similar", "root:nothing")
	assert.ErrorContains(t, err, "unknown morpheme")

	_, err = execute(t, "similar", "garbage")
	assert.ErrorContains(t, err, "invalid morpheme key")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "morphemb.yaml")
	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)
	assert.FileExists(t, path)

	out, err = execute(t, "--config", path, "segment", "kerfuffle")
	require.NoError(t, err)
	assert.Equal(t, "- kerfuffle: root(kerfuffle)\n", out)
}

func TestConfigOverridesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("segmenter:\n  roots: [fuff]\n  chunk_width: 3\n"), 0o644))
	out, err := execute(t, "--config", path, "segment", "kerfuffle")
	require.NoError(t, err)
	assert.Equal(t, "- kerfuffle: root(ker) + root(fuff) + root(le)\n", out)
}
