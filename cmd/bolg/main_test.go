package main

import (
	"bolg/internal/domain/config"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliSite struct {
	content string
	output  string
	config  string
}

func newCLISite(t *testing.T) *cliSite {
	t.Helper()
	root := t.TempDir()
	s := &cliSite{
		content: filepath.Join(root, "content"),
		output:  filepath.Join(root, "dist"),
		config:  filepath.Join(root, "site.yaml"),
	}
	require.NoError(t, os.MkdirAll(s.content, 0o755))
	cfg := "contentDir: " + s.content + "\n" +
		"outputDir: " + s.output + "\n" +
		"indexPath: " + filepath.Join(root, ".bolg", "index.db") + "\n"
	require.NoError(t, os.WriteFile(s.config, []byte(cfg), 0o644))
	return s
}

func (s *cliSite) write(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(s.content, name), []byte(body), 0o644))
}

// run executes the CLI with the site's config, resetting flag state left
// over from earlier runs.
func (s *cliSite) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	verbose = false
	configPath = config.DefaultPath
	listBuilds = 0

	var out, errOut bytes.Buffer
	code = execute(append([]string{"--config", s.config}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCLI_ListBeforeBuild(t *testing.T) {
	s := newCLISite(t)
	code, out, _ := s.run(t, "list")
	assert.Equal(t, 0, code)
	assert.Equal(t, "No builds recorded.\n", out)
}

func TestCLI_BuildAndList(t *testing.T) {
	s := newCLISite(t)
	s.write(t, "beta.md", "title: Beta\n\nb\n")
	s.write(t, "alpha.md", "title: Alpha\ntimestamp: 2020-01-02\n\na\n")

	code, out, errOut := s.run(t, "build")
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "Rendered 2 entries in "), out)

	code, out, _ = s.run(t, "list")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Build "))
	assert.Equal(t, []string{"SLUG", "TITLE", "OUTPUT"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"alpha", "Alpha", "alpha.html"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"beta", "Beta", "beta.html"}, strings.Fields(lines[3]))

	code, out, _ = s.run(t, "list", "alpha")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Title:")
	assert.Contains(t, out, "alpha.html")
	assert.Contains(t, out, "Timestamp:")

	code, _, errOut = s.run(t, "list", "missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `no entry "missing" in the last build`)
}

func TestCLI_ListBuilds(t *testing.T) {
	s := newCLISite(t)
	s.write(t, "a.md", "title: A\n\nx\n")
	for i := 0; i < 3; i++ {
		code, _, errOut := s.run(t, "build")
		require.Equal(t, 0, code, errOut)
	}

	code, out, _ := s.run(t, "list", "--builds", "2")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "FINISHED", "ENTRIES", "ELAPSED"}, strings.Fields(lines[0]))
}

func TestCLI_BuildFailureExitsNonZero(t *testing.T) {
	s := newCLISite(t)
	s.write(t, "index.md", "title: Home\n\nx\n")

	code, out, errOut := s.run(t, "build")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Error parsing 'index.md': invalid slug name 'index'")
}

func TestCLI_Version(t *testing.T) {
	s := newCLISite(t)
	code, out, _ := s.run(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "bolg dev\n", out)
}
