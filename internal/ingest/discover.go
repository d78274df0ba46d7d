package ingest

import (
	"github.com/bmatcuk/doublestar/v4"
	"os"
	"path/filepath"
	"strings"
)

// SampleFile is shipped alongside real content as a template for authors and
// is never built.
const SampleFile = "example.md"

type SourceFile struct {
	Path string
	Name string
}

// DiscoverSource lists the Markdown files directly inside root in name order.
// Names matching any exclude pattern are skipped, as is SampleFile.
func DiscoverSource(root string, exclude []string) ([]SourceFile, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var out []SourceFile
	for _, d := range dirents {
		name := d.Name()
		if d.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		if name == SampleFile || excluded(name, exclude) {
			continue
		}
		out = append(out, SourceFile{
			Path: filepath.Join(root, name),
			Name: name,
		})
	}
	return out, nil
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
