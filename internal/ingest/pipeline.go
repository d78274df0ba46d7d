package ingest

import (
	"bolg/internal/domain/build"
	domainerr "bolg/internal/domain/errors"
	"fmt"
	"os"
)

// Document is a source file split into its metadata and Markdown body.
type Document struct {
	Source SourceFile
	Raw    []byte
	Meta   map[string]any
	Body   []byte
	Hash   string
}

// Read loads sf and separates its front matter from the body.
func Read(sf SourceFile) (Document, error) {
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", sf.Path, err)
	}
	meta, body, err := ParseFrontMatter(raw)
	if err != nil {
		return Document{}, domainerr.NewFileError(sf.Name, err)
	}
	return Document{
		Source: sf,
		Raw:    raw,
		Meta:   meta,
		Body:   body,
		Hash:   build.HashBytes(raw),
	}, nil
}
