package build

import (
	"bolg/internal/app"
	domainbuild "bolg/internal/domain/build"
	"bolg/internal/domain/config"
	"bolg/internal/domain/content"
	domainerr "bolg/internal/domain/errors"
	"bolg/internal/highlight"
	"bolg/internal/index"
	"bolg/internal/ingest"
	"bolg/internal/render"
	"context"
	"fmt"
	"github.com/google/uuid"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Builder struct {
	Cfg    config.Config
	Logger *slog.Logger
	// Templates replaces the embedded theme when set.
	Templates fs.FS
}

type Result struct {
	BuildID string
	// Entries are in index page order.
	Entries []content.Entry
	Records []index.EntryRecord
	Elapsed time.Duration
}

// Summary is the one-line report printed after a successful build.
func (r *Result) Summary() string {
	n := len(r.Entries)
	noun := "entries"
	if n == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("Rendered %d %s in %.2fs.", n, noun, r.Elapsed.Seconds())
}

// Run regenerates the whole site. Pages are written to a staging directory
// that replaces the output directory only once every page has rendered, so a
// failed run leaves the previous output in place.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	log := b.logger()

	if err := b.Cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := ingest.DiscoverSource(b.Cfg.ContentDir, b.Cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	log.Debug("discovered sources", "dir", b.Cfg.ContentDir, "files", len(files))

	md := render.NewMarkdownRenderer(render.MarkdownOptions{
		Highlighter: highlight.New(b.Cfg.CodeStyle),
		RawHTML:     rawHTMLPolicy(b.Cfg.RawHTML),
	})
	themes := b.Templates
	if themes == nil {
		themes = render.DefaultTemplates()
	}
	tpl, err := render.NewTemplateRenderer(themes)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	stage, err := newStage(b.Cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(stage)
		}
	}()

	routes := &app.RouteBuilder{IndexDocument: b.Cfg.IndexDocument}
	entries, prints, err := b.buildEntries(ctx, md, tpl, routes, stage, files)
	if err != nil {
		return nil, err
	}

	content.Sort(entries, b.Cfg.SortByTimestamp)

	if err := b.buildIndex(ctx, tpl, routes, stage, entries); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	if err := swap(stage, b.Cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("publish %s: %w", b.Cfg.OutputDir, err)
	}
	committed = true

	res := &Result{
		BuildID: uuid.NewString(),
		Entries: entries,
		Elapsed: time.Since(start),
	}
	for i, r := range routes.BuildEntryRoutes(entries) {
		e := entries[i]
		res.Records = append(res.Records, index.EntryRecord{
			Slug:       e.Slug,
			Title:      e.Title,
			OutPath:    r.OutPath,
			Href:       r.Href,
			Timestamp:  e.Timestamp,
			SourcePath: e.SourcePath,
			SourceHash: prints[e.Slug].SourceHash,
			OutputHash: prints[e.Slug].OutputHash,
		})
	}
	b.recordBuild(res)
	return res, nil
}

func (b *Builder) buildEntries(
	ctx context.Context,
	md *render.MarkdownRenderer,
	tpl render.Renderer,
	routes *app.RouteBuilder,
	outDir string,
	files []ingest.SourceFile,
) ([]content.Entry, map[string]domainbuild.Fingerprint, error) {
	log := b.logger()
	entries := make([]content.Entry, 0, len(files))
	prints := make(map[string]domainbuild.Fingerprint, len(files))
	seen := make(map[string]string, len(files))

	for _, sf := range files {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		e, raw, err := b.convert(md, sf)
		if err != nil {
			return nil, nil, err
		}
		if prev, ok := seen[e.Slug]; ok {
			return nil, nil, domainerr.NewFileError(sf.Name,
				fmt.Errorf("%w %q (also used by '%s')", domainerr.ErrDuplicateSlug, e.Slug, prev))
		}
		seen[e.Slug] = sf.Name

		page := render.EntryPage{
			SiteTitle: b.Cfg.SiteTitle,
			Entry:     e,
			Body:      template.HTML(e.HTML),
			BackHref:  routes.BackHref(),
		}
		htmlBytes, err := tpl.RenderEntry(ctx, page)
		if err != nil {
			return nil, nil, fmt.Errorf("render entry(%s): %w", e.Slug, err)
		}
		htmlBytes = render.Beautify(htmlBytes)

		route := routes.EntryRoute(e)
		if err := writeFile(outDir, route.OutPath, htmlBytes); err != nil {
			return nil, nil, err
		}
		prints[e.Slug] = domainbuild.NewFingerprint(raw, htmlBytes)
		entries = append(entries, e)
		log.Debug("rendered entry", "file", sf.Name, "route", route.String())
	}
	return entries, prints, nil
}

// convert reads one source file and renders its body. Metadata and HTML come
// back together; nothing is shared between files.
func (b *Builder) convert(md *render.MarkdownRenderer, sf ingest.SourceFile) (content.Entry, []byte, error) {
	doc, err := ingest.Read(sf)
	if err != nil {
		return content.Entry{}, nil, err
	}

	slug, err := ingest.ResolveSlug(doc.Meta, sf.Name)
	if err != nil {
		return content.Entry{}, nil, domainerr.NewFileError(sf.Name, err)
	}

	body, err := md.Render(doc.Body)
	if err != nil {
		return content.Entry{}, nil, domainerr.NewFileError(sf.Name, fmt.Errorf("markdown render: %w", err))
	}

	title, ok := content.MetaString(doc.Meta, "title")
	if !ok {
		return content.Entry{}, nil, domainerr.NewFileError(sf.Name, domainerr.ErrMissingTitle)
	}

	ts, _ := ingest.ParseTime(doc.Meta["timestamp"])
	return content.Entry{
		Slug:       slug,
		Title:      title,
		Meta:       doc.Meta,
		HTML:       body,
		SourcePath: sf.Path,
		SourceHash: doc.Hash,
		Timestamp:  ts,
	}, doc.Raw, nil
}

func (b *Builder) buildIndex(
	ctx context.Context,
	tpl render.Renderer,
	routes *app.RouteBuilder,
	outDir string,
	entries []content.Entry,
) error {
	page := render.IndexPage{SiteTitle: b.Cfg.SiteTitle}
	for _, e := range entries {
		page.Links = append(page.Links, render.IndexLink{
			Title: e.Title,
			Href:  routes.EntryRoute(e).Href,
		})
	}

	htmlBytes, err := tpl.RenderIndex(ctx, page)
	if err != nil {
		return err
	}
	return writeFile(outDir, routes.IndexRoute().OutPath, render.Beautify(htmlBytes))
}

// recordBuild stores the listing for `bolg list`. The site is already
// published at this point, so failures are only logged.
func (b *Builder) recordBuild(res *Result) {
	if b.Cfg.IndexPath == "" {
		return
	}
	log := b.logger()
	st, err := index.Open(index.OpenOptions{Path: b.Cfg.IndexPath})
	if err != nil {
		log.Warn("open index", "path", b.Cfg.IndexPath, "error", err)
		return
	}
	defer st.Close()

	rec := index.BuildRecord{
		ID:         res.BuildID,
		FinishedAt: time.Now(),
		Elapsed:    res.Elapsed,
		Entries:    len(res.Entries),
		OutputDir:  b.Cfg.OutputDir,
	}
	if err := st.Record(rec, res.Records); err != nil {
		log.Warn("record build", "path", b.Cfg.IndexPath, "error", err)
	}
}

func rawHTMLPolicy(mode config.RawHTMLMode) render.RawHTMLPolicy {
	switch mode {
	case config.RawHTMLOmit:
		return render.RawHTMLOmit
	case config.RawHTMLSanitize:
		return render.RawHTMLSanitize
	default:
		return render.RawHTMLEscape
	}
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func newStage(outDir string) (string, error) {
	outDir = filepath.Clean(outDir)
	parent := filepath.Dir(outDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", err
	}
	stage, err := os.MkdirTemp(parent, "."+filepath.Base(outDir)+"-")
	if err != nil {
		return "", err
	}
	if err := os.Chmod(stage, 0o755); err != nil {
		_ = os.RemoveAll(stage)
		return "", err
	}
	return stage, nil
}

func swap(stage, outDir string) error {
	if err := os.RemoveAll(outDir); err != nil {
		return err
	}
	return os.Rename(stage, outDir)
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
