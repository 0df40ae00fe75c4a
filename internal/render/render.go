// Package render turns an assembled program page into the index and art
// links HTML files.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/username/ward-program/internal/program"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var embedded embed.FS

const (
	indexTemplateName    = "index.html"
	artlinksTemplateName = "artlinks.html"
)

// Options selects templates and the clock used for the "last updated" stamp.
// Empty template paths use the embedded defaults.
type Options struct {
	IndexTemplate    string
	ArtLinksTemplate string
	Location         *time.Location
	Now              func() time.Time
}

// Renderer holds the parsed templates
type Renderer struct {
	index    *template.Template
	artlinks *template.Template
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// New parses both templates
func New(opts Options, logger *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		loc:    opts.Location,
		now:    opts.Now,
		logger: logger,
	}
	if r.loc == nil {
		r.loc = time.Local
	}
	if r.now == nil {
		r.now = time.Now
	}

	var err error
	if r.index, err = r.parse(indexTemplateName, opts.IndexTemplate); err != nil {
		return nil, err
	}
	if r.artlinks, err = r.parse(artlinksTemplateName, opts.ArtLinksTemplate); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parse(name, path string) (*template.Template, error) {
	if path == "" {
		tmpl, err := template.New(name).Funcs(r.funcs()).ParseFS(embedded, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded template %s: %w", name, err)
		}
		return tmpl, nil
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(r.funcs()).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	r.logger.Info("Using template file", zap.String("template", name), zap.String("path", path))
	return tmpl, nil
}

// RenderIndex writes the program page
func (r *Renderer) RenderIndex(w io.Writer, page *program.Page) error {
	if err := r.index.Execute(w, page.Data); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}

// RenderArtLinks writes the art links page
func (r *Renderer) RenderArtLinks(w io.Writer, page *program.Page) error {
	if err := r.artlinks.Execute(w, page.ArtLinksData()); err != nil {
		return fmt.Errorf("failed to render art links: %w", err)
	}
	return nil
}

// Output is one rendered page
type Output struct {
	Path string
	HTML []byte
}

// Render renders both pages into memory
func (r *Renderer) Render(page *program.Page, indexPath, artlinksPath string) ([]Output, error) {
	var index, artlinks bytes.Buffer
	if err := r.RenderIndex(&index, page); err != nil {
		return nil, err
	}
	if err := r.RenderArtLinks(&artlinks, page); err != nil {
		return nil, err
	}
	return []Output{
		{Path: indexPath, HTML: index.Bytes()},
		{Path: artlinksPath, HTML: artlinks.Bytes()},
	}, nil
}

// WriteFiles renders both pages and writes them. Nothing is written unless
// both templates render.
func (r *Renderer) WriteFiles(page *program.Page, indexPath, artlinksPath string) ([]Output, error) {
	outputs, err := r.Render(page, indexPath, artlinksPath)
	if err != nil {
		return nil, err
	}

	for _, out := range outputs {
		if err := writeAtomic(out.Path, out.HTML); err != nil {
			return nil, err
		}
		r.logger.Info("Page written",
			zap.String("path", out.Path),
			zap.Int("bytes", len(out.HTML)))
	}
	return outputs, nil
}

// writeAtomic writes through a temp file in the target directory and renames it
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
