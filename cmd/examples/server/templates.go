package server

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/runtime.js
var runtimeJS []byte

// fsLoader serves pongo2 templates out of an fs.FS. All templates live flat
// in one directory, so names resolve against that directory regardless of
// which template includes them.
type fsLoader struct {
	fsys fs.FS
	dir  string
}

func (l fsLoader) Abs(base, name string) string {
	if strings.HasPrefix(name, l.dir+"/") {
		return name
	}
	return path.Join(l.dir, name)
}

func (l fsLoader) Get(name string) (io.Reader, error) {
	b, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

type renderer struct {
	set *pongo2.TemplateSet
}

// newRenderer compiles every embedded template up front so syntax errors
// surface at startup rather than on first request.
func newRenderer() (*renderer, error) {
	r := &renderer{
		set: pongo2.NewSet("examples", fsLoader{fsys: templateFS, dir: "templates"}),
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if _, err := r.set.FromCache(e.Name()); err != nil {
			return nil, fmt.Errorf("template %s: %w", e.Name(), err)
		}
	}
	return r, nil
}

func (r *renderer) render(w io.Writer, name string, ctx pongo2.Context) error {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return err
	}
	return tpl.ExecuteWriter(ctx, w)
}

func (r *renderer) renderString(name string, ctx pongo2.Context) (string, error) {
	var b strings.Builder
	if err := r.render(&b, name, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}
