package contract

import (
	"slices"
	"strings"
)

// FileList is the view-model of the file picker example: the base names of
// every file selected so far, in selection order.
type FileList struct {
	names []string
}

// Select appends the base name of each path. Both '/' and '\' are treated as
// separators since browsers on Windows report backslash paths. Paths without
// a base name are skipped, so an empty selection leaves the list unchanged.
func (f FileList) Select(paths ...string) FileList {
	names := slices.Clone(f.names)
	for _, p := range paths {
		if name := baseName(p); name != "" {
			names = append(names, name)
		}
	}
	return FileList{names: names}
}

// Names returns a copy of the selected file names.
func (f FileList) Names() []string {
	return slices.Clone(f.names)
}

// Len returns the number of selected files.
func (f FileList) Len() int {
	return len(f.names)
}

// String renders the list as shown in #file-view: "[<a.json>, <b.txt>]",
// or "[]" when nothing has been selected.
func (f FileList) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range f.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('<')
		b.WriteString(name)
		b.WriteByte('>')
	}
	b.WriteByte(']')
	return b.String()
}

func baseName(p string) string {
	return p[strings.LastIndexAny(p, `/\`)+1:]
}
