package media

import (
	"path/filepath"
	"strings"
	"time"
)

// File describes one candidate media file discovered in the inbox. Identity
// is the absolute source path; the value is immutable once scanned.
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Ext returns the lowercased extension without the leading dot.
func (f File) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Path), "."))
}

// Name returns the base filename including extension.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Stem returns the base filename without its extension.
func (f File) Stem() string {
	name := f.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Dir returns the directory containing the file.
func (f File) Dir() string {
	return filepath.Dir(f.Path)
}
