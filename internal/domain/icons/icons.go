// Package icons resolves the display artifact of a selected champion.
package icons

import (
	"io/fs"
	"net/url"
	"path"

	"github.com/okian/lobby/pkg/metrics"
)

// Defaults for where icons live and how they are published.
const (
	DefaultBaseDir   = "img/Champion Icons"
	DefaultURLPrefix = "/icons/"
	PlaceholderURL   = "/static/placeholder.svg"
)

// Icon is a resolved display artifact.
type Icon struct {
	// Path is the template result, <base_dir>/<champion>.png.
	Path string `json:"path"`
	// URL is what the page should load; the placeholder when Missing.
	URL     string `json:"url"`
	Missing bool   `json:"missing"`
}

// Resolver maps champion ids onto icon files.
type Resolver struct {
	baseDir   string
	urlPrefix string
	files     fs.FS
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseDir sets the directory used in resolved paths.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) {
		if dir != "" {
			r.baseDir = dir
		}
	}
}

// WithURLPrefix sets the public prefix icons are served under.
func WithURLPrefix(prefix string) Option {
	return func(r *Resolver) {
		if prefix != "" {
			r.urlPrefix = prefix
		}
	}
}

// NewResolver creates a Resolver checking existence against files, which is
// rooted at the icon directory. A nil files skips the check.
func NewResolver(files fs.FS, opts ...Option) *Resolver {
	r := &Resolver{
		baseDir:   DefaultBaseDir,
		urlPrefix: DefaultURLPrefix,
		files:     files,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FileName returns the icon file name of champion.
func FileName(champion string) string {
	return champion + ".png"
}

// Resolve formats the icon path of champion and falls back to the
// placeholder when the file is absent.
func (r *Resolver) Resolve(champion string) Icon {
	name := FileName(champion)
	icon := Icon{
		Path: path.Join(r.baseDir, name),
		URL:  r.urlPrefix + url.PathEscape(name),
	}
	if !r.exists(name) {
		icon.URL = PlaceholderURL
		icon.Missing = true
		metrics.RecordIconFallback()
	}
	return icon
}

func (r *Resolver) exists(name string) bool {
	if !fs.ValidPath(name) || path.Base(name) != name {
		return false
	}
	if r.files == nil {
		return true
	}
	info, err := fs.Stat(r.files, name)
	return err == nil && !info.IsDir()
}
