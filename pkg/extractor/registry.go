// Package extractor maps file extensions to format-specific extraction
// routines. Unknown extensions are inert; a registered but nil routine
// is a misconfiguration reported per file.
package extractor

import (
	"path/filepath"
	"strings"

	"github.com/yamato-dev/kura/internal/types"
)

// Registry is the pipeline's sole format-dispatch surface. Tabular
// extensions are tracked alongside extractors so that Restrict governs
// them the same way.
type Registry struct {
	extractors map[string]types.Extractor
	tabular    map[string]bool
}

// NewRegistry returns a registry wired with every built-in extractor.
func NewRegistry() *Registry {
	r := &Registry{
		extractors: make(map[string]types.Extractor),
		tabular:    make(map[string]bool),
	}
	r.Register(".pdf", &PDF{})
	r.Register(".txt", &Text{})
	r.Register(".docx", &DOCX{})
	r.Register(".md", &Markdown{})
	r.Register(".markdown", &Markdown{})
	r.Register(".html", &HTML{})
	r.Register(".htm", &HTML{})
	r.RegisterTabular(".csv")
	return r
}

// Register maps an extension (lowercase, dot-prefixed) to an extractor.
// A nil extractor marks the extension as misconfigured.
func (r *Registry) Register(ext string, e types.Extractor) {
	r.extractors[strings.ToLower(ext)] = e
}

// RegisterTabular marks an extension as routed to the tabular
// synthesizer rather than an extractor.
func (r *Registry) RegisterTabular(ext string) {
	r.tabular[strings.ToLower(ext)] = true
}

// Restrict drops every registered extension not in the allowed list.
func (r *Registry) Restrict(allowed []string) {
	keep := make(map[string]bool, len(allowed))
	for _, ext := range allowed {
		keep[strings.ToLower(ext)] = true
	}
	for ext := range r.extractors {
		if !keep[ext] {
			delete(r.extractors, ext)
		}
	}
	for ext := range r.tabular {
		if !keep[ext] {
			delete(r.tabular, ext)
		}
	}
}

// IsTabular reports whether a path's extension is registered for
// tabular synthesis.
func (r *Registry) IsTabular(path string) bool {
	return r.tabular[strings.ToLower(filepath.Ext(path))]
}

// Lookup returns the extractor registered for a path's extension. The
// second result reports whether the extension is registered at all; a
// true result with a nil extractor means misconfiguration.
func (r *Registry) Lookup(path string) (types.Extractor, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.extractors[ext]
	return e, ok
}
