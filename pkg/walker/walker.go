// Package walker enumerates document sources: a filesystem subtree
// walked depth-first, plus a configured list of remote pages.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yamato-dev/kura/internal/models"
	"github.com/yamato-dev/kura/internal/types"
	"github.com/yamato-dev/kura/pkg/extractor"
	"github.com/yamato-dev/kura/pkg/tabular"
)

// Walker routes every leaf under a root directory through the registry:
// tabular extensions to the synthesizer, registered extensions to their
// extractor, everything else is skipped silently.
type Walker struct {
	registry    *extractor.Registry
	synthesizer *tabular.Synthesizer
	sink        types.ErrorSink
}

func New(registry *extractor.Registry, synthesizer *tabular.Synthesizer, sink types.ErrorSink) *Walker {
	return &Walker{
		registry:    registry,
		synthesizer: synthesizer,
		sink:        sink,
	}
}

// Walk returns the documents extracted from every file under root, in
// traversal order. Directory children are visited in the order the
// filesystem listing returns them; that order is not guaranteed stable
// across platforms. Per-file failures are reported to the error sink
// and do not stop the walk.
func (w *Walker) Walk(root string) ([]models.Document, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("source root %s: %w", root, err)
	}

	acc := &accumulator{}
	w.walk(root, acc)
	return acc.docs, nil
}

// accumulator is the single ordered output collection threaded through
// the recursion.
type accumulator struct {
	docs []models.Document
}

func (a *accumulator) add(docs ...models.Document) {
	a.docs = append(a.docs, docs...)
}

func (w *Walker) walk(path string, acc *accumulator) {
	info, err := os.Stat(path)
	if err != nil {
		w.sink.ExtractError(path, err)
		return
	}

	if !info.IsDir() {
		w.load(path, acc)
		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		w.sink.ExtractError(path, err)
		return
	}
	for _, entry := range entries {
		w.walk(filepath.Join(path, entry.Name()), acc)
	}
}

// load dispatches a single file through the registry. Unregistered
// extensions contribute nothing and are not logged.
func (w *Walker) load(path string, acc *accumulator) {
	ext := strings.ToLower(filepath.Ext(path))

	if w.registry.IsTabular(path) && w.synthesizer != nil {
		doc, err := w.synthesizer.Synthesize(path)
		if err != nil {
			w.sink.ExtractError(path, err)
			return
		}
		acc.add(doc)
		return
	}

	e, ok := w.registry.Lookup(path)
	if !ok {
		return
	}
	if e == nil {
		w.sink.ExtractError(path, fmt.Errorf("no invokable extractor registered for extension %q", ext))
		return
	}

	docs, err := e.Extract(path)
	if err != nil {
		w.sink.ExtractError(path, err)
		return
	}
	acc.add(docs...)
}
