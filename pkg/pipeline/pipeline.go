// Package pipeline sequences one ingestion run: source walk, text
// normalization, then chunking, producing the final ordered document
// collection handed to the embedding/indexing collaborator.
package pipeline

import (
	"context"

	"github.com/yamato-dev/kura/internal/models"
	"github.com/yamato-dev/kura/internal/types"
	"github.com/yamato-dev/kura/pkg/chunker"
	"github.com/yamato-dev/kura/pkg/textnorm"
	"github.com/yamato-dev/kura/pkg/walker"
)

// Pipeline drives a single synchronous ingestion run. All I/O is
// blocking and sequential; there is no parallelism across files or
// fetches.
type Pipeline struct {
	rootDir    string
	webURLs    []string
	walker     *walker.Walker
	web        *walker.WebLoader
	normalizer *textnorm.Normalizer
	chunker    *chunker.Chunker
	sink       types.ErrorSink
}

func New(rootDir string, webURLs []string, w *walker.Walker, web *walker.WebLoader,
	n *textnorm.Normalizer, c *chunker.Chunker, sink types.ErrorSink) *Pipeline {
	return &Pipeline{
		rootDir:    rootDir,
		webURLs:    webURLs,
		walker:     w,
		web:        web,
		normalizer: n,
		chunker:    c,
		sink:       sink,
	}
}

// Result holds one run's output. It is built once at startup and passed
// to whatever consumes it; there is no hidden global state.
type Result struct {
	Documents []models.Document
}

// Run executes the full ingestion sequence. Filesystem-derived documents
// come first, web-derived documents after, each sub-source preserving
// its internal order. Every document is normalized before chunking;
// tabular documents pass through whole.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	docs, err := p.walker.Walk(p.rootDir)
	if err != nil {
		return nil, err
	}

	if p.web != nil && len(p.webURLs) > 0 {
		docs = append(docs, p.web.LoadAll(ctx, p.webURLs)...)
	}

	var final []models.Document
	for _, doc := range docs {
		doc = p.normalizer.Apply(doc)

		chunks, err := p.chunker.Chunk(doc)
		if err != nil {
			p.sink.ExtractError(source(doc), err)
			continue
		}
		final = append(final, chunks...)
	}

	return &Result{Documents: final}, nil
}

func source(doc models.Document) string {
	if s, ok := doc.Metadata[models.MetaSource].(string); ok {
		return s
	}
	return "<unknown>"
}
