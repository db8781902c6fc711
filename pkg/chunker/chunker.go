// Package chunker splits documents into bounded, overlapping segments
// while preserving provenance metadata. Tabular documents bypass
// splitting and are indexed whole.
package chunker

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/yamato-dev/kura/internal/models"
)

// Chunker wraps a character splitter that breaks on newlines first and
// merges splits into windows of at most ChunkSize characters with
// ChunkOverlap characters of trailing overlap.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
}

func New(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize == 0 {
		chunkSize = 500
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators([]string{"\n", " ", ""}),
	)

	return &Chunker{splitter: splitter}
}

// Chunk splits a document into chunk documents. Each chunk derives the
// parent's metadata, with the parent's page value re-imposed when the
// parent had one. Documents with file_type "csv" are returned unsplit.
// Chunks that are empty after trimming are dropped.
func (c *Chunker) Chunk(doc models.Document) ([]models.Document, error) {
	if doc.FileType() == "csv" {
		return []models.Document{doc}, nil
	}

	parts, err := c.splitter.SplitText(doc.Content)
	if err != nil {
		return nil, err
	}

	page, hasPage := doc.Page()

	chunks := make([]models.Document, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		extra := map[string]interface{}{}
		if hasPage {
			extra[models.MetaPage] = page
		}
		chunks = append(chunks, doc.Derive(part, extra))
	}

	return chunks, nil
}
