package types

import (
	"context"

	"github.com/yamato-dev/kura/internal/models"
)

// Core interfaces

// Extractor produces raw documents from a single source file. Paginated
// formats return one document per page.
type Extractor interface {
	Extract(path string) ([]models.Document, error)
}

// ErrorSink receives per-item extraction failures. Implementations must
// never fail the run themselves.
type ErrorSink interface {
	ExtractError(source string, err error)
}

// Normalizer sanitizes values for safe round-tripping through the
// platform's text encoding. Non-string values pass through unchanged.
type Normalizer interface {
	Normalize(value interface{}) interface{}
}

// Chunker splits a document into bounded overlapping segments.
type Chunker interface {
	Chunk(doc models.Document) ([]models.Document, error)
}

type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
	FlattenEmbeddings(embeddings [][]float32) []float32
}

type VectorStore interface {
	Store(ctx context.Context, docs []models.Document) error
	Query(ctx context.Context, embedding []float32, limit int) ([]models.Document, error)
	Close()
}
