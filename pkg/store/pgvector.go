package store

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/yamato-dev/kura/internal/models"
	"github.com/yamato-dev/kura/internal/types"
)

type VectorStoreConfig struct {
	ConnString string
	TableName  string
	VectorDim  int
	BatchSize  int
}

// VectorStore persists ingested documents and their embeddings in
// PostgreSQL with pgvector.
type VectorStore struct {
	config   VectorStoreConfig
	pool     *pgxpool.Pool
	embedder types.Embedder
}

func NewWithConfig(config VectorStoreConfig, embedder types.Embedder) (*VectorStore, error) {
	if config.TableName == "" {
		config.TableName = "documents"
	}
	if config.VectorDim == 0 {
		config.VectorDim = 1536 // Default for OpenAI embeddings
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}

	pool, err := pgxpool.New(context.Background(), config.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	vs := &VectorStore{
		config:   config,
		pool:     pool,
		embedder: embedder,
	}

	if err := vs.initialize(); err != nil {
		pool.Close()
		return nil, err
	}

	return vs, nil
}

func (vs *VectorStore) initialize() error {
	ctx := context.Background()

	// Enable pgvector extension
	_, err := vs.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector")
	if err != nil {
		return fmt.Errorf("failed to create vector extension: %v", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			page INTEGER,
			file_type TEXT,
			content TEXT,
			embedding vector(%d),
			metadata JSONB
		)`, vs.config.TableName, vs.config.VectorDim)

	_, err = vs.pool.Exec(ctx, createTable)
	if err != nil {
		return fmt.Errorf("failed to create table: %v", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`,
		vs.config.TableName, vs.config.TableName)

	_, err = vs.pool.Exec(ctx, createIndex)
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	return nil
}

// Store embeds and inserts a batch of final pipeline documents in one
// transaction.
func (vs *VectorStore) Store(ctx context.Context, docs []models.Document) error {
	tx, err := vs.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, source, page, file_type, content, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata`,
		vs.config.TableName)

	for _, doc := range docs {
		content := sanitizeUTF8(doc.Content)

		embedding, err := vs.embedder.CreateEmbedding(ctx, []string{content})
		if err != nil {
			return fmt.Errorf("failed to create embeddings: %v", err)
		}

		var page interface{}
		if p, ok := doc.Page(); ok {
			page = p
		}

		_, err = tx.Exec(ctx, stmt,
			uuid.NewString(),
			metaString(doc, models.MetaSource),
			page,
			doc.FileType(),
			content,
			pgvector.NewVector(vs.embedder.FlattenEmbeddings(embedding)),
			doc.Metadata,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document: %v", err)
		}
	}

	return tx.Commit(ctx)
}

// Query returns the documents closest to the given embedding by cosine
// distance.
func (vs *VectorStore) Query(ctx context.Context, embedding []float32, limit int) ([]models.Document, error) {
	stmt := fmt.Sprintf(`
		SELECT content, metadata
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2`,
		vs.config.TableName)

	rows, err := vs.pool.Query(ctx, stmt, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %v", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var content string
		var metadata map[string]interface{}
		if err := rows.Scan(&content, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan document: %v", err)
		}
		docs = append(docs, models.New(content, metadata))
	}

	return docs, rows.Err()
}

func (vs *VectorStore) Close() {
	vs.pool.Close()
}

func metaString(doc models.Document, key string) string {
	if s, ok := doc.Metadata[key].(string); ok {
		return s
	}
	return ""
}

// sanitizeUTF8 strips invalid byte sequences that PostgreSQL rejects.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}
