package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// EmbedderConfig configures the OpenAI embedding client. APIKey is
// mandatory; resolution happens upstream (secrets file, then env).
type EmbedderConfig struct {
	Model  string
	APIKey string
}

// Embedder creates embeddings through the OpenAI API.
type Embedder struct {
	Config EmbedderConfig
	llm    *openai.LLM
}

func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("embedder requires an API key")
	}

	client, err := openai.New(
		openai.WithToken(config.APIKey),
		openai.WithEmbeddingModel(config.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding client: %v", err)
	}

	return &Embedder{
		Config: config,
		llm:    client,
	}, nil
}

func (e *Embedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return e.llm.CreateEmbedding(ctx, texts)
}

func (e *Embedder) FlattenEmbeddings(embeddings [][]float32) []float32 {
	var flattened []float32
	for _, emb := range embeddings {
		flattened = append(flattened, emb...)
	}
	return flattened
}
