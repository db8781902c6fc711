package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
sources:
  root_dir: "./data"
  web_urls:
    - "https://example.com/faq"
  extensions:
    - ".pdf"
    - ".txt"
    - ".csv"

chunker:
  chunk_size: 500
  chunk_overlap: 50

tabular:
  roster_markers:
    - "roster"
  department_columns:
    - "department"
  personnel_labels:
    - "HR"

web:
  rate_limit: 1.5
  timeout_secs: 10

database:
  url: "postgres://localhost:5432/test"
  table_name: "test_docs"
  vector_dim: 768
  batch_size: 50

retriever:
  k: 3

log:
  dir: "logs"
  file: "ingest.log"
`
	err := os.WriteFile(configPath, []byte(configData), 0o644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "./data", config.Sources.RootDir)
	assert.Equal(t, []string{"https://example.com/faq"}, config.Sources.WebURLs)
	assert.Equal(t, []string{".pdf", ".txt", ".csv"}, config.Sources.Extensions)
	assert.Equal(t, 500, config.Chunker.ChunkSize)
	assert.Equal(t, 50, config.Chunker.ChunkOverlap)
	assert.Equal(t, []string{"roster"}, config.Tabular.RosterMarkers)
	assert.Equal(t, 1.5, config.Web.RateLimit)
	assert.Equal(t, "test_docs", config.Database.TableName)
	assert.Equal(t, 768, config.Database.VectorDim)
	assert.Equal(t, 3, config.Retriever.K)
	assert.Equal(t, "logs", config.Log.Dir)

	// Defaults fill what the file omits.
	assert.Equal(t, "text-embedding-3-small", config.Embedder.Model)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sources:\n  root_dir: ./data\n"), 0o644))

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, 500, config.Chunker.ChunkSize)
	assert.Equal(t, 50, config.Chunker.ChunkOverlap)
	assert.Contains(t, config.Sources.Extensions, ".csv")
	assert.Contains(t, config.Tabular.RosterMarkers, "従業員")
	assert.Contains(t, config.Tabular.DepartmentColumns, "従業員区分")
	assert.Equal(t, 5, config.Retriever.K)
	assert.Equal(t, "ingest.log", config.Log.File)
}

func TestValidateRequiredFields(t *testing.T) {
	config := &Config{}
	applyDefaults(config)
	// No root dir and no log dir: both are startup failures.
	errs := config.Validate()

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "sources.root_dir")
	assert.Contains(t, fields, "log.dir")
}

func TestValidateChunkOverlap(t *testing.T) {
	config := &Config{}
	applyDefaults(config)
	config.Sources.RootDir = "./data"
	config.Log.Dir = "logs"

	config.Chunker.ChunkSize = 100
	config.Chunker.ChunkOverlap = 100

	errs := config.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "chunker.chunk_overlap", errs[0].Field)
}

func TestValidateWebURLs(t *testing.T) {
	config := &Config{}
	applyDefaults(config)
	config.Sources.RootDir = "./data"
	config.Log.Dir = "logs"
	config.Sources.WebURLs = []string{"https://example.com/ok", "not a url"}

	errs := config.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "sources.web_urls", errs[0].Field)
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	config := &Config{}
	applyDefaults(config)
	config.Sources.RootDir = "./data"
	config.Log.Dir = "logs"

	assert.Empty(t, config.Validate())
}
