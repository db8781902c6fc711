package pipeline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamato-dev/kura/internal/models"
	"github.com/yamato-dev/kura/pkg/chunker"
	"github.com/yamato-dev/kura/pkg/extractor"
	"github.com/yamato-dev/kura/pkg/pipeline"
	"github.com/yamato-dev/kura/pkg/tabular"
	"github.com/yamato-dev/kura/pkg/textnorm"
	"github.com/yamato-dev/kura/pkg/walker"
)

type spySink struct {
	sources []string
}

func (s *spySink) ExtractError(source string, err error) {
	s.sources = append(s.sources, source)
}

func buildPipeline(root string, webURLs []string, sink *spySink) *pipeline.Pipeline {
	registry := extractor.NewRegistry()
	synthesizer := tabular.NewSynthesizer(tabular.Config{RosterMarkers: []string{"roster"}})
	web := walker.NewWebLoader(walker.WebConfig{RateLimit: 100, Timeout: 5 * time.Second}, sink)

	return pipeline.New(
		root,
		webURLs,
		walker.New(registry, synthesizer, sink),
		web,
		textnorm.Default(),
		chunker.New(80, 10),
		sink,
	)
}

func TestRunProducesOrderedDocuments(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "roster.csv"),
		[]byte("name,department\nAlice,Sales\nBob,HR\nCarol,Sales\n"),
		0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "handbook.txt"),
		[]byte(strings.Repeat("Policies are reviewed every quarter.\n", 10)),
		0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "ignored.xyz"),
		[]byte("skip"),
		0o644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>FAQ</title></head><body><main>Ask HR about leave.</main></body></html>`))
	}))
	defer srv.Close()

	sink := &spySink{}
	p := buildPipeline(root, []string{srv.URL}, sink)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sink.sources, "nothing should fail in this run")

	var csvDocs, txtChunks, webChunks []models.Document
	for _, doc := range result.Documents {
		switch doc.FileType() {
		case "csv":
			csvDocs = append(csvDocs, doc)
		case "txt":
			txtChunks = append(txtChunks, doc)
		case "web":
			webChunks = append(webChunks, doc)
		}
	}

	// Exactly one whole, unchunked document per table.
	require.Len(t, csvDocs, 1)
	assert.Equal(t, 3, csvDocs[0].Metadata[models.MetaTotalRows])
	assert.Contains(t, csvDocs[0].Content, "Employee Roster")

	// Text is chunked; every chunk keeps page 1 provenance.
	require.Greater(t, len(txtChunks), 1)
	for _, chunk := range txtChunks {
		page, ok := chunk.Page()
		require.True(t, ok)
		assert.Equal(t, 1, page)
	}

	// Web documents come after filesystem documents.
	require.NotEmpty(t, webChunks)
	lastTxt := lastIndexOfType(result.Documents, "txt")
	firstWeb := firstIndexOfType(result.Documents, "web")
	assert.Less(t, lastTxt, firstWeb)

	// The unregistered extension contributed nothing, silently.
	for _, doc := range result.Documents {
		assert.NotContains(t, doc.Metadata[models.MetaSource], "ignored.xyz")
	}
}

func TestRunIsolatesWebFailures(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "note.txt"), []byte("still here\n"), 0o644))

	sink := &spySink{}
	p := buildPipeline(root, []string{"http://127.0.0.1:1/down"}, sink)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, sink.sources, 1)
	assert.Contains(t, sink.sources[0], "/down")
	require.Len(t, result.Documents, 1)
	assert.Equal(t, "txt", result.Documents[0].FileType())
}

func TestRunMissingRootFails(t *testing.T) {
	sink := &spySink{}
	p := buildPipeline(filepath.Join(t.TempDir(), "absent"), nil, sink)

	_, err := p.Run(context.Background())
	assert.Error(t, err)
}

func lastIndexOfType(docs []models.Document, fileType string) int {
	last := -1
	for i, doc := range docs {
		if doc.FileType() == fileType {
			last = i
		}
	}
	return last
}

func firstIndexOfType(docs []models.Document, fileType string) int {
	for i, doc := range docs {
		if doc.FileType() == fileType {
			return i
		}
	}
	return len(docs)
}
