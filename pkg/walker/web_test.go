package walker_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamato-dev/kura/internal/models"
	"github.com/yamato-dev/kura/pkg/walker"
)

func TestWebLoaderLoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`<html><head><title>FAQ</title>
<meta name="description" content="Company FAQ page"></head>
<body><main>How do I   request leave?</main></body></html>`))
		case "/broken":
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	sink := &spySink{}
	loader := walker.NewWebLoader(walker.WebConfig{RateLimit: 100, Timeout: 5 * time.Second}, sink)

	// The failing URL sits between two good ones: its failure must not
	// abort the rest.
	docs := loader.LoadAll(context.Background(), []string{
		srv.URL + "/ok",
		srv.URL + "/broken",
		srv.URL + "/ok",
	})

	require.Len(t, docs, 2)
	require.Len(t, sink.sources, 1)
	assert.Contains(t, sink.sources[0], "/broken")

	doc := docs[0]
	assert.Equal(t, "How do I request leave?", doc.Content)
	assert.Equal(t, srv.URL+"/ok", doc.Metadata[models.MetaSource])
	assert.Equal(t, "FAQ", doc.Metadata[models.MetaTitle])
	assert.Equal(t, "Company FAQ page", doc.Metadata["description"])
	assert.Equal(t, "web", doc.Metadata[models.MetaFileType])

	_, hasPage := doc.Page()
	assert.False(t, hasPage, "web documents carry no page number")
}

func TestWebLoaderUnreachableHost(t *testing.T) {
	sink := &spySink{}
	loader := walker.NewWebLoader(walker.WebConfig{RateLimit: 100, Timeout: time.Second}, sink)

	docs := loader.LoadAll(context.Background(), []string{"http://127.0.0.1:1/none"})
	assert.Empty(t, docs)
	assert.Len(t, sink.errs, 1)
}
