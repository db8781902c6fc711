package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yamato-dev/kura/pkg/extractor"
)

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := extractor.NewRegistry()

	e, ok := r.Lookup("docs/Report.PDF")
	assert.True(t, ok)
	assert.NotNil(t, e)

	e, ok = r.Lookup("notes.TXT")
	assert.True(t, ok)
	assert.NotNil(t, e)
}

func TestRegistryUnknownExtension(t *testing.T) {
	r := extractor.NewRegistry()

	e, ok := r.Lookup("archive.zip")
	assert.False(t, ok)
	assert.Nil(t, e)

	e, ok = r.Lookup("no-extension")
	assert.False(t, ok)
	assert.Nil(t, e)
}

func TestRegistryNilExtractorIsRegistered(t *testing.T) {
	r := extractor.NewRegistry()
	r.Register(".docx", nil)

	// The extension stays registered, signalling misconfiguration
	// rather than a silent skip.
	e, ok := r.Lookup("plan.docx")
	assert.True(t, ok)
	assert.Nil(t, e)
}

func TestRegistryRestrict(t *testing.T) {
	r := extractor.NewRegistry()
	r.Restrict([]string{".txt", ".PDF"})

	_, ok := r.Lookup("a.txt")
	assert.True(t, ok)
	_, ok = r.Lookup("a.pdf")
	assert.True(t, ok)
	_, ok = r.Lookup("a.docx")
	assert.False(t, ok)
	_, ok = r.Lookup("a.md")
	assert.False(t, ok)
}

func TestRegistryTabular(t *testing.T) {
	r := extractor.NewRegistry()

	assert.True(t, r.IsTabular("data.csv"))
	assert.True(t, r.IsTabular("data.CSV"))
	assert.False(t, r.IsTabular("data.txt"))

	// Tabular extensions never resolve to an extractor.
	_, ok := r.Lookup("data.csv")
	assert.False(t, ok)
}

func TestRegistryRestrictCoversTabular(t *testing.T) {
	r := extractor.NewRegistry()
	r.Restrict([]string{".txt"})
	assert.False(t, r.IsTabular("data.csv"))

	r = extractor.NewRegistry()
	r.Restrict([]string{".txt", ".csv"})
	assert.True(t, r.IsTabular("data.csv"))
}
