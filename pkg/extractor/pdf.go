package extractor

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/yamato-dev/kura/internal/models"
)

// PDF extracts one document per page.
type PDF struct{}

func (p *PDF) Extract(path string) ([]models.Document, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var docs []models.Document
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		// Sequential 1-based numbering in document order, independent of
		// skipped blank pages.
		docs = append(docs, models.New(text, map[string]interface{}{
			models.MetaSource:   path,
			models.MetaPage:     len(docs) + 1,
			models.MetaFileType: "pdf",
		}))
	}

	return docs, nil
}
