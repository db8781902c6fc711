package extractor

import (
	"os"

	"github.com/yamato-dev/kura/internal/models"
)

// Text extracts a plain-text file as a single page-1 document.
type Text struct{}

func (t *Text) Extract(path string) ([]models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := models.New(string(data), map[string]interface{}{
		models.MetaSource:   path,
		models.MetaPage:     1,
		models.MetaFileType: "txt",
	})
	return []models.Document{doc}, nil
}
