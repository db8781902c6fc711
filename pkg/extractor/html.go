package extractor

import (
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yamato-dev/kura/internal/models"
)

// mainContentSelectors are tried in order before falling back to body.
var mainContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".documentation",
	"#documentation",
}

// HTML extracts the main content of a local HTML file as a single
// page-1 document.
type HTML struct{}

func (h *HTML) Extract(path string) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	meta := map[string]interface{}{
		models.MetaSource:   path,
		models.MetaPage:     1,
		models.MetaFileType: "html",
	}
	if title := strings.TrimSpace(parsed.Find("title").Text()); title != "" {
		meta[models.MetaTitle] = title
	}

	doc := models.New(MainContent(parsed), meta)
	return []models.Document{doc}, nil
}

// MainContent extracts the readable text of a parsed HTML document,
// preferring a main content region over the whole body.
func MainContent(doc *goquery.Document) string {
	var content string
	for _, selector := range mainContentSelectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}
	if content == "" {
		content = doc.Find("body").Text()
	}
	return CleanContent(content)
}

// CleanContent collapses whitespace runs into single spaces.
func CleanContent(content string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(content), " "))
}
