package models

// Metadata keys every pipeline document may carry.
const (
	MetaSource    = "source"
	MetaPage      = "page"
	MetaFileType  = "file_type"
	MetaTotalRows = "total_rows"
	MetaTitle     = "title"
)

// Document is the unit of ingestion output: extracted or synthesized text
// plus provenance metadata.
type Document struct {
	Content  string
	Metadata map[string]interface{}
}

// New returns a Document with its own metadata map.
func New(content string, metadata map[string]interface{}) Document {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return Document{Content: content, Metadata: metadata}
}

// Derive returns a copy of the document with new content and a fresh
// metadata map seeded from the parent's, overlaid with extra. The parent
// is never mutated.
func (d Document) Derive(content string, extra map[string]interface{}) Document {
	meta := make(map[string]interface{}, len(d.Metadata)+len(extra))
	for k, v := range d.Metadata {
		meta[k] = v
	}
	for k, v := range extra {
		meta[k] = v
	}
	return Document{Content: content, Metadata: meta}
}

// FileType returns the file_type metadata value, or "" when absent.
func (d Document) FileType() string {
	if v, ok := d.Metadata[MetaFileType].(string); ok {
		return v
	}
	return ""
}

// Page returns the page metadata value and whether it was set.
func (d Document) Page() (int, bool) {
	switch v := d.Metadata[MetaPage].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
