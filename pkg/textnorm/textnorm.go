// Package textnorm sanitizes strings for safe round-tripping through
// legacy narrow text encodings. On platforms whose default encoding is
// Shift-JIS (Windows/cp932), characters the encoding cannot represent are
// dropped; the loss is an accepted tradeoff, not an error.
package textnorm

import (
	"runtime"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/unicode/norm"

	"github.com/yamato-dev/kura/internal/models"
)

// Normalizer applies encoding-aware string sanitation. The zero value is
// a pass-through; use Default or New.
type Normalizer struct {
	legacy bool
}

// Default returns a normalizer matching the current platform: legacy
// Shift-JIS behavior on Windows, identity elsewhere.
func Default() *Normalizer {
	return New(runtime.GOOS == "windows")
}

// New returns a normalizer with the legacy-encoding path forced on or
// off, independent of the platform. Tests use this to exercise the
// legacy path everywhere.
func New(legacy bool) *Normalizer {
	return &Normalizer{legacy: legacy}
}

// Normalize sanitizes string values and passes everything else through
// unchanged.
func (n *Normalizer) Normalize(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	return n.NormalizeString(s)
}

// NormalizeString brings s to NFC form and round-trips it through
// Shift-JIS, silently dropping unencodable characters. On non-legacy
// platforms the input is returned unchanged.
func (n *Normalizer) NormalizeString(s string) string {
	if !n.legacy {
		return s
	}

	s = norm.NFC.String(s)

	// The x/text encoder substitutes unsupported runes; encoding rune by
	// rune lets us drop them instead.
	enc := japanese.ShiftJIS.NewEncoder()
	var encoded []byte
	for _, r := range s {
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			continue
		}
		encoded = append(encoded, b...)
	}

	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(encoded)
	if err != nil {
		// Bytes we just produced should always decode; keep the NFC
		// string rather than losing the whole value.
		return s
	}
	return string(decoded)
}

// Apply returns a copy of doc with its content and metadata string
// values normalized.
func (n *Normalizer) Apply(doc models.Document) models.Document {
	meta := make(map[string]interface{}, len(doc.Metadata))
	for k, v := range doc.Metadata {
		meta[k] = n.Normalize(v)
	}
	return models.Document{
		Content:  n.NormalizeString(doc.Content),
		Metadata: meta,
	}
}
