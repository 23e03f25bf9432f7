package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/starford/ladle/internal/models"
)

// EncodeRecords renders the record set in the persisted interchange format:
// a JSON array with two-space indent and no HTML escaping, so the mostly-CJK
// content stays readable in the output file.
func EncodeRecords(recipes []models.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recipes); err != nil {
		return nil, fmt.Errorf("corpus: encode records: %w", err)
	}
	return buf.Bytes(), nil
}
