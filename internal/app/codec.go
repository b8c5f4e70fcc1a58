package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// ExportFilename is the suggested name for exported quote files.
const ExportFilename = "quotes.json"

// importSource names import payloads in parse and format errors.
const importSource = "import"

// EncodeQuotes renders quotes as a JSON array indented by two spaces.
// HTML characters are left unescaped so exported text reads as entered.
func EncodeQuotes(quotes []domain.Quote) ([]byte, error) {
	if quotes == nil {
		quotes = []domain.Quote{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(quotes); err != nil {
		return nil, fmt.Errorf("encoding quotes: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeQuotes parses an import payload.
// See domain.ParseQuotes for the error contract.
func DecodeQuotes(data []byte) ([]domain.Quote, error) {
	return domain.ParseQuotes(importSource, data)
}
