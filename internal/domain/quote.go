// Package domain contains core business entities and rules.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AllCategories is the selector value that matches every quote.
const AllCategories = "all"

// NoQuotesMessage is displayed when a selection matches nothing.
const NoQuotesMessage = "No quotes in this category."

// Quote is a piece of quoted text and the category it is filed under.
// Quotes have no identity: duplicates are allowed and expected after
// imports and syncs.
type Quote struct {
	// Text is the quoted text.
	Text string `json:"text"`

	// Category is a case-sensitive label used for filtering.
	Category string `json:"category"`
}

// Display formats the quote the way it is shown to users.
func (q Quote) Display() string {
	return fmt.Sprintf("\"%s\" — %s", q.Text, q.Category)
}

// IsAllCategories reports whether selection means "no filter".
// Both the option value and its label are accepted.
func IsAllCategories(selection string) bool {
	return selection == AllCategories || selection == "All"
}

// DefaultQuotes returns the seed list used when nothing usable is stored.
func DefaultQuotes() []Quote {
	return []Quote{
		{Text: "The best way to get started is to quit talking and begin doing.", Category: "Motivation"},
		{Text: "Don’t let yesterday take up too much of today.", Category: "Wisdom"},
		{Text: "It’s not whether you get knocked down, it’s whether you get up.", Category: "Inspiration"},
		{Text: "If you are working on something exciting, it will keep you motivated.", Category: "Work"},
	}
}

// ParseQuotes decodes a JSON array of quotes read from source.
// Malformed JSON yields a ParseError. Well-formed JSON that is not an array
// of objects yields a FormatError. Object elements are taken as-is, so
// missing fields decode to empty strings.
func ParseQuotes(source string, data []byte) ([]Quote, error) {
	if !json.Valid(data) {
		var v any

		return nil, NewParseError(source, json.Unmarshal(data, &v))
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, NewFormatError(source, "a JSON array")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, NewFormatError(source, "a JSON array")
	}

	quotes := make([]Quote, 0, len(items))

	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, NewFormatError(source, "an array of quote objects")
		}

		var q Quote
		if err := json.Unmarshal(item, &q); err != nil {
			return nil, NewFormatError(source, "an array of quote objects")
		}

		quotes = append(quotes, q)
	}

	return quotes, nil
}
