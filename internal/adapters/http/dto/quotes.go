package dto

import (
	"github.com/jsamuelsen/quotebook/internal/domain"
)

// AddQuoteRequest is the body of POST /api/v1/quotes.
type AddQuoteRequest struct {
	Text     string `json:"text"     validate:"notempty"`
	Category string `json:"category" validate:"notempty"`
}

// ListQuotesRequest holds the query of GET /api/v1/quotes.
type ListQuotesRequest struct {
	PaginationRequest

	// Category filters the listing; empty or "all" lists everything.
	Category string `form:"category"`

	// Search keeps quotes whose category contains it, ignoring case.
	Search string `form:"q"`
}

// Selection returns the requested category, defaulting to all.
func (r *ListQuotesRequest) Selection() string {
	if r.Category == "" {
		return domain.AllCategories
	}

	return r.Category
}

// QuoteItem is one entry of a quote listing.
type QuoteItem struct {
	// Position is the index within the filtered listing.
	Position int    `json:"position"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// QuoteResponse is a single quote with its display line.
type QuoteResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Display  string `json:"display"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		Text:     q.Text,
		Category: q.Category,
		Display:  q.Display(),
	}
}

// CategoriesResponse is the body of GET /api/v1/categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

// CategoryPreferenceRequest is the body of PUT /api/v1/preferences/category.
type CategoryPreferenceRequest struct {
	Category string `json:"category" validate:"notempty"`
}

// ImportResponse reports how many quotes an import appended.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// SyncResponse reports how many quotes a manual sync merged.
type SyncResponse struct {
	Merged int `json:"merged"`
}
