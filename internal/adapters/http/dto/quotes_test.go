package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

func TestListQuotesRequest_Selection(t *testing.T) {
	assert.Equal(t, domain.AllCategories, (&ListQuotesRequest{}).Selection())
	assert.Equal(t, "Wisdom", (&ListQuotesRequest{Category: "Wisdom"}).Selection())
}

func TestNewQuoteResponse(t *testing.T) {
	resp := NewQuoteResponse(domain.Quote{Text: "Know thyself.", Category: "Wisdom"})

	assert.Equal(t, QuoteResponse{
		Text:     "Know thyself.",
		Category: "Wisdom",
		Display:  `"Know thyself." — Wisdom`,
	}, resp)
}
