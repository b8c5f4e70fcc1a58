package app

import (
	"strings"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// Categories returns the distinct categories of quotes in first-seen order.
func Categories(quotes []domain.Quote) []string {
	seen := make(map[string]struct{}, len(quotes))
	out := make([]string, 0, len(quotes))

	for _, q := range quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}

		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}

	return out
}

// Filter returns the quotes matching selection. The "all" selection returns
// every quote. Other selections match categories exactly, so an unknown
// category yields an empty result.
func Filter(quotes []domain.Quote, selection string) []domain.Quote {
	if domain.IsAllCategories(selection) {
		return quotes
	}

	out := make([]domain.Quote, 0)

	for _, q := range quotes {
		if q.Category == selection {
			out = append(out, q)
		}
	}

	return out
}

// Search returns the quotes whose category contains term, ignoring case.
// An empty term matches every quote.
func Search(quotes []domain.Quote, term string) []domain.Quote {
	needle := strings.ToLower(term)
	out := make([]domain.Quote, 0)

	for _, q := range quotes {
		if strings.Contains(strings.ToLower(q.Category), needle) {
			out = append(out, q)
		}
	}

	return out
}

// Categories returns the repository's distinct categories, recomputed per call.
func (r *Repository) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Categories(r.quotes)
}

// Filtered returns a copy of the quotes matching selection.
func (r *Repository) Filtered(selection string) []domain.Quote {
	return Filter(r.All(), selection)
}
