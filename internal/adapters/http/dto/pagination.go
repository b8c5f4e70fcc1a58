package dto

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// Page size bounds for listings.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalidCursor is returned for a cursor this service did not issue.
var ErrInvalidCursor = errors.New("invalid cursor")

const cursorPrefix = "pos:"

// PaginationRequest is the query of a paged listing. Cursor is opaque to
// clients and names the position the page starts at.
type PaginationRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"  validate:"omitempty,min=1,max=100"`
}

// GetLimit clamps Limit into [1, MaxLimit], defaulting to DefaultLimit.
func (p *PaginationRequest) GetLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultLimit
	case p.Limit > MaxLimit:
		return MaxLimit
	}

	return p.Limit
}

// Start returns the position the requested page begins at; 0 without a
// cursor.
func (p *PaginationRequest) Start() (int, error) {
	if p.Cursor == "" {
		return 0, nil
	}

	return DecodeCursor(p.Cursor)
}

// PaginatedResponse is one page of a listing.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
}

// Paginate cuts the page [start, start+limit) out of all. A start past the
// end yields an empty last page.
func Paginate[T any](all []T, start, limit int) *PaginatedResponse[T] {
	start = min(max(start, 0), len(all))
	end := min(start+limit, len(all))

	page := &PaginatedResponse[T]{Items: all[start:end:end]}
	if end < len(all) {
		page.HasMore = true
		page.NextCursor = EncodeCursor(end)
	}

	return page
}

// EncodeCursor makes the opaque cursor for position pos.
func EncodeCursor(pos int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(pos)))
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, ErrInvalidCursor
	}

	digits, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, ErrInvalidCursor
	}

	pos, err := strconv.Atoi(digits)
	if err != nil || pos < 0 {
		return 0, ErrInvalidCursor
	}

	return pos, nil
}
