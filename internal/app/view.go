package app

import "github.com/jsamuelsen/quotebook/internal/domain"

// User-facing notices shown after form actions.
const (
	NoticeAdded         = "Quote added successfully!"
	NoticeMissingFields = "Please enter both quote text and category!"
	NoticeImported      = "Quotes imported successfully!"
	NoticeInvalidFormat = "Invalid JSON format."
	NoticeParseError    = "Error parsing JSON file."
	NoticeFileTooLarge  = "File is too large to import."
)

// Option is one entry of the category selector.
type Option struct {
	Value    string
	Label    string
	Selected bool

	// Stale marks a remembered category that no quote carries any more.
	Stale bool
}

// Selector describes the category drop-down.
type Selector struct {
	Options  []Option
	Selected string
}

// Select returns a copy of the selector with value marked as selected.
// A value no option carries is appended as a stale option, so a remembered
// category nobody uses any more keeps reporting itself as empty instead of
// falling back to all.
func (s Selector) Select(value string) Selector {
	options := make([]Option, 0, len(s.Options)+1)
	found := false

	for _, o := range s.Options {
		if o.Stale {
			continue
		}

		o.Selected = o.Value == value || (domain.IsAllCategories(o.Value) && domain.IsAllCategories(value))
		found = found || o.Selected
		options = append(options, o)
	}

	if !found && !domain.IsAllCategories(value) {
		options = append(options, Option{Value: value, Label: value, Selected: true, Stale: true})
	}

	return Selector{Options: options, Selected: value}
}

// AddForm describes the add-quote form. It is rendered once per page.
type AddForm struct {
	TextName            string
	TextPlaceholder     string
	CategoryName        string
	CategoryPlaceholder string
	ButtonLabel         string
}

// DefaultAddForm is the form shown on every page.
var DefaultAddForm = AddForm{
	TextName:            "text",
	TextPlaceholder:     "Enter a new quote",
	CategoryName:        "category",
	CategoryPlaceholder: "Enter quote category",
	ButtonLabel:         "Add Quote",
}

// PageView is everything the page template needs for one render.
// Rendering the same PageView twice produces the same document.
type PageView struct {
	// Display is the quote line, the empty-category message, or empty.
	Display string

	Selector Selector
	Form     AddForm

	// Notice is a one-shot message from the previous action.
	Notice string

	// Count is the total number of stored quotes.
	Count int

	// Search is the category search term; Matches holds its results.
	Search  string
	Matches []domain.Quote
}
