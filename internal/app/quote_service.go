// Package app contains application services that orchestrate use cases.
package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
	"github.com/jsamuelsen/quotebook/internal/ports"
)

// RandomResult is the outcome of picking a random quote.
type RandomResult struct {
	// Quote is the picked quote. Zero when Found is false.
	Quote domain.Quote

	// Display is the formatted quote or domain.NoQuotesMessage.
	Display string

	// Found reports whether the selection matched any quote.
	Found bool
}

// QuoteService orchestrates the quote viewer's use cases.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	repo     *Repository
	store    ports.QuoteStore
	sessions ports.SessionStore
	picker   ports.IndexPicker
	executor *Executor
	logger   *slog.Logger
}

// QuoteServiceConfig contains dependencies for the quote service.
type QuoteServiceConfig struct {
	Repository *Repository
	Sessions   ports.SessionStore
	Picker     ports.IndexPicker
	Logger     *slog.Logger
}

// NewQuoteService creates a quote service.
// Panics if Repository or Sessions is nil. Picker defaults to an unseeded
// RandomPicker and Logger to slog.Default().
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("app: repository is required")
	}

	if cfg.Sessions == nil {
		panic("app: session store is required")
	}

	if cfg.Picker == nil {
		cfg.Picker = NewRandomPicker(0)
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &QuoteService{
		repo:     cfg.Repository,
		store:    cfg.Repository.store,
		sessions: cfg.Sessions,
		picker:   cfg.Picker,
		executor: NewExecutor(cfg.Logger),
		logger:   cfg.Logger,
	}
}

// Repository returns the underlying repository.
func (s *QuoteService) Repository() *Repository { return s.repo }

// Page builds the view for a session: the last shown quote, the category
// selector, the add form, and any pending notice. The notice is consumed.
func (s *QuoteService) Page(ctx context.Context, sessionID string) (*PageView, error) {
	selector, last, notice, err := Parallel3(ctx,
		s.CategorySelector,
		func(ctx context.Context) (string, error) {
			return s.sessionValue(ctx, sessionID, ports.SessionKeyLastQuote, false)
		},
		func(ctx context.Context) (string, error) {
			return s.sessionValue(ctx, sessionID, ports.SessionKeyNotice, true)
		},
	)
	if err != nil {
		return nil, err
	}

	return &PageView{
		Display:  last,
		Selector: selector,
		Form:     DefaultAddForm,
		Notice:   notice,
		Count:    s.repo.Len(),
	}, nil
}

// RandomQuote picks a quote from the selection. An empty selection result
// returns domain.NoQuotesMessage and writes nothing. Otherwise the formatted
// quote is remembered for the session and selection becomes the stored
// category preference.
func (s *QuoteService) RandomQuote(ctx context.Context, sessionID, selection string) (RandomResult, error) {
	filtered := s.repo.Filtered(selection)
	if len(filtered) == 0 {
		return RandomResult{Display: domain.NoQuotesMessage}, nil
	}

	q := filtered[s.picker.Pick(len(filtered))]
	display := q.Display()

	if err := s.sessions.Set(ctx, sessionID, ports.SessionKeyLastQuote, display); err != nil {
		return RandomResult{}, err
	}

	if err := s.store.SetLastCategory(ctx, selection); err != nil {
		return RandomResult{}, err
	}

	return RandomResult{Quote: q, Display: display, Found: true}, nil
}

// CategorySelector lists "All" followed by every category, with the stored
// preference selected. Without a stored preference "all" is selected.
func (s *QuoteService) CategorySelector(ctx context.Context) (Selector, error) {
	selected, err := s.store.LastCategory(ctx)
	if err != nil {
		if !domain.IsNotFound(err) {
			return Selector{}, err
		}

		selected = domain.AllCategories
	}

	categories := s.repo.Categories()

	options := make([]Option, 0, len(categories)+1)
	options = append(options, Option{Value: domain.AllCategories, Label: "All"})

	for _, c := range categories {
		options = append(options, Option{Value: c, Label: c})
	}

	return Selector{Options: options}.Select(selected), nil
}

// SelectCategory stores a selector change.
func (s *QuoteService) SelectCategory(ctx context.Context, category string) error {
	return s.store.SetLastCategory(ctx, category)
}

// ListQuotes returns the quotes matching selection, narrowed to categories
// containing search when search is not empty.
func (s *QuoteService) ListQuotes(selection, search string) []domain.Quote {
	quotes := s.repo.Filtered(selection)
	if search == "" {
		return quotes
	}

	return Search(quotes, search)
}

// Categories returns the distinct categories in first-seen order.
func (s *QuoteService) Categories() []string {
	return s.repo.Categories()
}

// AddQuote adds a quote and leaves a notice for the session.
func (s *QuoteService) AddQuote(ctx context.Context, sessionID, text, category string) (domain.Quote, error) {
	q, err := s.repo.Add(ctx, text, category)
	if err != nil {
		if domain.IsValidation(err) {
			s.Notify(ctx, sessionID, NoticeMissingFields)
		}

		return domain.Quote{}, err
	}

	s.log(ctx).InfoContext(ctx, "quote added", slog.String("category", q.Category))
	s.Notify(ctx, sessionID, NoticeAdded)

	return q, nil
}

// ExportJSON renders every quote as an indented JSON array.
func (s *QuoteService) ExportJSON(_ context.Context) ([]byte, error) {
	return EncodeQuotes(s.repo.All())
}

// ImportJSON appends the quotes in data. Malformed JSON yields a
// domain.ParseError and anything but an array a domain.FormatError; in both
// cases the repository is unchanged. A notice is left for the session.
func (s *QuoteService) ImportJSON(ctx context.Context, sessionID string, data []byte) (int, error) {
	op := Operation[[]byte, []domain.Quote, []domain.Quote, int]{
		Name: "import_quotes",
		Validate: func(_ context.Context, data []byte) error {
			if len(bytes.TrimSpace(data)) == 0 {
				return domain.NewParseError(importSource, errors.New("empty payload"))
			}

			return nil
		},
		Perform: func(_ context.Context, data []byte) ([]domain.Quote, error) {
			return DecodeQuotes(data)
		},
		Verify: func(_ context.Context, _ []byte, decoded []domain.Quote) ([]domain.Quote, error) {
			if decoded == nil {
				return nil, domain.NewFormatError(importSource, "a JSON array")
			}

			return decoded, nil
		},
		Archive: func(ctx context.Context, _ []byte, verified []domain.Quote) error {
			_, err := s.repo.ImportMany(ctx, verified)
			return err
		},
		Respond: func(_ context.Context, _ []byte, verified []domain.Quote) (int, error) {
			return len(verified), nil
		},
	}

	n, err := Execute(ctx, s.executor, op, data)

	switch {
	case err == nil:
		s.Notify(ctx, sessionID, NoticeImported)
	case domain.IsFormat(err):
		s.Notify(ctx, sessionID, NoticeInvalidFormat)
	case domain.IsParse(err):
		s.Notify(ctx, sessionID, NoticeParseError)
	}

	return n, err
}

func (s *QuoteService) sessionValue(ctx context.Context, sessionID, key string, consume bool) (string, error) {
	get := s.sessions.Get
	if consume {
		get = s.sessions.Pop
	}

	v, err := get(ctx, sessionID, key)
	if domain.IsNotFound(err) {
		return "", nil
	}

	return v, err
}

// Notify records a one-shot notice for the session's next page. Failures
// are logged, never returned.
func (s *QuoteService) Notify(ctx context.Context, sessionID, notice string) {
	if sessionID == "" {
		return
	}

	if err := s.sessions.Set(ctx, sessionID, ports.SessionKeyNotice, notice); err != nil {
		s.log(ctx).WarnContext(ctx, "failed to store notice", slog.Any("error", err))
	}
}

func (s *QuoteService) log(ctx context.Context) *slog.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l
	}

	return s.logger
}
