package acl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotebook/internal/adapters/clients"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

// DefaultFeedCategory is the category assigned to every fetched quote.
const DefaultFeedCategory = "Server"

// FeedClientConfig contains configuration for the feed client.
type FeedClientConfig struct {
	// Client is the HTTP client; its BaseURL points at the feed host.
	Client *clients.Client

	// Category is assigned to every fetched quote. Defaults to "Server".
	Category string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// FeedClient implements ports.RemoteQuoteSource against a JSONPlaceholder
// style /posts endpoint. Only the post title survives translation.
type FeedClient struct {
	BaseAdapter

	category string
	logger   *slog.Logger
}

// NewFeedClient creates a feed client adapter.
// Panics if Client is nil.
func NewFeedClient(cfg FeedClientConfig) *FeedClient {
	if cfg.Client == nil {
		panic("FeedClient: Client is required")
	}

	category := cfg.Category
	if category == "" {
		category = DefaultFeedCategory
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FeedClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, ""),
		category:    category,
		logger:      logger,
	}
}

// feedPost is the external DTO. Title is a pointer so a missing field can be
// told apart from an empty one.
type feedPost struct {
	ID     int     `json:"id"`
	UserID int     `json:"userId"`
	Title  *string `json:"title"`
	Body   string  `json:"body"`
}

// FetchQuotes fetches up to limit posts and translates them into quotes.
func (c *FeedClient) FetchQuotes(ctx context.Context, limit int) ([]domain.Quote, error) {
	if limit < 1 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}

	path := fmt.Sprintf("/posts?_limit=%d", limit)
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	posts, err := GetJSON[[]feedPost](ctx, &c.BaseAdapter, path, "fetch quotes", "a JSON array of posts")
	if err != nil {
		return nil, err
	}

	quotes, err := TranslateSlice(posts, c.translate)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "fetched remote quotes", slog.Int("count", len(quotes)))

	return quotes, nil
}

func (c *FeedClient) translate(post *feedPost) (domain.Quote, error) {
	if post.Title == nil {
		return domain.Quote{}, domain.NewFormatError(c.ServiceName(), "posts with a title")
	}

	c.logger.Log(context.Background(), logging.LevelTrace, "translated post",
		slog.Int("post_id", post.ID))

	return domain.Quote{Text: *post.Title, Category: c.category}, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *FeedClient) Name() string {
	return c.ServiceName()
}

// Check fetches a single post to verify the feed is reachable.
// Implements ports.HealthChecker.
func (c *FeedClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, "/posts?_limit=1", "health check")
	if err != nil {
		return err
	}

	return body.Close()
}
