package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
)

// Syncer runs a single sync tick on demand.
type Syncer interface {
	Tick(ctx context.Context) (int, error)
}

// QuoteHandler serves the JSON API for quotes, categories and sync.
type QuoteHandler struct {
	service *app.QuoteService
	syncer  Syncer
}

// NewQuoteHandler creates a quote API handler. syncer may be nil, in which
// case POST /sync answers 503.
func NewQuoteHandler(service *app.QuoteService, syncer Syncer) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		syncer:  syncer,
	}
}

// ListQuotes handles GET /api/v1/quotes.
//
// @Summary List quotes
// @Tags quotes
// @Param category query string false "Category filter, all by default"
// @Param q query string false "Case-insensitive category substring"
// @Param limit query int false "Page size (1-100)"
// @Param cursor query string false "Cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteItem]
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.ListQuotesRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	start, err := req.Start()
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	quotes := h.service.ListQuotes(req.Selection(), req.Search)

	items := make([]dto.QuoteItem, len(quotes))
	for i, q := range quotes {
		items[i] = dto.QuoteItem{Position: i, Text: q.Text, Category: q.Category}
	}

	c.JSON(http.StatusOK, dto.Paginate(items, start, req.GetLimit()))
}

// AddQuote handles POST /api/v1/quotes.
//
// @Summary Add a quote
// @Tags quotes
// @Accept json
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) AddQuote(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	q, err := h.service.AddQuote(c.Request.Context(), middleware.GetSessionID(c), req.Text, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(q))
}

// RandomQuote handles GET /api/v1/quotes/random.
//
// @Summary Show a random quote
// @Tags quotes
// @Param category query string false "Category filter, all by default"
// @Param q query string false "Case-insensitive category substring"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	selection := c.DefaultQuery("category", domain.AllCategories)

	result, err := h.service.RandomQuote(c.Request.Context(), middleware.GetSessionID(c), selection)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if !result.Found {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, result.Display)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(result.Quote))
}

// ExportQuotes handles GET /api/v1/quotes/export.
func (h *QuoteHandler) ExportQuotes(c *gin.Context) {
	writeExport(c, h.service)
}

// ImportQuotes handles POST /api/v1/quotes/import with a raw JSON body.
//
// @Summary Import quotes
// @Tags quotes
// @Accept json
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/import [post]
func (h *QuoteHandler) ImportQuotes(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.RespondBodyError(c, err, "reading request body failed")
		return
	}

	n, err := h.service.ImportJSON(c.Request.Context(), middleware.GetSessionID(c), data)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{Imported: n})
}

// Categories handles GET /api/v1/categories.
func (h *QuoteHandler) Categories(c *gin.Context) {
	selector, err := h.service.CategorySelector(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CategoriesResponse{
		Categories: h.service.Categories(),
		Selected:   selector.Selected,
	})
}

// SetCategoryPreference handles PUT /api/v1/preferences/category.
func (h *QuoteHandler) SetCategoryPreference(c *gin.Context) {
	var req dto.CategoryPreferenceRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	if err := h.service.SelectCategory(c.Request.Context(), req.Category); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Sync handles POST /api/v1/sync by running one tick immediately.
//
// @Summary Sync with the remote feed now
// @Tags sync
// @Success 200 {object} dto.SyncResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/sync [post]
func (h *QuoteHandler) Sync(c *gin.Context) {
	if h.syncer == nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeUnavailable, "sync is disabled")
		return
	}

	n, err := h.syncer.Tick(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{Merged: n})
}

// RegisterQuoteRoutes registers the API routes on rg. Mutating routes are
// wrapped with the gateway auth checks when auth is enabled.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup, auth *config.AuthConfig) {
	write := middleware.Guard(auth, middleware.RequireScopes(auth, middleware.ScopeQuotesWrite))
	admin := middleware.Guard(auth, middleware.RequireRole(auth, middleware.RoleAdmin))

	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", append(write, h.AddQuote)...)
	quotes.GET("/random", h.RandomQuote)
	quotes.GET("/export", h.ExportQuotes)
	quotes.POST("/import", append(write, h.ImportQuotes)...)

	rg.GET("/categories", h.Categories)
	rg.PUT("/preferences/category", append(write, h.SetCategoryPreference)...)
	rg.POST("/sync", append(admin, h.Sync)...)
}

// writeExport sends every quote as a quotes.json attachment.
func writeExport(c *gin.Context, service *app.QuoteService) {
	data, err := service.ExportJSON(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+app.ExportFilename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// isUserError reports errors the page shows as a notice.
func isUserError(err error) bool {
	return domain.IsValidation(err) || domain.IsParse(err) || domain.IsFormat(err)
}
