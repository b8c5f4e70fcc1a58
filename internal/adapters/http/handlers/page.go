package handlers

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/app"
	"github.com/jsamuelsen/quotebook/internal/domain"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// pageTemplate is parsed once; rendering is a pure function of a PageView.
var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// DefaultMaxImportSize caps uploaded import files when no limit is given.
// It matches the default server.max_request_size.
const DefaultMaxImportSize int64 = 1 << 20

// PageHandler serves the server-rendered quote page and its form posts.
// Form actions store a notice in the session and redirect back to the page.
type PageHandler struct {
	service   *app.QuoteService
	maxImport int64
}

// NewPageHandler creates a page handler. maxImport caps uploaded files and
// should equal the server's request body limit; zero or less uses
// DefaultMaxImportSize.
func NewPageHandler(service *app.QuoteService, maxImport int64) *PageHandler {
	if maxImport <= 0 {
		maxImport = DefaultMaxImportSize
	}

	return &PageHandler{service: service, maxImport: maxImport}
}

// Show handles GET /. A q query lists the quotes whose category contains
// it, ignoring case.
func (h *PageHandler) Show(c *gin.Context) {
	view, err := h.service.Page(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if q := c.Query("q"); q != "" {
		view.Search = q
		view.Matches = h.service.ListQuotes(domain.AllCategories, q)
	}

	h.render(c, http.StatusOK, view)
}

// Random handles POST /random. The page is rendered in place so an empty
// category can show its message without touching stored state.
func (h *PageHandler) Random(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)
	selection := c.PostForm("category")

	result, err := h.service.RandomQuote(ctx, sessionID, selection)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view, err := h.service.Page(ctx, sessionID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view.Display = result.Display
	view.Selector = view.Selector.Select(selection)

	h.render(c, http.StatusOK, view)
}

// SelectCategory handles POST /category.
func (h *PageHandler) SelectCategory(c *gin.Context) {
	if err := h.service.SelectCategory(c.Request.Context(), c.PostForm("category")); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// AddQuote handles POST /quotes. A validation failure is reported through
// the session notice, not an error page.
func (h *PageHandler) AddQuote(c *gin.Context) {
	_, err := h.service.AddQuote(c.Request.Context(), middleware.GetSessionID(c),
		c.PostForm("text"), c.PostForm("category"))
	if err != nil && !isUserError(err) {
		dto.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// Import handles POST /import with a multipart "file" field. Files over the
// limit, including bodies the server cut off, get a notice instead of a
// parse attempt.
func (h *PageHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")

	var cutOff *http.MaxBytesError

	switch {
	case errors.As(err, &cutOff):
		h.rejectImport(c)
		return
	case err != nil:
		dto.RespondBodyError(c, err, "a file is required")
		return
	case header.Size > h.maxImport:
		h.rejectImport(c)
		return
	}

	file, err := header.Open()
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, h.maxImport+1))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if int64(len(data)) > h.maxImport {
		h.rejectImport(c)
		return
	}

	_, err = h.service.ImportJSON(c.Request.Context(), middleware.GetSessionID(c), data)
	if err != nil && !isUserError(err) {
		dto.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) rejectImport(c *gin.Context) {
	h.service.Notify(c.Request.Context(), middleware.GetSessionID(c), app.NoticeFileTooLarge)
	c.Redirect(http.StatusSeeOther, "/")
}

// Export handles GET /export.
func (h *PageHandler) Export(c *gin.Context) {
	writeExport(c, h.service)
}

// RegisterPageRoutes registers the HTML routes on the engine.
func (h *PageHandler) RegisterPageRoutes(rg gin.IRoutes) {
	rg.GET("/", h.Show)
	rg.POST("/random", h.Random)
	rg.POST("/category", h.SelectCategory)
	rg.POST("/quotes", h.AddQuote)
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}

func (h *PageHandler) render(c *gin.Context, status int, view *app.PageView) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")

	if err := pageTemplate.Execute(c.Writer, view); err != nil {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "rendering page",
			slog.Any("error", err))
	}
}
