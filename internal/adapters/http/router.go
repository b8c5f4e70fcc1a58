package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds every /api/v1 request.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig lists what SetupRouter mounts. Nil handlers leave their
// routes out.
type RouterConfig struct {
	Logger     *slog.Logger
	AuthConfig *config.AuthConfig
	AppConfig  *config.AppConfig

	HealthHandler *handlers.HealthHandler
	PageHandler   *handlers.PageHandler
	QuoteHandler  *handlers.QuoteHandler

	// Session configures the cookie shared by the page and the API.
	Session middleware.SessionConfig

	// Timeout applies to /api/v1 only. Zero disables it.
	Timeout time.Duration
}

// SetupRouter installs the global chain (recovery, logger injection,
// request and correlation IDs, tracing and metrics, access log) and then
// three route groups:
//
//	/-/      probes, build info and the Prometheus scrape; no session
//	/        the HTML page and its form posts; session cookie
//	/api/v1  JSON API; session cookie, timeout, auth on writes
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.InjectLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.AppConfig.Name)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterRoutes(engine)
	}

	site := engine.Group("/", middleware.Session(cfg.Session))

	if cfg.PageHandler != nil {
		cfg.PageHandler.RegisterPageRoutes(site)
	}

	apiV1 := site.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		authCfg := cfg.AuthConfig
		if authCfg == nil {
			authCfg = &config.AuthConfig{}
		}

		cfg.QuoteHandler.RegisterQuoteRoutes(apiV1, authCfg)
	}
}
