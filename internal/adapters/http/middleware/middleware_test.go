package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generates UUID when absent"},
		{name: "passes through existing header", header: "existing-req-123", wantSame: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ginID, ctxID string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				ginID = GetRequestID(c)
				ctxID = RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}

			w := serve(router, req)

			assert.Equal(t, w.Header().Get(HeaderRequestID), ginID)
			assert.Equal(t, ginID, ctxID)

			if tt.wantSame {
				assert.Equal(t, tt.header, ginID)
			} else {
				_, err := uuid.Parse(ginID)
				assert.NoError(t, err)
			}
		})
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	t.Parallel()

	var ginID, ctxID string

	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		ginID = GetCorrelationID(c)
		ctxID = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderCorrelationID, "corr-1")

	w := serve(router, req)

	assert.Equal(t, "corr-1", ginID)
	assert.Equal(t, "corr-1", ctxID)
	assert.Equal(t, "corr-1", w.Header().Get(HeaderCorrelationID))
}

func TestIDMiddleware_EnrichesInjectedLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(InjectLogger(logger), RequestID(), CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set(HeaderCorrelationID, "corr-42")
	serve(router, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "corr-42", entry["correlation_id"])
}

func TestGetIDs_MissingOrWrongType(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetSessionID(c))

	c.Set(ContextKeyCorrelationID, 42)
	assert.Empty(t, GetCorrelationID(c))

	c.Set(ContextKeySessionID, "value")
	assert.Equal(t, "value", GetSessionID(c))
}

func TestSession(t *testing.T) {
	t.Parallel()

	newRouter := func(captured *string) *gin.Engine {
		router := gin.New()
		router.Use(Session(SessionConfig{CookieName: "qb", TTL: time.Hour}))
		router.GET("/", func(c *gin.Context) {
			*captured = GetSessionID(c)
			c.Status(http.StatusOK)
		})

		return router
	}

	t.Run("issues a cookie for new visitors", func(t *testing.T) {
		t.Parallel()

		var id string
		w := serve(newRouter(&id), httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(id)
		require.NoError(t, err)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "qb", cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 3600, cookies[0].MaxAge)
	})

	t.Run("keeps an existing session", func(t *testing.T) {
		t.Parallel()

		existing := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "qb", Value: existing})

		var id string
		serve(newRouter(&id), req)

		assert.Equal(t, existing, id)
	})

	t.Run("replaces a forged cookie", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "qb", Value: "../../etc/passwd"})

		var id string
		serve(newRouter(&id), req)

		assert.NotEqual(t, "../../etc/passwd", id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("default cookie name", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Session(SessionConfig{}))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, w.Result().Cookies(), 1)
		assert.Equal(t, DefaultSessionCookie, w.Result().Cookies()[0].Name)
	})
}

func TestClaims(t *testing.T) {
	t.Parallel()

	claims := &Claims{Subject: "u1", Roles: []string{"admin"}, Scopes: []string{"quotes:write", "quotes:read"}}

	assert.True(t, claims.HasRole(RoleAdmin))
	assert.False(t, claims.HasRole("editor"))
	assert.True(t, claims.HasScope(ScopeQuotesWrite))
	assert.True(t, claims.HasAllScopes("quotes:write", "quotes:read"))
	assert.False(t, claims.HasAllScopes("quotes:write", "quotes:delete"))
	assert.True(t, claims.HasAllScopes())
}

func TestExtractClaims(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *config.AuthConfig
		headers map[string]string
		want    *Claims
	}{
		{
			name:    "default headers",
			headers: map[string]string{"X-User-ID": "u1", "X-User-Roles": "admin, editor", "X-User-Scopes": "quotes:write  quotes:read"},
			want:    &Claims{Subject: "u1", Roles: []string{"admin", "editor"}, Scopes: []string{"quotes:write", "quotes:read"}},
		},
		{
			name:    "configured headers",
			cfg:     &config.AuthConfig{SubjectHeader: "X-Sub", RolesHeader: "X-R", ScopesHeader: "X-S"},
			headers: map[string]string{"X-Sub": "u2", "X-R": "admin", "X-S": "quotes:write"},
			want:    &Claims{Subject: "u2", Roles: []string{"admin"}, Scopes: []string{"quotes:write"}},
		},
		{
			name: "no headers",
			want: &Claims{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, ExtractClaims(c, tt.cfg))
		})
	}
}

func TestAuthorization(t *testing.T) {
	t.Parallel()

	cfg := &config.AuthConfig{Enabled: true}

	tests := []struct {
		name       string
		guard      []gin.HandlerFunc
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "auth rejects anonymous",
			guard:      []gin.HandlerFunc{RequireAuth(cfg)},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "auth accepts subject",
			guard:      []gin.HandlerFunc{RequireAuth(cfg)},
			headers:    map[string]string{"X-User-ID": "u1"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "scope missing",
			guard:      Guard(cfg, RequireScopes(cfg, ScopeQuotesWrite)),
			headers:    map[string]string{"X-User-ID": "u1", "X-User-Scopes": "quotes:read"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "scope present",
			guard:      Guard(cfg, RequireScopes(cfg, ScopeQuotesWrite)),
			headers:    map[string]string{"X-User-ID": "u1", "X-User-Scopes": "quotes:write"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role missing",
			guard:      Guard(cfg, RequireRole(cfg, RoleAdmin)),
			headers:    map[string]string{"X-User-ID": "u1"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "role present",
			guard:      Guard(cfg, RequireRole(cfg, RoleAdmin)),
			headers:    map[string]string{"X-User-ID": "u1", "X-User-Roles": "admin"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "guard disabled leaves route open",
			guard:      Guard(&config.AuthConfig{}, RequireRole(cfg, RoleAdmin)),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := gin.New()
			handlers := append(tt.guard, func(c *gin.Context) { c.Status(http.StatusOK) })
			router.POST("/sync", handlers...)

			req := httptest.NewRequest(http.MethodPost, "/sync", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			w := serve(router, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusForbidden {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, dto.ErrorCodeForbidden, resp.Error.Code)
			}
		})
	}
}

func TestGetClaims(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))

	c.Set(ContextKeyClaims, "not claims")
	assert.Nil(t, GetClaims(c))

	want := &Claims{Subject: "u1"}
	c.Set(ContextKeyClaims, want)
	assert.Same(t, want, GetClaims(c))
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		skip      []string
		wantLevel string
	}{
		{name: "info on success", path: "/api/v1/quotes?category=Wisdom", status: http.StatusOK, wantLevel: "INFO"},
		{name: "warn on client error", path: "/api/v1/quotes", status: http.StatusBadRequest, wantLevel: "WARN"},
		{name: "error on server error", path: "/api/v1/quotes", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "skips probes", path: "/-/ready", status: http.StatusOK},
		{name: "skips configured paths", path: "/favicon.ico", status: http.StatusOK, skip: []string{"/favicon.ico"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			router := gin.New()
			router.Use(Logging(logger, tt.skip...))
			router.NoRoute(func(c *gin.Context) { c.Status(tt.status) })

			serve(router, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
			require.Len(t, lines, 1)

			var completed map[string]any
			require.NoError(t, json.Unmarshal(lines[0], &completed))
			assert.Equal(t, "request completed", completed["msg"])
			assert.Equal(t, tt.wantLevel, completed["level"])
			assert.Equal(t, tt.path, completed["path"])
			assert.InDelta(t, float64(tt.status), completed["status"], 0)
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("converts panic to 500 envelope", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(discardLogger()))
		router.GET("/panic", func(*gin.Context) { panic("boom") })

		w := serve(router, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("keeps partial response", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(discardLogger()))
		router.GET("/partial", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late")
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/partial", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(Timeout(time.Second))
		router.GET("/", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.True(t, hasDeadline)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("answers 504 when handler gives up", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeTimeout, resp.Error.Code)
	})

	t.Run("does not overwrite a written response", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/", func(c *gin.Context) {
			c.String(http.StatusAccepted, "done")
			<-c.Request.Context().Done()
		})

		w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "done", w.Body.String())
	})
}

func TestParseCommaSeparated(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"admin", "editor"}, parseCommaSeparated(" admin, ,editor "))
	assert.Empty(t, parseCommaSeparated(","))
}

func TestContextHelpers_NilContext(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // nil guard under test
	assert.Empty(t, RequestIDFromContext(nil))
	//nolint:staticcheck // nil guard under test
	assert.Empty(t, CorrelationIDFromContext(nil))
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := ContextWithCorrelationID(ContextWithRequestID(context.Background(), "req-7"), "corr-7")
	assert.Equal(t, "req-7", RequestIDFromContext(ctx))
	assert.Equal(t, "corr-7", CorrelationIDFromContext(ctx))
}
