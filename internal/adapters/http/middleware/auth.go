package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
)

// Identity is asserted by the gateway in front of the service. These
// values name what the quote routes ask for.
const (
	ContextKeyClaims = "claims"
	ScopeQuotesWrite = "quotes:write"
	RoleAdmin        = "admin"
)

// Claims is the caller identity taken from gateway headers.
type Claims struct {
	Subject string
	Roles   []string
	Scopes  []string
}

func (c *Claims) HasRole(role string) bool { return slices.Contains(c.Roles, role) }

func (c *Claims) HasScope(scope string) bool { return slices.Contains(c.Scopes, scope) }

// HasAllScopes is true when every scope was granted. No scopes is true.
func (c *Claims) HasAllScopes(scopes ...string) bool {
	return !slices.ContainsFunc(scopes, func(s string) bool { return !c.HasScope(s) })
}

type claimHeaders struct {
	subject, roles, scopes string
}

func headersFor(cfg *config.AuthConfig) claimHeaders {
	h := claimHeaders{subject: "X-User-ID", roles: "X-User-Roles", scopes: "X-User-Scopes"}
	if cfg == nil {
		return h
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&h.subject, cfg.SubjectHeader)
	override(&h.roles, cfg.RolesHeader)
	override(&h.scopes, cfg.ScopesHeader)

	return h
}

// ExtractClaims reads the identity headers named by cfg, falling back to
// X-User-ID, X-User-Roles and X-User-Scopes. Roles are comma separated and
// scopes space separated.
func ExtractClaims(c *gin.Context, cfg *config.AuthConfig) *Claims {
	h := headersFor(cfg)

	claims := &Claims{Subject: c.GetHeader(h.subject)}

	if v := c.GetHeader(h.roles); v != "" {
		claims.Roles = parseCommaSeparated(v)
	}

	if v := c.GetHeader(h.scopes); v != "" {
		claims.Scopes = strings.Fields(v)
	}

	return claims
}

// GetClaims returns the claims an earlier guard stored, or nil.
func GetClaims(c *gin.Context) *Claims {
	v, _ := c.Get(ContextKeyClaims)
	claims, _ := v.(*Claims)

	return claims
}

// RequireAuth rejects callers that carry no subject.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ExtractClaims(c, cfg)
		if claims.Subject == "" {
			abortWithError(c, dto.ErrorCodeForbidden, "authentication required")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole rejects callers without role.
func RequireRole(cfg *config.AuthConfig, role string) gin.HandlerFunc {
	return requireClaim(cfg, "role "+role, func(cl *Claims) bool { return cl.HasRole(role) })
}

// RequireScopes rejects callers missing any of scopes.
func RequireScopes(cfg *config.AuthConfig, scopes ...string) gin.HandlerFunc {
	what := "scopes [" + strings.Join(scopes, ", ") + "]"

	return requireClaim(cfg, what, func(cl *Claims) bool { return cl.HasAllScopes(scopes...) })
}

func requireClaim(cfg *config.AuthConfig, what string, allowed func(*Claims) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			claims = ExtractClaims(c, cfg)
			c.Set(ContextKeyClaims, claims)
		}

		if !allowed(claims) {
			abortWithError(c, dto.ErrorCodeForbidden, "insufficient permissions: "+what+" required")
			return
		}

		c.Next()
	}
}

// Guard prefixes checks with RequireAuth. It returns nil when auth is
// disabled so the route stays open. The slice is clipped, which lets
// callers append a handler safely.
func Guard(cfg *config.AuthConfig, checks ...gin.HandlerFunc) []gin.HandlerFunc {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	return slices.Clip(append([]gin.HandlerFunc{RequireAuth(cfg)}, checks...))
}

// parseCommaSeparated splits s on commas and drops blank entries.
func parseCommaSeparated(s string) []string {
	var out []string

	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
