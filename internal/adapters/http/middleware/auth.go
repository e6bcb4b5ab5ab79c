package middleware

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/networker-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/networker-service/internal/platform/config"
)

// ContextKeyClaims is the gin context key holding the caller's *Claims.
const ContextKeyClaims = "claims"

const (
	defaultSubjectHeader = "X-User-ID"
	defaultRolesHeader   = "X-User-Roles"
)

// Claims is the caller identity forwarded by the gateway in front of the
// service. The gateway has already validated the caller's token.
type Claims struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the caller holds role. Roles are case-sensitive.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ExtractClaims reads the caller identity from the request headers named in
// cfg, falling back to X-User-ID and X-User-Roles.
func ExtractClaims(c *gin.Context, cfg *config.AuthConfig) *Claims {
	subjectHeader, rolesHeader := headerNames(cfg)

	return &Claims{
		Subject: c.GetHeader(subjectHeader),
		Roles:   splitRoles(c.GetHeader(rolesHeader)),
	}
}

// GetClaims returns the claims stored by an auth guard, or nil.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(ContextKeyClaims); ok {
		if claims, ok := v.(*Claims); ok {
			return claims
		}
	}

	return nil
}

// RequireAuth rejects requests without a subject with 401.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authenticate(c, cfg) != nil {
			c.Next()
		}
	}
}

// RequireRole rejects callers without role with 403. It reuses claims
// stored by an earlier guard.
func RequireRole(cfg *config.AuthConfig, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			claims = ExtractClaims(c, cfg)
			c.Set(ContextKeyClaims, claims)
		}

		if authorize(c, claims, role) {
			c.Next()
		}
	}
}

// RequireOperator guards the protection group routes. With auth disabled
// every request passes. Otherwise the caller needs a subject and the
// configured role.
func RequireOperator(cfg *config.AuthConfig) gin.HandlerFunc {
	if cfg == nil || !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		claims := authenticate(c, cfg)
		if claims != nil && authorize(c, claims, cfg.RequiredRole) {
			c.Next()
		}
	}
}

// authenticate stores the caller's claims, or aborts with 401 and returns
// nil when no subject was forwarded.
func authenticate(c *gin.Context, cfg *config.AuthConfig) *Claims {
	claims := ExtractClaims(c, cfg)
	if claims.Subject == "" {
		dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "authentication required")
		return nil
	}

	c.Set(ContextKeyClaims, claims)

	return claims
}

// authorize aborts with 403 unless claims hold role.
func authorize(c *gin.Context, claims *Claims, role string) bool {
	if claims.HasRole(role) {
		return true
	}

	dto.AbortWithErrorCode(c, dto.ErrorCodeForbidden, "insufficient permissions: role "+role+" required")

	return false
}

func headerNames(cfg *config.AuthConfig) (subject, roles string) {
	subject, roles = defaultSubjectHeader, defaultRolesHeader
	if cfg == nil {
		return subject, roles
	}

	if cfg.SubjectHeader != "" {
		subject = cfg.SubjectHeader
	}

	if cfg.RolesHeader != "" {
		roles = cfg.RolesHeader
	}

	return subject, roles
}

// splitRoles parses a comma-separated roles header, dropping blanks.
// It returns nil for an empty header.
func splitRoles(header string) []string {
	var roles []string

	for role := range strings.SplitSeq(header, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}

	return roles
}
