package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/httperr"
	"github.com/BruksfildServices01/court-booking/internal/models"
)

const ContextPrincipal = "principal"

// AuthMiddleware requires a bearer token and stores the caller's Principal.
// The user row is read on every request, so deactivation and role changes
// apply before the token expires.
func AuthMiddleware(tokens *auth.TokenIssuer, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			c.Abort()
			return
		}

		principal, _, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).
			Select("id", "role", "is_active").
			First(&user, "id = ?", principal.UserID).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			} else {
				httperr.Internal(c, "user_lookup_failed", "Could not load the current user.")
			}
			c.Abort()
			return
		}
		if !user.IsActive {
			httperr.Forbidden(c, "account_inactive", "This account has been deactivated.")
			c.Abort()
			return
		}
		principal.Role = user.Role

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
			c.Abort()
			return
		}

		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}

		httperr.Forbidden(c, "forbidden", "Not allowed.")
		c.Abort()
	}
}

func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
