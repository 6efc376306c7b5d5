package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/modify/internal/domain"
	"github.com/simp-lee/modify/internal/pkg"
)

const currentUserContextKey = "current_user"

// TokenVerifier checks a raw bearer token and returns the user id it carries.
type TokenVerifier interface {
	Verify(raw string) (uint, error)
}

// UserLoader materialises the user a token refers to.
type UserLoader interface {
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

// RequireAuth returns a gin middleware that accepts only requests carrying a
// valid "Authorization: Bearer <token>" header whose user still exists. The
// loaded user is available to later handlers through CurrentUser.
//
// Every rejection is a 401 with the same body; the reason is logged at Warn.
// Data errors while loading the user are 500.
func RequireAuth(verifier TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, "missing bearer token", nil)
			return
		}

		id, err := verifier.Verify(raw)
		if err != nil {
			reject(c, "invalid token", err)
			return
		}

		user, err := users.GetUser(ctx, id)
		if err != nil {
			if domain.IsNotFound(err) {
				reject(c, "token user no longer exists", err)
				return
			}
			pkg.Error(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(currentUserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func reject(c *gin.Context, reason string, cause error) {
	attrs := []any{slog.String("reason", reason), slog.String("path", c.Request.URL.Path)}
	if cause != nil {
		attrs = append(attrs, slog.Any("error", cause))
	}
	slog.WarnContext(c.Request.Context(), "request unauthorized", attrs...)

	pkg.Error(c, domain.ErrUnauthorized)
	c.Abort()
}
