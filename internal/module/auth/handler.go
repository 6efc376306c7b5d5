package auth

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/modify/internal/domain"
	"github.com/simp-lee/modify/internal/middleware"
	"github.com/simp-lee/modify/internal/pkg"
)

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc Service
}

// NewHandler creates a new AuthHandler with the given service.
func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/authenticate.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	tokenResp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if domain.IsUnauthorized(err) {
			slog.WarnContext(c.Request.Context(), "authentication failed",
				slog.String("reason", unauthorizedReason(err)),
			)
		}
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, tokenResp)
}

// Register handles POST /api/v1/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "user registered successfully", RegisterResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Me handles GET /api/v1/me. It must run behind middleware.RequireAuth.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthorized)
		return
	}
	pkg.Success(c, user)
}

func unauthorizedReason(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return "unknown"
}
