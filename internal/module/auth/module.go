package auth

import "github.com/gin-gonic/gin"

// AuthModule implements the app.Module interface for the auth domain.
type AuthModule struct {
	handler     *AuthHandler
	requireAuth gin.HandlerFunc
}

// NewModule creates a new AuthModule. requireAuth guards /me.
// Panics if h or requireAuth is nil.
func NewModule(h *AuthHandler, requireAuth gin.HandlerFunc) *AuthModule {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	if requireAuth == nil {
		panic("auth.NewModule: auth middleware must not be nil")
	}
	return &AuthModule{handler: h, requireAuth: requireAuth}
}

// RegisterRoutes registers auth API routes.
func (m *AuthModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/authenticate", m.handler.Login)
	api.POST("/register", m.handler.Register)
	api.GET("/me", m.requireAuth, m.handler.Me)
}
