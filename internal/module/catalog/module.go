package catalog

import "github.com/gin-gonic/gin"

// CatalogModule implements the app.Module interface for module lookups.
type CatalogModule struct {
	handler *ModuleHandler
}

// NewModule creates a new CatalogModule with the given handler.
// Panics if h is nil.
func NewModule(h *ModuleHandler) *CatalogModule {
	if h == nil {
		panic("catalog.NewModule: handler must not be nil")
	}
	return &CatalogModule{handler: h}
}

// RegisterRoutes registers module API routes.
func (m *CatalogModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/module/:school/:year/:sem/:code", m.handler.Get)
	api.GET("/modules/:school/:year/:sem", m.handler.List)
}
