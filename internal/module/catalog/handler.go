package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/modify/internal/domain"
	"github.com/simp-lee/modify/internal/pkg"
)

// ModuleHandler handles REST API requests for modules.
type ModuleHandler struct {
	svc domain.ModuleService
}

// NewModuleHandler creates a new ModuleHandler with the given service.
func NewModuleHandler(svc domain.ModuleService) *ModuleHandler {
	return &ModuleHandler{svc: svc}
}

// Get handles GET /api/v1/module/:school/:year/:sem/:code.
func (h *ModuleHandler) Get(c *gin.Context) {
	params := newModuleParams(c.Param("school"), c.Param("year"), c.Param("sem"), c.Param("code"))
	if fields := validateParams(params); fields != nil {
		pkg.FieldErrors(c, fields)
		return
	}

	module, err := h.svc.GetModule(c.Request.Context(), params.key())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, module)
}

// List handles GET /api/v1/modules/:school/:year/:sem.
func (h *ModuleHandler) List(c *gin.Context) {
	params := newSemesterParams(c.Param("school"), c.Param("year"), c.Param("sem"))
	if fields := validateParams(params); fields != nil {
		pkg.FieldErrors(c, fields)
		return
	}

	modules, err := h.svc.ListModules(c.Request.Context(), params.semester())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, modules)
}
