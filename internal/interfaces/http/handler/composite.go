package handler

import (
	appcompany "github.com/Graviton17/TrustChain-sub001/internal/application/company"
	appproject "github.com/Graviton17/TrustChain-sub001/internal/application/project"
	"github.com/gin-gonic/gin"
)

// CompositeHandler serves the complete company and complete project views.
type CompositeHandler struct {
	BaseHandler
	companies *appcompany.Service
	projects  *appproject.Service
}

// NewCompositeHandler creates a new CompositeHandler
func NewCompositeHandler(companies *appcompany.Service, projects *appproject.Service, opts Options) *CompositeHandler {
	return &CompositeHandler{
		BaseHandler: NewBaseHandler("composite", opts),
		companies:   companies,
		projects:    projects,
	}
}

// RegisterRoutes mounts the complete-view endpoints on rg
func (h *CompositeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:id/complete", h.CompleteCompany)
	rg.GET("/projects/:id/complete", h.CompleteProject)
}

// CompleteCompany handles GET /companies/:id/complete
func (h *CompositeHandler) CompleteCompany(c *gin.Context) {
	out, err := h.companies.CompleteCompany(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, out, partialMessage("Company", out.PartialErrors))
}

// CompleteProject handles GET /projects/:id/complete
func (h *CompositeHandler) CompleteProject(c *gin.Context) {
	out, err := h.projects.CompleteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, out, partialMessage("Project", out.PartialErrors))
}

func partialMessage(label string, partial map[string]string) string {
	if len(partial) > 0 {
		return label + " data retrieved with partial errors"
	}
	return label + " data retrieved successfully"
}
