package handler

import (
	"fmt"

	appsubsidy "github.com/Graviton17/TrustChain-sub001/internal/application/subsidy"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SubsidyHandler serves subsidy programs with decoded incentive details.
type SubsidyHandler struct {
	BaseHandler
	service *appsubsidy.Service
}

// NewSubsidyHandler creates a new SubsidyHandler
func NewSubsidyHandler(service *appsubsidy.Service, opts Options) *SubsidyHandler {
	return &SubsidyHandler{
		BaseHandler: NewBaseHandler("subsidy", opts),
		service:     service,
	}
}

var subsidyRoutes = ResourceConfig{
	Path:    "/subsidies",
	Label:   "Subsidy",
	Filters: []string{"country", "program_type", "status"},
}

// RegisterRoutes mounts /subsidies on rg
func (h *SubsidyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(subsidyRoutes.Path)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("", h.Update)
	group.DELETE("", h.Delete)
}

// Create handles POST /subsidies
func (h *SubsidyHandler) Create(c *gin.Context) {
	var req appsubsidy.CreateSubsidyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "request body must be a JSON object")
		return
	}

	view, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, view, "Subsidy created successfully")
}

// List handles GET /subsidies. Records with an undecodable payload are
// left out and reported in the message.
func (h *SubsidyHandler) List(c *gin.Context) {
	filter, err := listFilter(c, subsidyRoutes)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	message := "Subsidy records retrieved successfully"
	if page.Skipped > 0 {
		message = fmt.Sprintf("%d malformed record(s) skipped", page.Skipped)
	}
	h.SuccessList(c, page.Items, page.Total, message)
}

// Get handles GET /subsidies/:id
func (h *SubsidyHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view, "Subsidy retrieved successfully")
}

// Update handles PUT /subsidies
func (h *SubsidyHandler) Update(c *gin.Context) {
	var ref dto.Ref
	var req appsubsidy.UpdateSubsidyRequest
	if !bindUpdate(c, &ref, &req) {
		h.BadRequest(c, "request body must be a JSON object")
		return
	}

	view, err := h.service.Update(c.Request.Context(), ref.Value(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, view, "Subsidy updated successfully")
}

// Delete handles DELETE /subsidies?id=
func (h *SubsidyHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, nil, "Subsidy deleted successfully")
}
