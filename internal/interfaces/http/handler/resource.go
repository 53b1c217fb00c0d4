package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/Graviton17/TrustChain-sub001/internal/application/resource"
	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ResourceService is the CRUD surface a ResourceHandler drives
type ResourceService[T any] interface {
	CreateFrom(ctx context.Context, req resource.CreateRequest[T]) (*T, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
	UpdateFrom(ctx context.Context, id string, req resource.UpdateRequest) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ResourceConfig describes one collection endpoint.
type ResourceConfig struct {
	// Path is the collection path under the API group, e.g. "/projects".
	Path string
	// Label names the resource in response messages, e.g. "Project".
	Label string
	// Filters are the query keys passed to the repository as equality
	// conditions when present and non-empty.
	Filters []string
	// Search enables the free-text "search" query parameter.
	Search bool
}

// ResourceHandler serves create, list, get, update and delete for one
// collection. C and U are the create and update request bodies.
type ResourceHandler[T any, C resource.CreateRequest[T], U resource.UpdateRequest] struct {
	BaseHandler
	cfg     ResourceConfig
	service ResourceService[T]
}

// NewResourceHandler creates a ResourceHandler
func NewResourceHandler[T any, C resource.CreateRequest[T], U resource.UpdateRequest](
	service ResourceService[T],
	cfg ResourceConfig,
	opts Options,
) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{
		BaseHandler: NewBaseHandler(cfg.Label, opts),
		cfg:         cfg,
		service:     service,
	}
}

// RegisterRoutes mounts the collection on rg
func (h *ResourceHandler[T, C, U]) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(h.cfg.Path)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("", h.Update)
	group.DELETE("", h.Delete)
}

// Create handles POST /<collection>
func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "request body must be a JSON object")
		return
	}

	entity, err := h.service.CreateFrom(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, entity, fmt.Sprintf("%s created successfully", h.cfg.Label))
}

// List handles GET /<collection>?<filters>&limit=&offset=
func (h *ResourceHandler[T, C, U]) List(c *gin.Context) {
	filter, err := listFilter(c, h.cfg)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessList(c, page.Items, page.Total, fmt.Sprintf("%s records retrieved successfully", h.cfg.Label))
}

// Get handles GET /<collection>/:id
func (h *ResourceHandler[T, C, U]) Get(c *gin.Context) {
	entity, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entity, fmt.Sprintf("%s retrieved successfully", h.cfg.Label))
}

// Update handles PUT /<collection>. The body carries the record id as
// "$id" or "id" next to the fields to change.
func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	var ref dto.Ref
	var req U
	if !bindUpdate(c, &ref, &req) {
		h.BadRequest(c, "request body must be a JSON object")
		return
	}

	entity, err := h.service.UpdateFrom(c.Request.Context(), ref.Value(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, entity, fmt.Sprintf("%s updated successfully", h.cfg.Label))
}

// Delete handles DELETE /<collection>?id=
func (h *ResourceHandler[T, C, U]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Query("id")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, nil, fmt.Sprintf("%s deleted successfully", h.cfg.Label))
}

// bindUpdate decodes the update body twice, once for the id and once for
// the fields. A missing body decodes to nothing so the id check reports it.
func bindUpdate(c *gin.Context, ref *dto.Ref, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindBodyWith(ref, binding.JSON); err != nil {
		return false
	}
	return c.ShouldBindBodyWith(req, binding.JSON) == nil
}

// listFilter reads pagination, search, ordering and the configured equality
// filters from the query string. Range checks are left to Filter.Normalize.
func listFilter(c *gin.Context, cfg ResourceConfig) (shared.Filter, error) {
	filter := shared.DefaultFilter()

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return filter, shared.NewValidationError(shared.FieldMessage(verrs[0]))
		}
		return filter, shared.NewValidationError("limit and offset must be integers")
	}
	if q.Limit != nil {
		filter.Limit = *q.Limit
	}
	if q.Offset != nil {
		filter.Offset = *q.Offset
	}
	if cfg.Search && q.Search != "" {
		filter.Search = q.Search
	}
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}

	for _, key := range cfg.Filters {
		if v := c.Query(key); v != "" {
			filter = filter.Where(key, v)
		}
	}
	return filter, nil
}
