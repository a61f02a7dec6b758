package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"postforge-api/internal/dto"
	"postforge-api/internal/response"
	"postforge-api/internal/service"
)

// ContentTypeHandler serves the form-builder support endpoints: what
// can be configured for a content type and which roles exist
type ContentTypeHandler struct {
	contentTypeService service.ContentTypeService
	availableRoles     []dto.RoleResponse
}

// NewContentTypeHandler creates a new ContentTypeHandler
func NewContentTypeHandler(contentTypeService service.ContentTypeService, availableRoles []dto.RoleResponse) *ContentTypeHandler {
	return &ContentTypeHandler{
		contentTypeService: contentTypeService,
		availableRoles:     availableRoles,
	}
}

// GetContentTypeData returns the taxonomies and discoverable fields of
// a content type
func (h *ContentTypeHandler) GetContentTypeData(c *gin.Context) {
	contentType := c.Param("contentType")
	if contentType == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Content type is required")
		return
	}

	data, err := h.contentTypeService.GetBuilderData(c.Request.Context(), contentType)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, data)
}

// ListRoles returns the roles selectable in the form access rules
func (h *ContentTypeHandler) ListRoles(c *gin.Context) {
	response.SendSuccess(c, http.StatusOK, h.availableRoles)
}
