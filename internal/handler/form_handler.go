package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"postforge-api/internal/domain"
	"postforge-api/internal/dto"
	"postforge-api/internal/response"
	"postforge-api/internal/service"
)

// FormHandler serves the admin form-builder API
type FormHandler struct {
	formService   service.FormService
	schemaService service.SchemaService
	renderer      service.Renderer
}

// NewFormHandler creates a new FormHandler
func NewFormHandler(formService service.FormService, schemaService service.SchemaService, renderer service.Renderer) *FormHandler {
	return &FormHandler{
		formService:   formService,
		schemaService: schemaService,
		renderer:      renderer,
	}
}

// CreateForm stores a new form definition
func (h *FormHandler) CreateForm(c *gin.Context) {
	var req dto.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	form, err := h.formService.CreateForm(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, form)
}

// UpdateForm overwrites an existing form definition
func (h *FormHandler) UpdateForm(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("formId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form ID")
		return
	}

	var req dto.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	form, err := h.formService.UpdateForm(c.Request.Context(), formID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, form)
}

// GetForm returns one stored form definition
func (h *FormHandler) GetForm(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("formId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form ID")
		return
	}

	form, err := h.formService.GetForm(c.Request.Context(), formID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, form)
}

// ListForms lists stored form definitions. Disabled forms are included
// unless ?enabled_only=true.
func (h *FormHandler) ListForms(c *gin.Context) {
	includeDisabled := c.Query("enabled_only") != "true"

	forms, err := h.formService.ListForms(c.Request.Context(), includeDisabled)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, forms)
}

// SetFormEnabled flips the enabled flag of a form
func (h *FormHandler) SetFormEnabled(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("formId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form ID")
		return
	}

	var req dto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.formService.SetFormEnabled(c.Request.Context(), formID, *req.Enabled); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"form_id": formID, "enabled": *req.Enabled})
}

// DeleteForm soft deletes a form definition
func (h *FormHandler) DeleteForm(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("formId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form ID")
		return
	}

	if err := h.formService.DeleteForm(c.Request.Context(), formID); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"form_id": formID})
}

// PreviewForm resolves and renders a definition from the request body
// without storing it, so the builder can show the form as it would
// appear to visitors
func (h *FormHandler) PreviewForm(c *gin.Context) {
	var req dto.SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	form := &domain.Form{}
	service.ApplyDefinition(form, &req)

	fields, err := h.schemaService.Resolve(c.Request.Context(), form)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	widgets := h.renderer.Render(fields, dto.ModePreview)
	response.SendSuccess(c, http.StatusOK, dto.FormViewResponse{
		Title:                form.Title,
		Description:          form.Description,
		IncludeFeaturedImage: form.IncludeFeaturedImage,
		Widgets:              widgets,
	})
}
