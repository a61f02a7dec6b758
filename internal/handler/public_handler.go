package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"postforge-api/internal/dto"
	"postforge-api/internal/middleware"
	"postforge-api/internal/response"
	"postforge-api/internal/service"
)

// PublicHandler serves the visitor-facing form endpoints: viewing a
// rendered form and submitting it
type PublicHandler struct {
	formService       service.FormService
	schemaService     service.SchemaService
	renderer          service.Renderer
	access            service.AccessEvaluator
	submissionService service.SubmissionService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(
	formService service.FormService,
	schemaService service.SchemaService,
	renderer service.Renderer,
	access service.AccessEvaluator,
	submissionService service.SubmissionService,
) *PublicHandler {
	return &PublicHandler{
		formService:       formService,
		schemaService:     schemaService,
		renderer:          renderer,
		access:            access,
		submissionService: submissionService,
	}
}

// ViewForm renders a form for display. Access rules are evaluated for
// the requesting identity; a disabled form or an identity without the
// required roles gets a 403, never a silently empty form.
func (h *PublicHandler) ViewForm(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("formId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form ID")
		return
	}

	form, err := h.formService.GetFormEntity(c.Request.Context(), formID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	identity := middleware.GetIdentity(c)
	if !h.access.CanView(form, identity) {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "You are not allowed to view this form")
		return
	}

	fields, err := h.schemaService.Resolve(c.Request.Context(), form)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	widgets := h.renderer.Render(fields, dto.ModeLive)
	response.SendSuccess(c, http.StatusOK, dto.FormViewResponse{
		FormID:               form.ID.String(),
		Title:                form.Title,
		Description:          form.Description,
		IncludeFeaturedImage: form.IncludeFeaturedImage,
		Widgets:              widgets,
	})
}

// SubmitForm runs the submission pipeline and maps its terminal outcome
// to an HTTP response
func (h *PublicHandler) SubmitForm(c *gin.Context) {
	formID, err := uuid.Parse(c.Param("formId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid form ID")
		return
	}

	var req dto.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	form, err := h.formService.GetFormEntity(c.Request.Context(), formID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	identity := middleware.GetIdentity(c)
	result, err := h.submissionService.Submit(c.Request.Context(), form, identity, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	switch result.Outcome {
	case dto.OutcomePersisted:
		response.SendSuccess(c, http.StatusCreated, result)
	case dto.OutcomePartiallyPersisted:
		// The record exists, so this is not a plain failure. The caller
		// gets the record ID and the step that failed.
		response.SendErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodePartialPersist,
			"Submission was only partially stored", result)
	case dto.OutcomeRejected:
		if result.Reason == dto.RejectAccessDenied {
			response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "You are not allowed to submit this form")
			return
		}
		response.SendErrorWithDetails(c, http.StatusUnprocessableEntity, response.ErrCodeValidation,
			"Submission failed validation", result.Errors)
	default:
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
	}
}
