package web

import (
	"github.com/flowvault/flowvault/pkg/schema"
	"github.com/flowvault/flowvault/pkg/services"
	"github.com/flowvault/flowvault/pkg/steps"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// APIHandlers exposes the comparison and risk-assessment engine over HTTP.
type APIHandlers struct {
	comparisonService *services.Comparison
	assessmentService *services.Assessment
	validator         *validator.Validate
}

func NewAPIHandlers(
	comparisonService *services.Comparison,
	assessmentService *services.Assessment,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		comparisonService: comparisonService,
		assessmentService: assessmentService,
		validator:         validator,
	}
}

// CompareVersions compares two stored versions of a workflow.
func (h *APIHandlers) CompareVersions(c fiber.Ctx) error {
	var req CompareVersionsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Invalid request: "+err.Error())
	}

	result, err := h.comparisonService.Compare(c.Context(), services.CompareRequest{
		WorkflowID: c.Params("id"),
		VersionA:   req.VersionA,
		VersionB:   req.VersionB,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// CompareDocuments compares two inline documents without touching the store.
func (h *APIHandlers) CompareDocuments(c fiber.Ctx) error {
	var req CompareDocumentsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Invalid request: "+err.Error())
	}

	result := services.CompareDocuments(req.DocumentA, req.DocumentB, "A", "B")

	return c.JSON(result)
}

// AssessWorkflow runs the risk scorer over one inline document.
func (h *APIHandlers) AssessWorkflow(c fiber.Ctx) error {
	var req AssessRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Invalid request: "+err.Error())
	}

	result, err := h.assessmentService.Assess(c.Context(), services.AssessRequest{
		Document: req.Document,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// ProjectWorkflow renders one inline document into its step sequence.
// Malformed documents still project; shape violations come back as warnings.
func (h *APIHandlers) ProjectWorkflow(c fiber.Ctx) error {
	var req ProjectRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	versionTag := req.VersionTag
	if versionTag == "" {
		versionTag = "current"
	}

	response := ProjectResponse{
		Steps: steps.Project(req.Document, versionTag),
	}

	if req.Document != nil {
		if err := schema.ValidateDocument(req.Document); err != nil {
			response.Warnings = append(response.Warnings, err.Error())
		}
	}

	return c.JSON(response)
}

// HealthCheck reports service liveness.
func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
