package handlers

import (
	"errors"
	"strings"

	"coopcredit/internal/core/domain"
	"coopcredit/internal/core/services"
	"coopcredit/internal/pkg/pagination"
	"coopcredit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Request validation bounds for credit applications
const (
	MinRequestedAmount = 100000
	MaxRequestedAmount = 500000000
	MinTermMonths      = 6
	MaxTermMonths      = 120
	MinProposedRate    = 0.1
	MaxProposedRate    = 50
)

// ApplicationHandler handles credit application endpoints
type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// CreateApplicationRequest represents application submission body
type CreateApplicationRequest struct {
	AffiliateDocumentNumber string  `json:"affiliate_document_number"`
	RequestedAmount         float64 `json:"requested_amount"`
	TermMonths              int     `json:"term_months"`
	ProposedRate            float64 `json:"proposed_rate"`
}

// DecisionRequest represents the analyst decision body
type DecisionRequest struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments"`
}

// Create handles application submission
// @Summary Submit credit application
// @Description Submit a new credit application for an active affiliate
// @Tags Applications
// @Accept json
// @Produce json
// @Param body body CreateApplicationRequest true "Application data"
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.AffiliateDocumentNumber = strings.TrimSpace(req.AffiliateDocumentNumber)
	if req.AffiliateDocumentNumber == "" {
		return response.BadRequest(c, "Affiliate document number is required")
	}
	if req.RequestedAmount < MinRequestedAmount || req.RequestedAmount > MaxRequestedAmount {
		return response.BadRequest(c, "Requested amount out of range")
	}
	if req.TermMonths < MinTermMonths || req.TermMonths > MaxTermMonths {
		return response.BadRequest(c, "Term months out of range")
	}
	if req.ProposedRate < MinProposedRate || req.ProposedRate > MaxProposedRate {
		return response.BadRequest(c, "Proposed rate out of range")
	}

	// An AFFILIATE user may only apply for itself
	if role, _ := c.Locals("role").(string); role == string(domain.RoleAffiliate) {
		documentNumber, _ := c.Locals("documentNumber").(string)
		if documentNumber != req.AffiliateDocumentNumber {
			return response.Forbidden(c, "You can only apply for your own credit")
		}
	}

	application, err := h.applicationService.Create(c.Context(), &services.CreateApplicationInput{
		AffiliateDocumentNumber: req.AffiliateDocumentNumber,
		RequestedAmount:         req.RequestedAmount,
		TermMonths:              req.TermMonths,
		ProposedRate:            req.ProposedRate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAffiliateNotFound):
			return response.NotFound(c, "Affiliate not found")
		case errors.Is(err, domain.ErrInactiveAffiliate):
			return response.UnprocessableEntity(c, "Affiliate is not active")
		default:
			return response.InternalServerError(c, "Failed to create application")
		}
	}

	return response.Created(c, "Application submitted successfully", application)
}

// List handles application listing
// @Summary List applications
// @Description List credit applications with pagination, optionally filtered by status
// @Tags Applications
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	if statusFilter := c.Query("status"); statusFilter != "" {
		status := domain.ApplicationStatus(strings.ToUpper(statusFilter))
		switch status {
		case domain.ApplicationPending, domain.ApplicationApproved, domain.ApplicationRejected:
		default:
			return response.BadRequest(c, "Invalid status filter")
		}

		applications, err := h.applicationService.ListByStatus(c.Context(), status)
		if err != nil {
			return response.InternalServerError(c, "Failed to list applications")
		}
		return response.Success(c, "Applications retrieved successfully", applications)
	}

	params := pagination.GetParams(c)
	applications, total, err := h.applicationService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", pagination.NewResponse(applications, params, total))
}

// ListPending handles pending application listing
// @Summary List pending applications
// @Description List applications awaiting evaluation or decision
// @Tags Applications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /applications/pending [get]
func (h *ApplicationHandler) ListPending(c *fiber.Ctx) error {
	applications, err := h.applicationService.ListPending(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list pending applications")
	}

	return response.Success(c, "Pending applications retrieved successfully", applications)
}

// Get handles application retrieval
// @Summary Get application
// @Description Get a credit application with its risk evaluation
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.applicationService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrApplicationNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.InternalServerError(c, "Failed to get application")
	}

	// An AFFILIATE user may only see its own applications
	if role, _ := c.Locals("role").(string); role == string(domain.RoleAffiliate) {
		documentNumber, _ := c.Locals("documentNumber").(string)
		if application.Affiliate == nil || application.Affiliate.DocumentNumber != documentNumber {
			return response.Forbidden(c, "You can only access your own applications")
		}
	}

	return response.Success(c, "Application retrieved successfully", application)
}

// Evaluate handles automatic evaluation (auto mode)
// @Summary Evaluate application
// @Description Run the risk evaluation and finalize the application in one step
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /applications/{id}/evaluate [post]
func (h *ApplicationHandler) Evaluate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.applicationService.Evaluate(c.Context(), uint(id))
	if err != nil {
		return h.evaluationError(c, err)
	}

	return response.Success(c, "Application evaluated successfully", application)
}

// EvaluateRisk handles advisory risk assessment (advisory mode)
// @Summary Assess application risk
// @Description Run the risk evaluation and store it without deciding
// @Tags Applications
// @Produce json
// @Param id path int true "Application ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /applications/{id}/evaluate-risk [post]
func (h *ApplicationHandler) EvaluateRisk(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	application, err := h.applicationService.AssessRisk(c.Context(), uint(id))
	if err != nil {
		return h.evaluationError(c, err)
	}

	return response.Success(c, "Risk assessed successfully", application)
}

// Decide handles the analyst decision (advisory mode)
// @Summary Decide application
// @Description Record the analyst decision on an assessed application
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param body body DecisionRequest true "Decision"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /applications/{id}/decide [post]
func (h *ApplicationHandler) Decide(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid application ID")
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	application, err := h.applicationService.Decide(c.Context(), uint(id), &services.DecisionInput{
		Approved: req.Approved,
		Comments: strings.TrimSpace(req.Comments),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, domain.ErrApplicationNotPending):
			return response.Conflict(c, "Application has already been decided")
		case errors.Is(err, domain.ErrEvaluationRequired):
			return response.UnprocessableEntity(c, "Application must be risk-assessed before deciding")
		default:
			return response.InternalServerError(c, "Failed to decide application")
		}
	}

	return response.Success(c, "Decision recorded successfully", application)
}

// evaluationError maps evaluation failures to HTTP responses
func (h *ApplicationHandler) evaluationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrApplicationNotFound):
		return response.NotFound(c, "Application not found")
	case errors.Is(err, domain.ErrApplicationNotPending):
		return response.Conflict(c, "Application has already been decided")
	case errors.Is(err, domain.ErrRiskCentralUnavailable):
		return response.BadGateway(c, "Risk central is unavailable, try again later")
	default:
		return response.InternalServerError(c, "Failed to evaluate application")
	}
}
