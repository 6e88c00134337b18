package handlers

import (
	"errors"
	"strings"
	"time"

	"coopcredit/internal/core/domain"
	"coopcredit/internal/core/services"
	"coopcredit/internal/pkg/pagination"
	"coopcredit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AffiliateHandler handles affiliate endpoints
type AffiliateHandler struct {
	affiliateService   *services.AffiliateService
	applicationService *services.ApplicationService
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(
	affiliateService *services.AffiliateService,
	applicationService *services.ApplicationService,
) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService:   affiliateService,
		applicationService: applicationService,
	}
}

// RegisterAffiliateRequest represents affiliate registration request body
type RegisterAffiliateRequest struct {
	DocumentNumber  string  `json:"document_number"`
	Name            string  `json:"name"`
	Salary          float64 `json:"salary"`
	AffiliationDate string  `json:"affiliation_date"`
}

// UpdateAffiliateRequest represents affiliate update request body
type UpdateAffiliateRequest struct {
	Name   *string  `json:"name"`
	Salary *float64 `json:"salary"`
	Status *string  `json:"status"`
}

// Register handles affiliate registration
// @Summary Register affiliate
// @Description Register a new cooperative affiliate
// @Tags Affiliates
// @Accept json
// @Produce json
// @Param body body RegisterAffiliateRequest true "Affiliate data"
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /affiliates [post]
func (h *AffiliateHandler) Register(c *fiber.Ctx) error {
	var req RegisterAffiliateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.DocumentNumber = strings.TrimSpace(req.DocumentNumber)
	req.Name = strings.TrimSpace(req.Name)

	if req.DocumentNumber == "" {
		return response.BadRequest(c, "Document number is required")
	}
	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Salary <= 0 {
		return response.BadRequest(c, "Salary must be positive")
	}

	affiliationDate, err := time.Parse("2006-01-02", req.AffiliationDate)
	if err != nil {
		return response.BadRequest(c, "Affiliation date must be YYYY-MM-DD")
	}
	if affiliationDate.After(time.Now()) {
		return response.BadRequest(c, "Affiliation date cannot be in the future")
	}

	affiliate, err := h.affiliateService.Register(c.Context(), &services.RegisterAffiliateInput{
		DocumentNumber:  req.DocumentNumber,
		Name:            req.Name,
		Salary:          req.Salary,
		AffiliationDate: affiliationDate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			return response.Conflict(c, "Document number already registered")
		}
		return response.InternalServerError(c, "Failed to register affiliate")
	}

	return response.Created(c, "Affiliate registered successfully", affiliate)
}

// List handles affiliate listing
// @Summary List affiliates
// @Description List affiliates with pagination
// @Tags Affiliates
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /affiliates [get]
func (h *AffiliateHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	affiliates, total, err := h.affiliateService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list affiliates")
	}

	return response.Success(c, "Affiliates retrieved successfully", pagination.NewResponse(affiliates, params, total))
}

// Get handles affiliate retrieval by document number
// @Summary Get affiliate
// @Description Get an affiliate by document number
// @Tags Affiliates
// @Produce json
// @Param documentNumber path string true "Document number"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /affiliates/{documentNumber} [get]
func (h *AffiliateHandler) Get(c *fiber.Ctx) error {
	affiliate, err := h.affiliateService.GetByDocumentNumber(c.Context(), c.Params("documentNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return response.NotFound(c, "Affiliate not found")
		}
		return response.InternalServerError(c, "Failed to get affiliate")
	}

	return response.Success(c, "Affiliate retrieved successfully", affiliate)
}

// Update handles affiliate updates
// @Summary Update affiliate
// @Description Update affiliate name, salary or status
// @Tags Affiliates
// @Accept json
// @Produce json
// @Param documentNumber path string true "Document number"
// @Param body body UpdateAffiliateRequest true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /affiliates/{documentNumber} [put]
func (h *AffiliateHandler) Update(c *fiber.Ctx) error {
	var req UpdateAffiliateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Salary != nil && *req.Salary <= 0 {
		return response.BadRequest(c, "Salary must be positive")
	}
	if req.Status != nil {
		status := domain.AffiliateStatus(*req.Status)
		if status != domain.AffiliateActive && status != domain.AffiliateInactive {
			return response.BadRequest(c, "Status must be ACTIVE or INACTIVE")
		}
	}

	affiliate, err := h.affiliateService.Update(c.Context(), c.Params("documentNumber"), &services.UpdateAffiliateInput{
		Name:   req.Name,
		Salary: req.Salary,
		Status: req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return response.NotFound(c, "Affiliate not found")
		}
		return response.InternalServerError(c, "Failed to update affiliate")
	}

	return response.Success(c, "Affiliate updated successfully", affiliate)
}

// Activate handles affiliate activation
// @Summary Activate affiliate
// @Description Mark an affiliate as ACTIVE
// @Tags Affiliates
// @Produce json
// @Param documentNumber path string true "Document number"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /affiliates/{documentNumber}/activate [patch]
func (h *AffiliateHandler) Activate(c *fiber.Ctx) error {
	affiliate, err := h.affiliateService.Activate(c.Context(), c.Params("documentNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return response.NotFound(c, "Affiliate not found")
		}
		return response.InternalServerError(c, "Failed to activate affiliate")
	}

	return response.Success(c, "Affiliate activated", affiliate)
}

// Deactivate handles affiliate deactivation
// @Summary Deactivate affiliate
// @Description Mark an affiliate as INACTIVE
// @Tags Affiliates
// @Produce json
// @Param documentNumber path string true "Document number"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /affiliates/{documentNumber}/deactivate [patch]
func (h *AffiliateHandler) Deactivate(c *fiber.Ctx) error {
	affiliate, err := h.affiliateService.Deactivate(c.Context(), c.Params("documentNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return response.NotFound(c, "Affiliate not found")
		}
		return response.InternalServerError(c, "Failed to deactivate affiliate")
	}

	return response.Success(c, "Affiliate deactivated", affiliate)
}

// ListApplications handles listing one affiliate's applications
// @Summary List affiliate applications
// @Description List all credit applications of one affiliate
// @Tags Affiliates
// @Produce json
// @Param documentNumber path string true "Document number"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /affiliates/{documentNumber}/applications [get]
func (h *AffiliateHandler) ListApplications(c *fiber.Ctx) error {
	documentNumber := c.Params("documentNumber")

	// 404 for an unknown affiliate rather than an empty list
	if _, err := h.affiliateService.GetByDocumentNumber(c.Context(), documentNumber); err != nil {
		if errors.Is(err, domain.ErrAffiliateNotFound) {
			return response.NotFound(c, "Affiliate not found")
		}
		return response.InternalServerError(c, "Failed to get affiliate")
	}

	applications, err := h.applicationService.ListByAffiliateDocument(c.Context(), documentNumber)
	if err != nil {
		return response.InternalServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved successfully", applications)
}
