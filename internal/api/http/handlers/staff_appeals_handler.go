package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/civic-portal/appeal-service/internal/api/dto"
	"github.com/civic-portal/appeal-service/internal/auth"
	"github.com/civic-portal/appeal-service/internal/domain"
	"github.com/civic-portal/appeal-service/internal/service"
	apperrors "github.com/civic-portal/appeal-service/pkg/util"
)

// StaffAppealsHandler handles staff triage endpoints.
type StaffAppealsHandler struct {
	appeals *service.AppealService
}

// NewStaffAppealsHandler constructs handler.
func NewStaffAppealsHandler(appealService *service.AppealService) *StaffAppealsHandler {
	return &StaffAppealsHandler{appeals: appealService}
}

// ListAppeals GET /staff/appeals.
func (h *StaffAppealsHandler) ListAppeals(c *fiber.Ctx) error {
	if _, err := staffPrincipal(c); err != nil {
		return err
	}
	filter := service.SearchFilter{
		Category: c.Query("category"),
		Text:     c.Query("q"),
	}
	appeals, err := h.appeals.ListAppeals(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AppealSummary, 0, len(appeals))
	for i := range appeals {
		items = append(items, dto.NewAppealSummary(&appeals[i]))
	}
	return c.JSON(fiber.Map{"appeals": items})
}

// GetAppeal GET /staff/appeals/:number.
func (h *StaffAppealsHandler) GetAppeal(c *fiber.Ctx) error {
	if _, err := staffPrincipal(c); err != nil {
		return err
	}
	appeal, err := h.appeals.GetByTrackingNumber(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppealDetail(appeal)})
}

// UpdateStatus POST /staff/appeals/:number/status.
func (h *StaffAppealsHandler) UpdateStatus(c *fiber.Ctx) error {
	staff, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status is required", nil)
	}
	appeal, err := h.appeals.UpdateStatus(c.Context(), staff, c.Params("number"), domain.AppealStatus(req.Status), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppealDetail(appeal)})
}

// UpdatePriority POST /staff/appeals/:number/priority.
func (h *StaffAppealsHandler) UpdatePriority(c *fiber.Ctx) error {
	staff, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	appeal, err := h.appeals.UpdatePriority(c.Context(), staff, c.Params("number"), domain.AppealPriority(req.Priority))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppealDetail(appeal)})
}

// AssignAppeal POST /staff/appeals/:number/assign.
func (h *StaffAppealsHandler) AssignAppeal(c *fiber.Ctx) error {
	staff, err := staffPrincipal(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	appeal, err := h.appeals.Assign(c.Context(), staff, c.Params("number"), req.StaffID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppealDetail(appeal)})
}

// GetAnalytics GET /staff/analytics.
func (h *StaffAppealsHandler) GetAnalytics(c *fiber.Ctx) error {
	if _, err := staffPrincipal(c); err != nil {
		return err
	}
	summary, err := h.appeals.Analytics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAnalyticsResponse(summary))
}

func staffPrincipal(c *fiber.Ctx) (*domain.StaffMember, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return nil, fiber.NewError(http.StatusUnauthorized, "staff required")
	}
	return principal.Staff, nil
}
