package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/civic-portal/appeal-service/internal/api/dto"
	"github.com/civic-portal/appeal-service/internal/domain"
	"github.com/civic-portal/appeal-service/internal/service"
	apperrors "github.com/civic-portal/appeal-service/pkg/util"
)

// AppealsHandler manages the public citizen endpoints.
type AppealsHandler struct {
	service *service.AppealService
}

// NewAppealsHandler constructs handler.
func NewAppealsHandler(appealService *service.AppealService) *AppealsHandler {
	return &AppealsHandler{service: appealService}
}

// SubmitAppeal POST /appeals.
func (h *AppealsHandler) SubmitAppeal(c *fiber.Ctx) error {
	var req dto.SubmitAppealRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := domain.SubmissionInput{
		CitizenName: req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Category:    domain.AppealCategory(req.Category),
		Subject:     req.Subject,
		Description: req.Description,
	}
	appeal, err := h.service.Submit(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.SubmitAppealResponse{
		Success:      true,
		AppealNumber: appeal.TrackingNumber,
		Message:      "Обращение успешно зарегистрировано",
	})
}

// GetAppealStatus GET /appeals/:number.
func (h *AppealsHandler) GetAppealStatus(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return apperrors.NewValidationError("appeal number is required", nil)
	}
	appeal, err := h.service.GetByTrackingNumber(c.Context(), number)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAppealStatusResponse(appeal))
}
