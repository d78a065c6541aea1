package handler

import (
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/dto"
	"moodle-bridge/internal/middleware"
	"moodle-bridge/internal/service"
	"moodle-bridge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// MoodleAuthHandler handles linking the caller's Moodle account.
type MoodleAuthHandler struct {
	service   service.AccountLinkService
	validator *validation.Validator
}

// NewMoodleAuthHandler creates a new MoodleAuthHandler instance
func NewMoodleAuthHandler(service service.AccountLinkService) *MoodleAuthHandler {
	return &MoodleAuthHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// LinkAccount godoc
// @Summary Link a Moodle account
// @Description Exchanges Moodle credentials for a web-service token and stores it for the caller. The password is not stored.
// @Tags moodle-auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body dto.LinkAccountRequest true "Moodle credentials"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} middleware.ErrorResponse "Invalid input or Moodle rejected the credentials"
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse "Too many failed link attempts"
// @Failure 500 {object} middleware.ErrorResponse
// @Router /v1/moodle/auth/link [post]
func (h *MoodleAuthHandler) LinkAccount(c *fiber.Ctx) error {
	var req dto.LinkAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	if errs := h.validator.ValidateLinkAccountRequest(&req); len(errs) > 0 {
		return errs
	}

	if err := h.service.Link(c.UserContext(), middleware.MobileUserID(c), req.MoodleUsername, req.MoodlePassword); err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("Moodle account linked successfully."))
}

// UnlinkAccount godoc
// @Summary Unlink the Moodle account
// @Description Deletes the caller's stored Moodle token. Succeeds when nothing is linked.
// @Tags moodle-auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.StatusResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /v1/moodle/auth/unlink [post]
func (h *MoodleAuthHandler) UnlinkAccount(c *fiber.Ctx) error {
	if err := h.service.Unlink(c.UserContext(), middleware.MobileUserID(c)); err != nil {
		return err
	}
	return c.JSON(dto.NewSuccessResponse("Moodle account unlinked successfully."))
}

// LinkStatus godoc
// @Summary Moodle link status
// @Description Reports whether the caller has a linked Moodle account
// @Tags moodle-auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.LinkStatusResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /v1/moodle/auth/status [get]
func (h *MoodleAuthHandler) LinkStatus(c *fiber.Ctx) error {
	status, err := h.service.LinkStatus(c.UserContext(), middleware.MobileUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(status)
}
