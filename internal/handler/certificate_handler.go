package handler

import (
	"moodle-bridge/internal/middleware"
	"moodle-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CertificateHandler struct {
	service service.CertificateService
}

func NewCertificateHandler(service service.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// GetUserCertificates godoc
// @Summary List earned certificates
// @Description Returns completed certificate activities across the caller's enrolled courses. download_url embeds the caller's Moodle token.
// @Tags certificates
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.Certificate
// @Failure 400 {object} middleware.ErrorResponse "Moodle account not linked"
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /v1/moodle/certificates [get]
func (h *CertificateHandler) GetUserCertificates(c *fiber.Ctx) error {
	certs, err := h.service.GetUserCertificates(c.UserContext(), middleware.MobileUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(certs)
}
