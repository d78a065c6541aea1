package handler

import (
	"moodle-bridge/internal/middleware"
	"moodle-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the handlers mounted by SetupRoutes.
type Handlers struct {
	MoodleAuth  *MoodleAuthHandler
	Course      *CourseHandler
	Certificate *CertificateHandler
	Health      *HealthHandler
}

// SetupRoutes mounts the public probes and the JWT-protected Moodle routes.
func SetupRoutes(app *fiber.App, authService service.AuthService, h Handlers) {
	if h.Health != nil {
		app.Get("/health", h.Health.Health)
	}

	api := app.Group("/api")
	api.Get("/test", Ping)

	validationMiddleware := middleware.NewValidationMiddleware()

	moodle := api.Group("/v1/moodle", middleware.Protected(authService))
	moodle.Post("/auth/link", h.MoodleAuth.LinkAccount)
	moodle.Post("/auth/unlink", h.MoodleAuth.UnlinkAccount)
	moodle.Get("/auth/status", h.MoodleAuth.LinkStatus)

	moodle.Get("/courses/enrolled", h.Course.GetEnrolledCourses)
	moodle.Get("/courses/available", h.Course.GetAvailableCourses)
	moodle.Post("/courses/:course_id/enroll", validationMiddleware.ValidateCourseID(), h.Course.Enroll)

	moodle.Get("/certificates", h.Certificate.GetUserCertificates)
}
