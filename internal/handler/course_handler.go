package handler

import (
	"moodle-bridge/internal/middleware"
	"moodle-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	service service.CourseService
}

// NewCourseHandler creates a new CourseHandler instance
func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// GetEnrolledCourses godoc
// @Summary List enrolled courses
// @Description Returns the caller's Moodle courses, each with its completion status (completed, in-progress or unknown)
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} domain.EnrolledCourse
// @Failure 400 {object} middleware.ErrorResponse "Moodle account not linked"
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /v1/moodle/courses/enrolled [get]
func (h *CourseHandler) GetEnrolledCourses(c *fiber.Ctx) error {
	courses, err := h.service.GetEnrolledCourses(c.UserContext(), middleware.MobileUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(courses)
}

// GetAvailableCourses godoc
// @Summary List available courses
// @Description Returns the whole course catalogue, or only enrolled courses when the Moodle account may not browse the catalogue
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.AvailableCoursesResponse
// @Failure 400 {object} middleware.ErrorResponse "Moodle account not linked"
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /v1/moodle/courses/available [get]
func (h *CourseHandler) GetAvailableCourses(c *fiber.Ctx) error {
	resp, err := h.service.GetAvailableCourses(c.UserContext(), middleware.MobileUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Enroll godoc
// @Summary Self-enrol in a course
// @Description Enrols the caller's Moodle user in the course using self enrolment
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param course_id path int true "Moodle course id"
// @Success 200 {object} dto.StatusResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse "Moodle refused the enrolment"
// @Router /v1/moodle/courses/{course_id}/enroll [post]
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	courseID, _ := c.Locals(middleware.ValidatedCourseIDKey).(int64)
	resp, err := h.service.Enroll(c.UserContext(), middleware.MobileUserID(c), courseID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
