package middleware

import (
	"moodle-bridge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedCourseIDKey holds the parsed :course_id path parameter.
const ValidatedCourseIDKey = "validated_course_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateCourseID validates the course_id path parameter and stores it as int64.
func (vm *ValidationMiddleware) ValidateCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, errs := vm.validator.ValidateCourseID(c.Params("course_id"))
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedCourseIDKey, courseID)
		return c.Next()
	}
}
