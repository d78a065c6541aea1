package dto

import (
	"time"

	"moodle-bridge/internal/domain"
)

// LinkAccountRequest represents the request body for linking a Moodle account.
// @Description Moodle credentials exchanged once for a web-service token
type LinkAccountRequest struct {
	MoodleUsername string `json:"moodle_username" validate:"required"`
	MoodlePassword string `json:"moodle_password" validate:"required"`
}

// StatusResponse is the success body of operations that return no data.
// @Description Operation result
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}

// LinkStatusResponse reports whether the caller has a linked Moodle account.
// @Description Linked account summary; the Moodle token is never included
type LinkStatusResponse struct {
	Linked      bool       `json:"linked"`
	LMSUserID   int64      `json:"lms_user_id,omitempty"`
	LMSUsername string     `json:"lms_username,omitempty"`
	LinkedAt    *time.Time `json:"linked_at,omitempty"`
}

// AvailableCoursesResponse is the course catalogue visible to the caller.
// @Description Courses plus the access level they were fetched with
type AvailableCoursesResponse struct {
	Courses     []domain.Course    `json:"courses"`
	Message     string             `json:"message"`
	AccessLevel domain.AccessLevel `json:"access_level" example:"full_access"`
	Note        string             `json:"note,omitempty"`
}

// NewSuccessResponse builds a StatusResponse with status "success".
func NewSuccessResponse(message string) *StatusResponse {
	return &StatusResponse{Status: "success", Message: message}
}
