package service

import (
	"context"
	"strconv"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/port"
)

// permissionMarkers identify Moodle errors that mean "not allowed to browse
// the whole catalogue" rather than a real failure. Matching is case-sensitive.
var permissionMarkers = []string{
	"nopermissions",
	"required_capability_exception",
	"View courses without participation",
}

func requireMobileUser(mobileUserID string) error {
	if mobileUserID == "" {
		return domain.NewUnauthorizedError("Unauthorized: Mobile user not authenticated with backend.")
	}
	return nil
}

// loadLinkedAccount returns the caller's link or a NOT_LINKED error.
func loadLinkedAccount(ctx context.Context, repo domain.LinkedAccountRepository, mobileUserID string) (*domain.LinkedAccount, error) {
	if err := requireMobileUser(mobileUserID); err != nil {
		return nil, err
	}
	account, err := repo.GetByMobileUserID(ctx, mobileUserID)
	if err != nil {
		return nil, domain.NewStorageError("Failed to load Moodle account link.", err)
	}
	if account == nil {
		return nil, domain.NewNotLinkedError()
	}
	return account, nil
}

// newUpstreamError attaches the sanitized Moodle error details, never the raw body.
func newUpstreamError(message string, err error) *domain.DomainError {
	de := domain.NewUpstreamError(message, err)
	if ce, ok := moodle.AsCallError(err); ok {
		de.Context = ce.Details()
	}
	return de
}

func userParams(account *domain.LinkedAccount) map[string]string {
	return map[string]string{"userid": strconv.FormatInt(account.LMSUserID, 10)}
}

func courseUserParams(account *domain.LinkedAccount, courseID int64) map[string]string {
	params := userParams(account)
	params["courseid"] = strconv.FormatInt(courseID, 10)
	return params
}

// fetchEnrolledCourses lists the user's courses in upstream order, dropping
// entries without a usable id.
func fetchEnrolledCourses(ctx context.Context, lms port.LMSClient, account *domain.LinkedAccount) ([]domain.Course, error) {
	var courses []domain.Course
	if err := lms.Call(ctx, account.LMSToken, moodle.FunctionUserCourses, userParams(account), &courses); err != nil {
		return nil, err
	}
	return withCourseIDs(courses), nil
}

func withCourseIDs(courses []domain.Course) []domain.Course {
	out := make([]domain.Course, 0, len(courses))
	for _, c := range courses {
		if c.ID > 0 {
			out = append(out, c)
		}
	}
	return out
}
