package service

import (
	"context"
	"fmt"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/config"
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/dto"
	"moodle-bridge/internal/logger"
	"moodle-bridge/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	msgAllCoursesRetrieved = "All available courses retrieved successfully."
	msgEnrolledOnly        = "Limited access: Only enrolled courses are available. Contact your Moodle administrator for full course access."
	noteEnrolledOnly       = "Your Moodle account does not have permission to view all courses. Only your enrolled courses are shown."
)

// CourseService defines the course operations exposed to the mobile app.
type CourseService interface {
	GetEnrolledCourses(ctx context.Context, mobileUserID string) ([]domain.EnrolledCourse, error)
	GetAvailableCourses(ctx context.Context, mobileUserID string) (*dto.AvailableCoursesResponse, error)
	Enroll(ctx context.Context, mobileUserID string, courseID int64) (*dto.StatusResponse, error)
}

type courseService struct {
	lms  port.LMSClient
	repo domain.LinkedAccountRepository
	cfg  config.LMSConfig
}

// NewCourseService creates a new instance of CourseService.
func NewCourseService(lms port.LMSClient, repo domain.LinkedAccountRepository, cfg config.LMSConfig) CourseService {
	return &courseService{lms: lms, repo: repo, cfg: cfg}
}

// GetEnrolledCourses returns the user's courses in upstream order, each with
// its completion status. A failed completion lookup marks that course unknown.
func (s *courseService) GetEnrolledCourses(ctx context.Context, mobileUserID string) ([]domain.EnrolledCourse, error) {
	account, err := loadLinkedAccount(ctx, s.repo, mobileUserID)
	if err != nil {
		return nil, err
	}

	courses, err := fetchEnrolledCourses(ctx, s.lms, account)
	if err != nil {
		return nil, newUpstreamError("Failed to fetch enrolled courses from Moodle.", err)
	}

	result := make([]domain.EnrolledCourse, len(courses))
	g := new(errgroup.Group)
	g.SetLimit(concurrencyLimit(s.cfg))
	for i, course := range courses {
		i, course := i, course
		g.Go(func() error {
			result[i] = domain.EnrolledCourse{Course: course, Status: s.completionStatus(ctx, account, course.ID)}
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func (s *courseService) completionStatus(ctx context.Context, account *domain.LinkedAccount, courseID int64) domain.CourseStatus {
	var status moodle.CourseCompletionStatus
	err := s.lms.Call(ctx, account.LMSToken, moodle.FunctionCourseCompletionStatus, courseUserParams(account, courseID), &status)
	if err != nil {
		logger.Get().Warn("Could not get completion status for course",
			zap.Int64("courseID", courseID),
			zap.Error(err))
		return domain.CourseStatusUnknown
	}
	if status.Completed() {
		return domain.CourseStatusCompleted
	}
	return domain.CourseStatusInProgress
}

// GetAvailableCourses lists the whole catalogue, falling back to the enrolled
// list when Moodle denies catalogue access.
func (s *courseService) GetAvailableCourses(ctx context.Context, mobileUserID string) (*dto.AvailableCoursesResponse, error) {
	account, err := loadLinkedAccount(ctx, s.repo, mobileUserID)
	if err != nil {
		return nil, err
	}

	var all []domain.Course
	err = s.lms.Call(ctx, account.LMSToken, moodle.FunctionAllCourses, nil, &all)
	if err == nil {
		return &dto.AvailableCoursesResponse{
			Courses:     nonNilCourses(all),
			Message:     msgAllCoursesRetrieved,
			AccessLevel: domain.AccessLevelFull,
		}, nil
	}

	if !isPermissionDenied(err) {
		return nil, newUpstreamError("Failed to fetch available courses from Moodle.", err)
	}

	logger.Get().Info("Moodle denied catalogue access, falling back to enrolled courses",
		zap.String("mobileUserID", mobileUserID),
		zap.Error(err))

	enrolled, err := fetchEnrolledCourses(ctx, s.lms, account)
	if err != nil {
		return nil, newUpstreamError("Failed to fetch courses from Moodle.", err)
	}
	return &dto.AvailableCoursesResponse{
		Courses:     enrolled,
		Message:     msgEnrolledOnly,
		AccessLevel: domain.AccessLevelEnrolledOnly,
		Note:        noteEnrolledOnly,
	}, nil
}

// isPermissionDenied reports whether err is a Moodle application error that
// carries one of the permission markers.
func isPermissionDenied(err error) bool {
	ce, ok := moodle.AsCallError(err)
	if !ok || ce.Kind != moodle.KindApplication {
		return false
	}
	return ce.ContainsAny(permissionMarkers)
}

// Enroll self-enrols the user in courseID. Moodle errors are surfaced as-is.
func (s *courseService) Enroll(ctx context.Context, mobileUserID string, courseID int64) (*dto.StatusResponse, error) {
	if err := requireMobileUser(mobileUserID); err != nil {
		return nil, err
	}
	if courseID <= 0 {
		return nil, domain.NewInvalidInputError("course_id must be a positive integer").
			WithContext("course_id", courseID)
	}
	account, err := loadLinkedAccount(ctx, s.repo, mobileUserID)
	if err != nil {
		return nil, err
	}

	var result moodle.SelfEnrolResult
	if err := s.lms.Call(ctx, account.LMSToken, moodle.FunctionSelfEnrol, courseUserParams(account, courseID), &result); err != nil {
		return nil, newUpstreamError("Failed to enroll user in course.", err)
	}
	if result.Status != nil && !*result.Status {
		logger.Get().Warn("Moodle refused self enrolment",
			zap.Int64("courseID", courseID),
			zap.Int64("lmsUserID", account.LMSUserID),
			zap.Any("warnings", result.Warnings))
		return nil, domain.NewUpstreamError("Failed to enroll user in course.", nil).
			WithContext("function", moodle.FunctionSelfEnrol).
			WithContext("warnings", result.Warnings)
	}

	return dto.NewSuccessResponse(fmt.Sprintf("User %d enrolled in course %d successfully.",
		account.LMSUserID, courseID)), nil
}

func concurrencyLimit(cfg config.LMSConfig) int {
	if cfg.MaxConcurrency <= 0 {
		return 1
	}
	return cfg.MaxConcurrency
}

// nonNilCourses keeps an empty catalogue serialized as [] rather than null.
func nonNilCourses(courses []domain.Course) []domain.Course {
	if courses == nil {
		return []domain.Course{}
	}
	return courses
}
