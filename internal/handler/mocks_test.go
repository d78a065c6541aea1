package handler_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/dto"
)

// --- Manual Mocks ---

// MockAuthService accepts "Bearer token-<userID>".
type MockAuthService struct{}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if !strings.HasPrefix(tokenString, "token-") {
		return nil, errors.New("invalid token")
	}
	return &dto.AuthClaims{UserID: strings.TrimPrefix(tokenString, "token-"), TokenType: "access"}, nil
}

func (m *MockAuthService) CreateJWT(ctx context.Context, userID string, ttl time.Duration, tokenType string) (string, error) {
	return "token-" + userID, nil
}

// MockAccountLinkService
type MockAccountLinkService struct {
	LinkFunc       func(ctx context.Context, mobileUserID, username, password string) error
	UnlinkFunc     func(ctx context.Context, mobileUserID string) error
	LinkStatusFunc func(ctx context.Context, mobileUserID string) (*dto.LinkStatusResponse, error)
}

func (m *MockAccountLinkService) Link(ctx context.Context, mobileUserID, username, password string) error {
	if m.LinkFunc != nil {
		return m.LinkFunc(ctx, mobileUserID, username, password)
	}
	panic("MockAccountLinkService.LinkFunc not implemented")
}

func (m *MockAccountLinkService) Unlink(ctx context.Context, mobileUserID string) error {
	if m.UnlinkFunc != nil {
		return m.UnlinkFunc(ctx, mobileUserID)
	}
	panic("MockAccountLinkService.UnlinkFunc not implemented")
}

func (m *MockAccountLinkService) LinkStatus(ctx context.Context, mobileUserID string) (*dto.LinkStatusResponse, error) {
	if m.LinkStatusFunc != nil {
		return m.LinkStatusFunc(ctx, mobileUserID)
	}
	panic("MockAccountLinkService.LinkStatusFunc not implemented")
}

// MockCourseService
type MockCourseService struct {
	GetEnrolledCoursesFunc  func(ctx context.Context, mobileUserID string) ([]domain.EnrolledCourse, error)
	GetAvailableCoursesFunc func(ctx context.Context, mobileUserID string) (*dto.AvailableCoursesResponse, error)
	EnrollFunc              func(ctx context.Context, mobileUserID string, courseID int64) (*dto.StatusResponse, error)
}

func (m *MockCourseService) GetEnrolledCourses(ctx context.Context, mobileUserID string) ([]domain.EnrolledCourse, error) {
	if m.GetEnrolledCoursesFunc != nil {
		return m.GetEnrolledCoursesFunc(ctx, mobileUserID)
	}
	panic("MockCourseService.GetEnrolledCoursesFunc not implemented")
}

func (m *MockCourseService) GetAvailableCourses(ctx context.Context, mobileUserID string) (*dto.AvailableCoursesResponse, error) {
	if m.GetAvailableCoursesFunc != nil {
		return m.GetAvailableCoursesFunc(ctx, mobileUserID)
	}
	panic("MockCourseService.GetAvailableCoursesFunc not implemented")
}

func (m *MockCourseService) Enroll(ctx context.Context, mobileUserID string, courseID int64) (*dto.StatusResponse, error) {
	if m.EnrollFunc != nil {
		return m.EnrollFunc(ctx, mobileUserID, courseID)
	}
	panic("MockCourseService.EnrollFunc not implemented")
}

// MockCertificateService
type MockCertificateService struct {
	GetUserCertificatesFunc func(ctx context.Context, mobileUserID string) ([]domain.Certificate, error)
}

func (m *MockCertificateService) GetUserCertificates(ctx context.Context, mobileUserID string) ([]domain.Certificate, error) {
	if m.GetUserCertificatesFunc != nil {
		return m.GetUserCertificatesFunc(ctx, mobileUserID)
	}
	panic("MockCertificateService.GetUserCertificatesFunc not implemented")
}

// MockCache only answers Ping.
type MockCache struct {
	PingErr error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) { return "", domain.ErrCacheMiss }
func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) { return 0, nil }
func (m *MockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}
func (m *MockCache) Delete(ctx context.Context, key string) error { return nil }
func (m *MockCache) Ping(ctx context.Context) error               { return m.PingErr }

type MockDB struct {
	PingErr error
}

func (m *MockDB) PingContext(ctx context.Context) error { return m.PingErr }
