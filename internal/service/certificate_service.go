package service

import (
	"context"
	"strconv"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/config"
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/logger"
	"moodle-bridge/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CertificateService discovers the certificates a user has earned.
type CertificateService interface {
	GetUserCertificates(ctx context.Context, mobileUserID string) ([]domain.Certificate, error)
}

type certificateService struct {
	lms       port.LMSClient
	repo      domain.LinkedAccountRepository
	cfg       config.LMSConfig
	allowList map[string]struct{}
}

// NewCertificateService creates a new instance of CertificateService.
// cfg.CertificateModTypes is the module-type allow-list; empty means the defaults.
func NewCertificateService(lms port.LMSClient, repo domain.LinkedAccountRepository, cfg config.LMSConfig) CertificateService {
	modTypes := cfg.CertificateModTypes
	if len(modTypes) == 0 {
		modTypes = config.DefaultCertificateModTypes
	}
	return &certificateService{
		lms:       lms,
		repo:      repo,
		cfg:       cfg,
		allowList: newModTypeSet(modTypes),
	}
}

// GetUserCertificates walks enrolled courses, their certificate activities and
// each activity's completion. Only the enrolled-course call can fail the request;
// everything below it degrades to fewer results. Output order is course order,
// then activity order.
func (s *certificateService) GetUserCertificates(ctx context.Context, mobileUserID string) ([]domain.Certificate, error) {
	account, err := loadLinkedAccount(ctx, s.repo, mobileUserID)
	if err != nil {
		return nil, err
	}

	courses, err := fetchEnrolledCourses(ctx, s.lms, account)
	if err != nil {
		return nil, newUpstreamError("Failed to fetch enrolled courses for certificate search.", err)
	}

	perCourse := make([][]domain.Certificate, len(courses))
	g := new(errgroup.Group)
	g.SetLimit(concurrencyLimit(s.cfg))
	for i, course := range courses {
		i, course := i, course
		g.Go(func() error {
			perCourse[i] = s.courseCertificates(ctx, account, course)
			return nil
		})
	}
	_ = g.Wait()

	certificates := make([]domain.Certificate, 0)
	for _, certs := range perCourse {
		certificates = append(certificates, certs...)
	}
	return certificates, nil
}

func (s *certificateService) courseCertificates(ctx context.Context, account *domain.LinkedAccount, course domain.Course) []domain.Certificate {
	var sections []moodle.Section
	params := map[string]string{"courseid": strconv.FormatInt(course.ID, 10)}
	if err := s.lms.Call(ctx, account.LMSToken, moodle.FunctionCourseContents, params, &sections); err != nil {
		logger.Get().Warn("Could not get contents for course during certificate check",
			zap.Int64("courseID", course.ID),
			zap.Error(err))
		return nil
	}

	var certificates []domain.Certificate
	for _, module := range certificateModules(sections, s.allowList) {
		if !s.activityCompleted(ctx, account, course.ID, module.ID) {
			continue
		}
		certificates = append(certificates,
			newCertificate(course, module, certificateDownloadURL(module, account.LMSToken)))
	}
	return certificates
}

// activityCompleted treats every failure as "not completed".
func (s *certificateService) activityCompleted(ctx context.Context, account *domain.LinkedAccount, courseID, moduleID int64) bool {
	params := courseUserParams(account, courseID)
	params["cmid"] = strconv.FormatInt(moduleID, 10)

	var status moodle.ActivitiesCompletionStatus
	if err := s.lms.Call(ctx, account.LMSToken, moodle.FunctionActivitiesCompletionStatus, params, &status); err != nil {
		logger.Get().Debug("Activity completion lookup failed",
			zap.Int64("courseID", courseID),
			zap.Int64("cmid", moduleID),
			zap.Error(err))
		return false
	}
	return isActivityComplete(status)
}
