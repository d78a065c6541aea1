package service

import (
	"context"
	"errors"

	"moodle-bridge/internal/adapter/moodle"
	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/dto"
	"moodle-bridge/internal/logger"
	"moodle-bridge/internal/metrics"
	"moodle-bridge/internal/port"

	"go.uber.org/zap"
)

// AccountLinkService links and unlinks a mobile user's Moodle account.
type AccountLinkService interface {
	Link(ctx context.Context, mobileUserID, username, password string) error
	Unlink(ctx context.Context, mobileUserID string) error
	LinkStatus(ctx context.Context, mobileUserID string) (*dto.LinkStatusResponse, error)
}

type accountLinkService struct {
	lms     port.LMSClient
	repo    domain.LinkedAccountRepository
	guard   LinkGuard
	metrics *metrics.Metrics
}

// NewAccountLinkService creates a new instance of AccountLinkService.
func NewAccountLinkService(
	lms port.LMSClient,
	repo domain.LinkedAccountRepository,
	guard LinkGuard,
	m *metrics.Metrics,
) AccountLinkService {
	if guard == nil {
		guard = noopLinkGuard{}
	}
	return &accountLinkService{
		lms:     lms,
		repo:    repo,
		guard:   guard,
		metrics: m,
	}
}

// Link exchanges the credentials for a token, resolves the Moodle user id and
// stores both. The password is never stored or logged.
func (s *accountLinkService) Link(ctx context.Context, mobileUserID, username, password string) error {
	appLogger := logger.Get()
	if err := requireMobileUser(mobileUserID); err != nil {
		return err
	}
	if username == "" || password == "" {
		return domain.NewInvalidInputError("moodle_username and moodle_password are required")
	}

	if err := s.guard.Check(ctx, mobileUserID); err != nil {
		s.metrics.IncrementLinkAttempts("throttled")
		return err
	}

	token, err := s.lms.FetchToken(ctx, username, password)
	if err != nil {
		// Only rejected credentials count toward the lockout; outages do not.
		if errors.Is(err, moodle.ErrCredentialsRejected) {
			s.guard.RecordFailure(ctx, mobileUserID)
			s.metrics.IncrementLinkAttempts("rejected")
		} else {
			s.metrics.IncrementLinkAttempts("unreachable")
		}
		return domain.NewLinkFailedError(err)
	}

	var siteInfo moodle.SiteInfo
	if err := s.lms.Call(ctx, token, moodle.FunctionSiteInfo, nil, &siteInfo); err != nil {
		s.metrics.IncrementLinkAttempts("identity_unresolved")
		return domain.NewIdentityUnresolvedError(
			"Failed to retrieve Moodle user information after successful token acquisition.", err)
	}
	if siteInfo.UserID <= 0 {
		s.metrics.IncrementLinkAttempts("identity_unresolved")
		appLogger.Error("Moodle site info carried no user id", zap.String("mobileUserID", mobileUserID))
		return domain.NewIdentityUnresolvedError("Moodle user ID not found in Moodle site info response.", nil)
	}

	account := &domain.LinkedAccount{
		MobileUserID: mobileUserID,
		LMSToken:     token,
		LMSUserID:    siteInfo.UserID,
		LMSUsername:  username,
	}
	if err := s.repo.Upsert(ctx, account); err != nil {
		// The token minted above is dropped; Moodle may still hold it.
		s.metrics.IncrementLinkAttempts("storage_error")
		appLogger.Error("Database error storing Moodle token",
			zap.String("mobileUserID", mobileUserID),
			zap.Int64("lmsUserID", siteInfo.UserID),
			zap.Error(err))
		return domain.NewStorageError("Failed to store Moodle account link in database.", err)
	}

	s.guard.Clear(ctx, mobileUserID)
	s.metrics.IncrementLinkAttempts("success")
	appLogger.Info("Moodle account linked",
		zap.String("mobileUserID", mobileUserID),
		zap.Int64("lmsUserID", siteInfo.UserID))
	return nil
}

// Unlink removes the stored link. Unlinking an unlinked user succeeds.
func (s *accountLinkService) Unlink(ctx context.Context, mobileUserID string) error {
	if err := requireMobileUser(mobileUserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, mobileUserID); err != nil {
		logger.Get().Error("Database error unlinking Moodle account",
			zap.String("mobileUserID", mobileUserID),
			zap.Error(err))
		return domain.NewStorageError("Failed to unlink Moodle account in database.", err)
	}
	logger.Get().Info("Moodle account unlinked", zap.String("mobileUserID", mobileUserID))
	return nil
}

func (s *accountLinkService) LinkStatus(ctx context.Context, mobileUserID string) (*dto.LinkStatusResponse, error) {
	if err := requireMobileUser(mobileUserID); err != nil {
		return nil, err
	}
	account, err := s.repo.GetByMobileUserID(ctx, mobileUserID)
	if err != nil {
		return nil, domain.NewStorageError("Failed to load Moodle account link.", err)
	}
	if account == nil {
		return &dto.LinkStatusResponse{Linked: false}, nil
	}

	linkedAt := account.UpdatedAt
	return &dto.LinkStatusResponse{
		Linked:      true,
		LMSUserID:   account.LMSUserID,
		LMSUsername: account.LMSUsername,
		LinkedAt:    &linkedAt,
	}, nil
}
