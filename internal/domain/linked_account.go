package domain

import (
	"context"
	"time"
)

// LinkedAccount maps a mobile app user to the Moodle account they linked.
// LMSToken is a secret and is never serialized.
type LinkedAccount struct {
	MobileUserID string    `json:"mobile_user_id"`
	LMSToken     string    `json:"-"`
	LMSUserID    int64     `json:"lms_user_id"`
	LMSUsername  string    `json:"lms_username,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks the fields every stored link must carry.
func (a *LinkedAccount) Validate() error {
	var errs ValidationErrors
	if a.MobileUserID == "" {
		errs = append(errs, NewMissingFieldError("mobile_user_id"))
	}
	if a.LMSToken == "" {
		errs = append(errs, NewMissingFieldError("lms_token"))
	}
	if a.LMSUserID <= 0 {
		errs = append(errs, NewInvalidFormatError("lms_user_id", a.LMSUserID))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LinkedAccountRepository is the token store. Exactly one record exists per mobile user.
type LinkedAccountRepository interface {
	// Upsert creates the record or overwrites every field of the existing one.
	Upsert(ctx context.Context, account *LinkedAccount) error
	// GetByMobileUserID returns (nil, nil) when the user has no linked account.
	GetByMobileUserID(ctx context.Context, mobileUserID string) (*LinkedAccount, error)
	// Delete removes the record; deleting a missing record is not an error.
	Delete(ctx context.Context, mobileUserID string) error
}
