package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moodle-bridge/internal/domain"
	"moodle-bridge/internal/repository/models"
	"moodle-bridge/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxLinkedAccountRepository implements domain.LinkedAccountRepository using sqlx.
type sqlxLinkedAccountRepository struct {
	db *sqlx.DB
}

// NewSQLXLinkedAccountRepository creates a token store backed by db.
func NewSQLXLinkedAccountRepository(db *sqlx.DB) domain.LinkedAccountRepository {
	return &sqlxLinkedAccountRepository{db: db}
}

func toDomainLinkedAccount(m *models.LinkedAccount) *domain.LinkedAccount {
	if m == nil {
		return nil
	}
	return &domain.LinkedAccount{
		MobileUserID: m.MobileUserID,
		LMSToken:     m.LMSToken,
		LMSUserID:    m.LMSUserID,
		LMSUsername:  m.LMSUsername.String,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainLinkedAccount(a *domain.LinkedAccount) *models.LinkedAccount {
	if a == nil {
		return nil
	}
	return &models.LinkedAccount{
		MobileUserID: a.MobileUserID,
		LMSToken:     a.LMSToken,
		LMSUserID:    a.LMSUserID,
		LMSUsername:  util.StringToNullString(a.LMSUsername),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// Upsert writes the link in a single MERGE so concurrent links for the same
// user never produce two rows. CREATED_AT survives an overwrite.
func (r *sqlxLinkedAccountRepository) Upsert(ctx context.Context, account *domain.LinkedAccount) error {
	if err := account.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	m := fromDomainLinkedAccount(account)

	query := `MERGE INTO lms_linked_accounts t
	          USING (SELECT :mobile_user_id AS mobile_user_id, :lms_token AS lms_token, :lms_user_id AS lms_user_id,
	                        :lms_username AS lms_username, :created_at AS created_at, :updated_at AS updated_at FROM dual) s
	          ON (t.mobile_user_id = s.mobile_user_id)
	          WHEN MATCHED THEN UPDATE SET
	               t.lms_token = s.lms_token,
	               t.lms_user_id = s.lms_user_id,
	               t.lms_username = s.lms_username,
	               t.updated_at = s.updated_at
	          WHEN NOT MATCHED THEN INSERT (mobile_user_id, lms_token, lms_user_id, lms_username, created_at, updated_at)
	               VALUES (s.mobile_user_id, s.lms_token, s.lms_user_id, s.lms_username, s.created_at, s.updated_at)`

	args := map[string]interface{}{
		"mobile_user_id": m.MobileUserID,
		"lms_token":      m.LMSToken,
		"lms_user_id":    m.LMSUserID,
		"lms_username":   m.LMSUsername,
		"created_at":     m.CreatedAt,
		"updated_at":     m.UpdatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, args); err != nil {
		return fmt.Errorf("failed to upsert linked account: %w", err)
	}
	return nil
}

// GetByMobileUserID returns (nil, nil) when the user has not linked an account.
func (r *sqlxLinkedAccountRepository) GetByMobileUserID(ctx context.Context, mobileUserID string) (*domain.LinkedAccount, error) {
	var m models.LinkedAccount
	query := `SELECT mobile_user_id, lms_token, lms_user_id, lms_username, created_at, updated_at
	          FROM lms_linked_accounts WHERE mobile_user_id = :mobile_user_id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByMobileUserID: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"mobile_user_id": mobileUserID}
	if err := stmt.GetContext(ctx, &m, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linked account: %w", err)
	}
	return toDomainLinkedAccount(&m), nil
}

// Delete removes the link. Deleting a missing link succeeds.
func (r *sqlxLinkedAccountRepository) Delete(ctx context.Context, mobileUserID string) error {
	query := `DELETE FROM lms_linked_accounts WHERE mobile_user_id = :mobile_user_id`
	args := map[string]interface{}{"mobile_user_id": mobileUserID}
	if _, err := r.db.NamedExecContext(ctx, query, args); err != nil {
		return fmt.Errorf("failed to delete linked account: %w", err)
	}
	return nil
}
