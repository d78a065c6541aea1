package models

import (
	"database/sql"
	"time"
)

// LinkedAccount is a row of LMS_LINKED_ACCOUNTS.
type LinkedAccount struct {
	MobileUserID string         `db:"MOBILE_USER_ID"` // Primary key, the authenticated app user
	LMSToken     string         `db:"LMS_TOKEN"`      // Moodle web-service token
	LMSUserID    int64          `db:"LMS_USER_ID"`    // Moodle numeric user id
	LMSUsername  sql.NullString `db:"LMS_USERNAME"`   // Username used at link time
	CreatedAt    time.Time      `db:"CREATED_AT"`
	UpdatedAt    time.Time      `db:"UPDATED_AT"`
}

