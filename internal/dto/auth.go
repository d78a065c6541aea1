package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the claims of the mobile app's access tokens.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// MobileUserID is the user_id claim, or the subject when user_id is absent.
func (c *AuthClaims) MobileUserID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
