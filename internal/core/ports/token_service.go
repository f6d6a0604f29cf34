package ports

import "github.com/storelane/customer-accounts/internal/core/domain"

// TokenService signs and verifies the two JWT variants.
type TokenService interface {
	// IssueAccessToken signs a short-lived token carrying id, email and role.
	IssueAccessToken(customer *domain.Customer) (string, error)
	// IssueRefreshToken signs a longer-lived token carrying id and email.
	IssueRefreshToken(customer *domain.Customer) (string, error)
	// VerifyRefreshToken checks signature and expiry and returns the decoded
	// payload, or domain.ErrInvalidToken for anything unverifiable.
	VerifyRefreshToken(token string) (*domain.RefreshPayload, error)
	// ValidatePasswordComplexity reports whether a password meets policy:
	// at least 8 characters with at least one letter, one digit and one
	// symbol from !@#$%^&*-_.
	ValidatePasswordComplexity(password string) bool
}
