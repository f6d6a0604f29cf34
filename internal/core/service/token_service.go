package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/storelane/customer-accounts/internal/core/domain"
)

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// passwordSymbols is the fixed symbol set accepted by the complexity policy.
const passwordSymbols = "!@#$%^&*-_"

type accessClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed access and refresh tokens
// sharing a single secret.
type TokenService struct {
	secret []byte
	logger zerolog.Logger
}

func NewTokenService(jwtSecret string, logger zerolog.Logger) *TokenService {
	return &TokenService{secret: []byte(jwtSecret), logger: logger}
}

// IssueAccessToken signs a one-hour token carrying id, email and role.
func (s *TokenService) IssueAccessToken(customer *domain.Customer) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		ID:    customer.ID,
		Email: customer.Email,
		Role:  customer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sign access token")
		return "", err
	}
	return token, nil
}

// IssueRefreshToken signs a seven-day token carrying id and email only.
func (s *TokenService) IssueRefreshToken(customer *domain.Customer) (string, error) {
	now := time.Now().UTC()
	claims := refreshClaims{
		ID:    customer.ID,
		Email: customer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sign refresh token")
		return "", err
	}
	return token, nil
}

// VerifyRefreshToken validates signature and expiry. Malformed, forged and
// expired tokens all collapse into domain.ErrInvalidToken; the caller
// treats the bearer as unauthenticated.
func (s *TokenService) VerifyRefreshToken(token string) (*domain.RefreshPayload, error) {
	claims := &refreshClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		s.logger.Warn().Err(err).Msg("invalid refresh token")
		return nil, domain.ErrInvalidToken
	}

	return &domain.RefreshPayload{ID: claims.ID, Email: claims.Email}, nil
}

// ValidatePasswordComplexity reports whether the password is at least 8
// characters long and contains a letter, a digit and a symbol from the
// fixed set.
func (s *TokenService) ValidatePasswordComplexity(password string) bool {
	var length int
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		length++
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			for _, sym := range passwordSymbols {
				if r == sym {
					hasSymbol = true
					break
				}
			}
		}
	}
	return length >= 8 && hasLetter && hasDigit && hasSymbol
}
