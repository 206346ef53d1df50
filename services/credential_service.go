package services

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/QuaKeyz/reselling-store/pkg/apperrors"
	"github.com/QuaKeyz/reselling-store/pkg/clock"
)

// CredentialService issues and validates admin bearer tokens. Expiry is
// checked against the injected clock rather than the JWT library's wall
// clock, so token lifetime is testable without sleeps.
type CredentialService struct {
	passwordHash []byte
	secretKey    []byte
	ttl          time.Duration
	clock        clock.Clock
}

// NewCredentialService creates a CredentialService. passwordHash is the
// bcrypt hash of the admin password.
func NewCredentialService(passwordHash, jwtSecret string, ttl time.Duration, clk clock.Clock) *CredentialService {
	return &CredentialService{
		passwordHash: []byte(passwordHash),
		secretKey:    []byte(jwtSecret),
		ttl:          ttl,
		clock:        clk,
	}
}

// Login verifies the admin password and issues a signed token with a fixed
// expiry.
func (s *CredentialService) Login(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, apperrors.ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.MapClaims{
		"sub": "admin",
		"typ": "admin",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate checks the token signature and expiry. Claims validation is done
// here against the injected clock instead of inside the parser.
func (s *CredentialService) Validate(tokenStr string) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return apperrors.ErrInvalidToken
	}
	if typ, ok := claims["typ"].(string); !ok || typ != "admin" {
		return apperrors.ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return apperrors.ErrInvalidToken
	}
	if int64(exp) <= s.clock.Now().Unix() {
		return apperrors.ErrTokenExpired
	}
	return nil
}
