package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/morsalin101/chat-app/domain"
)

// TokenPrefix is the scheme prepended to tokens in Authorization headers.
const TokenPrefix = "Bearer "

// Claim names for the single identity claim a token carries.
const (
	emailClaim = "email"
	phoneClaim = "phone_number"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// share the signing key and algorithm; only the TTL differs.
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service. The secret is fixed for the
// process lifetime and injected here so tests can use distinct keys.
func NewJWTService(secretKey string, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// IssueAccessToken implements domain.TokenService
func (j *JWTServiceImpl) IssueAccessToken(identifier string) (string, error) {
	return j.issue(identifier, j.accessTokenTTL)
}

// IssueRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) IssueRefreshToken(identifier string) (string, error) {
	return j.issue(identifier, j.refreshTokenTTL)
}

func (j *JWTServiceImpl) issue(identifier string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": j.issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	// Exactly one identity claim, keyed by identifier shape.
	if domain.ClassifyIdentifier(identifier) == domain.IdentifierEmail {
		claims[emailClaim] = identifier
	} else {
		claims[phoneClaim] = identifier
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// RenewAccessToken implements domain.TokenService
func (j *JWTServiceImpl) RenewAccessToken(refreshToken string) (string, error) {
	identifier, err := j.decode(refreshToken)
	if err != nil {
		return "", err
	}
	return j.issue(identifier, j.accessTokenTTL)
}

// DecodeIdentifier implements domain.TokenService
func (j *JWTServiceImpl) DecodeIdentifier(bearer string) (string, error) {
	return j.decode(bearer)
}

// decode strips the bearer prefix if present, validates signature and
// expiry, and extracts the single identity claim (email preferred).
func (j *JWTServiceImpl) decode(raw string) (string, error) {
	tokenString := strings.TrimPrefix(raw, TokenPrefix)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}

	if !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenMalformed
	}

	if email, ok := claims[emailClaim].(string); ok && email != "" {
		return email, nil
	}
	if phone, ok := claims[phoneClaim].(string); ok && phone != "" {
		return phone, nil
	}

	return "", domain.ErrTokenMalformed
}
