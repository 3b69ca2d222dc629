// Package authenticator issues and verifies the bearer tokens used by the
// API. Tokens are stateless: an HS256-signed access/refresh pair sharing one
// signing key, with no server-side session record.
package authenticator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/softdesk/tracker/internal/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token not valid for this use")
)

// UserClaims is the payload carried by both token kinds.
type UserClaims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(conf *config.Config) (*Authenticator, error) {
	if conf.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Authenticator{
		secret:     []byte(conf.JWT_SECRET),
		accessTTL:  conf.ACCESS_TOKEN_TTL,
		refreshTTL: conf.REFRESH_TOKEN_TTL,
	}, nil
}

// TokenPair mirrors the login response body.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// GenerateTokenPair issues a fresh access and refresh token for the user.
func (a *Authenticator) GenerateTokenPair(userID int64, username string) (*TokenPair, error) {
	access, err := a.sign(userID, username, TokenTypeAccess, a.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := a.sign(userID, username, TokenTypeRefresh, a.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// VerifyAccessToken parses and validates an access token.
func (a *Authenticator) VerifyAccessToken(token string) (*UserClaims, error) {
	return a.verify(token, TokenTypeAccess)
}

// Refresh validates a refresh token and issues a new access token. This is a
// stateless verify-and-reissue against the same signing key.
func (a *Authenticator) Refresh(refreshToken string) (string, error) {
	claims, err := a.verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	access, err := a.sign(claims.UserID, claims.Username, TokenTypeAccess, a.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return access, nil
}

func (a *Authenticator) sign(userID int64, username, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) verify(token, wantType string) (*UserClaims, error) {
	var claims UserClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, ErrWrongTokenUse
	}

	return &claims, nil
}
