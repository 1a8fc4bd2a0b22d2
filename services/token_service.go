package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/HadarPadael/facyBook-Server/config"
	"github.com/HadarPadael/facyBook-Server/logger"
	"github.com/HadarPadael/facyBook-Server/models"
)

// TokenService issues and verifies the bearer tokens used by the API. Tokens
// are HS256 JWTs carrying the user's handle as subject. Verification is
// stateless; issued tokens are additionally written to the Tokens table as
// informational records that expire via TTL.
type TokenService struct {
	Store Store

	secretKey   []byte
	issuer      string
	expireAfter time.Duration
}

// NewTokenService builds a TokenService from JWT configuration.
func NewTokenService(cfg config.JWTConfig, store Store) *TokenService {
	return &TokenService{
		Store:       store,
		secretKey:   []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		expireAfter: cfg.ExpireTime,
	}
}

// Issue signs a token for the given handle. The informational token record is
// best-effort: a persistence failure is logged, not surfaced, since
// verification never consults it.
func (ts *TokenService) Issue(ctx context.Context, nickname string) (string, error) {
	if nickname == "" {
		return "", errors.New("nickname is required")
	}

	now := time.Now()
	expiresAt := now.Add(ts.expireAfter)
	claims := jwtv5.RegisteredClaims{
		Issuer:    ts.issuer,
		Subject:   nickname,
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(expiresAt),
	}

	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(ts.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	record := models.AuthToken{
		Token:     signed,
		Nickname:  nickname,
		CreatedAt: now.UTC().Format(time.RFC3339),
		ExpiresAt: expiresAt.Unix(),
	}
	if err := ts.Store.PutItem(ctx, models.TokensTable, record); err != nil {
		logger.Warnf("failed to persist token record for %s: %v", nickname, err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning the handle it was issued
// for.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("token is empty")
	}

	claims := &jwtv5.RegisteredClaims{}
	parsed, err := jwtv5.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ts.secretKey, nil
		},
		jwtv5.WithIssuer(ts.issuer),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
