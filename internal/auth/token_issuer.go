// Package auth issues and validates the HS256 bearer tokens guarding the
// admin inquiry endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSigningSecret indicates the issuer was built without a key.
	ErrMissingSigningSecret = errors.New("auth: signing secret must be provided")
	// ErrMissingIssuer indicates the issuer name was blank.
	ErrMissingIssuer = errors.New("auth: issuer must be provided")
	// ErrMissingAudience indicates the audience was blank.
	ErrMissingAudience = errors.New("auth: audience must be provided")
	// ErrInvalidTokenTTL indicates a non-positive token lifetime.
	ErrInvalidTokenTTL = errors.New("auth: token ttl must be positive")
	// ErrMissingSubject indicates a token without a subject claim.
	ErrMissingSubject = errors.New("auth: subject must be provided")
)

// TokenIssuerConfig configures the admin JWT issuer.
type TokenIssuerConfig struct {
	SigningSecret []byte
	Issuer        string
	Audience      string
	TokenTTL      time.Duration
	Clock         func() time.Time
}

// TokenIssuer signs and validates admin access tokens.
type TokenIssuer struct {
	signingSecret []byte
	issuer        string
	audience      string
	tokenTTL      time.Duration
	clock         func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer, validating its configuration.
func NewTokenIssuer(cfg TokenIssuerConfig) (*TokenIssuer, error) {
	if len(cfg.SigningSecret) == 0 {
		return nil, ErrMissingSigningSecret
	}
	if strings.TrimSpace(cfg.Issuer) == "" {
		return nil, ErrMissingIssuer
	}
	if strings.TrimSpace(cfg.Audience) == "" {
		return nil, ErrMissingAudience
	}
	if cfg.TokenTTL <= 0 {
		return nil, ErrInvalidTokenTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TokenIssuer{
		signingSecret: append([]byte(nil), cfg.SigningSecret...),
		issuer:        strings.TrimSpace(cfg.Issuer),
		audience:      strings.TrimSpace(cfg.Audience),
		tokenTTL:      cfg.TokenTTL,
		clock:         clock,
	}, nil
}

// IssueToken produces a signed JWT for the subject along with its expiry in
// seconds.
func (i *TokenIssuer) IssueToken(_ context.Context, subject string) (string, int64, error) {
	if strings.TrimSpace(subject) == "" {
		return "", 0, ErrMissingSubject
	}

	now := i.clock().UTC()
	expiresAt := now.Add(i.tokenTTL).UTC()

	registered := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    i.issuer,
		Audience:  []string{i.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, registered)
	signed, err := token.SignedString(i.signingSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(expiresAt.Sub(now).Seconds()), nil
}

// ValidateToken ensures the JWT is well formed, signed by this issuer and
// unexpired, and returns its subject.
func (i *TokenIssuer) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing algorithm: %s", token.Method.Alg())
			}
			return i.signingSecret, nil
		},
		jwt.WithAudience(i.audience),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.clock),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
