package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("token secret must not be empty")

// Claims is the identity carried by a bearer token
type Claims struct {
	SubjectID   uint64 `json:"subject_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// TokenSigner issues tokens for an authenticated subject
type TokenSigner interface {
	Sign(subjectID uint64, displayName string) (string, time.Time, error)
}

// TokenVerifier checks a token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// JWTManager signs and verifies HS256 tokens with a shared secret
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a new JWTManager
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Sign issues a token for the subject, expiring ttl after issuance
func (m *JWTManager) Sign(subjectID uint64, displayName string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := Claims{
		SubjectID:   subjectID,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify parses and validates a token. Returned errors wrap the jwt sentinel
// errors (jwt.ErrTokenExpired, jwt.ErrTokenSignatureInvalid, ...).
func (m *JWTManager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
