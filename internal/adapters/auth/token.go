package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"eventscheduler/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var errWrongTokenType = errors.New("wrong token type")

// jwtClaims is the documented claim schema. Role flags are embedded so clients can
// introspect them; the server still trusts them only after signature verification.
type jwtClaims struct {
	jwt.RegisteredClaims
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username,omitempty"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// JWTProvider signs and verifies HS256 access and refresh tokens.
type JWTProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWTProvider returns a provider that implements both domain.TokenIssuer and
// domain.TokenVerifier.
func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (p *JWTProvider) IssueAccess(user *domain.User) (string, error) {
	return p.issue(user, tokenTypeAccess, p.accessTTL)
}

func (p *JWTProvider) IssueRefresh(user *domain.User) (string, error) {
	return p.issue(user, tokenTypeRefresh, p.refreshTTL)
}

func (p *JWTProvider) issue(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType:   tokenType,
		UserID:      user.ID,
		Username:    user.Username,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (p *JWTProvider) parse(tokenString, wantType string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.TokenType != wantType {
		return nil, errWrongTokenType
	}
	return claims, nil
}

// Verify checks an access token and returns the principal it carries.
func (p *JWTProvider) Verify(tokenString string) (*domain.Principal, error) {
	claims, err := p.parse(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &domain.Principal{
		UserID:      claims.UserID,
		Username:    claims.Username,
		IsStaff:     claims.IsStaff,
		IsSuperuser: claims.IsSuperuser,
	}, nil
}

// VerifyRefresh checks a refresh token and returns the user it was issued for.
func (p *JWTProvider) VerifyRefresh(tokenString string) (int64, error) {
	claims, err := p.parse(tokenString, tokenTypeRefresh)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
