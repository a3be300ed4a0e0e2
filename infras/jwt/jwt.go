package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leonine/config"
	"leonine/infras/otel"
	"leonine/shared/constant"
	"leonine/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")

	errUnknownTokenType = errors.New("unknown token type")
	errMissingBearer    = errors.New("authorization header must start with 'Bearer '")
)

const bearer = "Bearer"

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims are signed into both token types; Type tells them apart.
type Claims struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role,omitempty"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID, email, role string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer string
	keys   map[TokenType]signingKey
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]signingKey{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		otel: otl,
	}
}

func (s *Service) key(tokenType TokenType) (signingKey, error) {
	key, ok := s.keys[tokenType]
	if !ok {
		return signingKey{}, fmt.Errorf("%w: %s", errUnknownTokenType, tokenType)
	}

	return key, nil
}

func (s *Service) GenerateTokenPair(ctx context.Context, userID, email, role string) (_ *TokenPair, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".jwt.GenerateTokenPair")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()
	pair := &TokenPair{TokenType: bearer}

	if pair.AccessToken, err = s.sign(Claims{UserID: userID, Email: email, Role: role, Type: AccessToken}, now); err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if pair.RefreshToken, err = s.sign(Claims{UserID: userID, Email: email, Role: role, Type: RefreshToken}, now); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	pair.ExpiresIn = int64(s.keys[AccessToken].ttl / time.Second)

	return pair, nil
}

func (s *Service) sign(claims Claims, now time.Time) (string, error) {
	key, err := s.key(claims.Type)
	if err != nil {
		return "", err
	}

	claims.TokenID = uuid.NewString()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        claims.TokenID,
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(key.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken verifies signature, expiry and issuer, then checks the token is of tokenType.
func (s *Service) ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (_ *Claims, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".jwt.ValidateToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key, err := s.key(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return key.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(timezone.Now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// RefreshTokens issues a fresh pair for the subject of a valid refresh token.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(ctx, claims.UserID, claims.Email, claims.Role)
}

func ExtractTokenFromHeader(authHeader string) (string, error) {
	token, ok := strings.CutPrefix(authHeader, bearer+" ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", errMissingBearer
	}

	return token, nil
}
