package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pushauth/internal/models"
)

// Denylist records invalidated token IDs until the tokens expire.
type Denylist interface {
	Revoke(ctx context.Context, tokenID, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type JWTService struct {
	secret   []byte
	tokenTTL time.Duration
	denylist Denylist
	now      func() time.Time
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewJWTService(secret string, tokenTTL time.Duration, denylist Denylist) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		denylist: denylist,
		now:      time.Now,
	}
}

// Issue mints a signed access token for the user.
func (s *JWTService) Issue(user *models.User) (string, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating token ID: %w", err)
	}

	now := s.now()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Validate parses the token, checks signature and expiry, and rejects
// denylisted tokens with ErrTokenRevoked.
func (s *JWTService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDenylistUnavailable, err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Invalidate denylists the token behind id. Invalidating twice is a no-op.
func (s *JWTService) Invalidate(ctx context.Context, id Identity) error {
	if err := s.denylist.Revoke(ctx, id.TokenID, id.UserID, id.ExpiresAt); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IdentityFromClaims converts verified claims into a request identity.
func IdentityFromClaims(claims *Claims) Identity {
	id := Identity{UserID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}
