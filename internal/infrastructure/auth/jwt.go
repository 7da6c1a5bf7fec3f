package auth

import (
	"errors"
	"time"

	"github.com/freshmart/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal identifies which store a token's subject lives in.
type Principal string

const (
	PrincipalUser   Principal = "user"
	PrincipalFarmer Principal = "farmer"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingID    = errors.New("missing id in claims")
)

// Claims carries the subject id and principal kind. The principal is a hint
// only; callers re-load the subject from its store.
type Claims struct {
	jwt.RegisteredClaims
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
}

// SubjectID parses the id claim.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}

// TokenID returns the jti used for revocation.
func (c *Claims) TokenID() string {
	return c.RegisteredClaims.ID
}

// RemainingTTL is the time left until expiry, never negative.
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if d := time.Until(c.ExpiresAt.Time); d > 0 {
		return d
	}
	return 0
}

// JWTService signs and verifies HS256 tokens.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}
}

// GenerateToken issues a token for the given subject.
func (s *JWTService) GenerateToken(id uuid.UUID, principal Principal) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
		ID:        id.String(),
		Principal: principal,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken verifies signature, expiry and issuer and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrMissingID
	}
	return claims, nil
}

// Expiration returns the configured token lifetime.
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}
