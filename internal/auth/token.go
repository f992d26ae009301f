package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vladislavdragonenkov/logitrack/internal/domain"
)

// DefaultTokenTTL — срок жизни токена доступа.
const DefaultTokenTTL = time.Hour

// jwtClaims — полезная нагрузка токена. Имена полей uid/email/role —
// часть контракта с уже выданными токенами, менять их нельзя.
type jwtClaims struct {
	UserID string          `json:"uid"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет JWT, подписанные HMAC-SHA256.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService конструирует сервис токенов.
// ttl <= 0 заменяется на DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue выпускает подписанный токен с удостоверением пользователя.
func (s *TokenService) Issue(claims domain.Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate проверяет подпись и срок жизни токена и возвращает удостоверение.
// Любая причина отказа сворачивается в ErrTokenInvalid: клиенту незачем
// знать, чем именно плох токен.
func (s *TokenService) Validate(tokenString string) (domain.Claims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}

	return domain.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

var _ domain.TokenService = (*TokenService)(nil)
