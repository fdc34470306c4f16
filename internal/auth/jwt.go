package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"destined_affinity/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("token is missing")
	ErrInvalidToken = errors.New("token is invalid")
)

// Identity - проверенная личность: email и роль на момент выпуска токена.
// Роль из токена информативна; права админа проверяются по хранилищу.
type Identity struct {
	Email string            `json:"email"`
	Role  models.MemberRole `json:"role"`
}

type Claims struct {
	Email string            `json:"email"`
	Role  models.MemberRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет HS256 токены
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, issuer string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock подменяет часы (для тестов истечения срока)
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue выпускает токен; возвращает строку токена и время истечения
func (s *TokenService) Issue(email string, role models.MemberRole) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		Email: NormalizeEmail(email),
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   NormalizeEmail(email),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify проверяет подпись, алгоритм, издателя и срок действия
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{Email: claims.Email, Role: claims.Role}, nil
}

// NormalizeEmail - email сравниваются без учета регистра и пробелов
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
