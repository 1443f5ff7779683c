package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// ResetTTL срок жизни ссылки сброса пароля
	ResetTTL = 15 * time.Minute

	purposeAccess = "access"
	purposeReset  = "reset"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims payload bearer-токена
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Email   string `json:"email,omitempty"`
}

// ResetClaims результат разбора токена сброса пароля
type ResetClaims struct {
	UserID    string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

// TokenManager выпускает и проверяет подписанные HS256 токены
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue выпускает access-токен для пользователя
func (m *TokenManager) Issue(userID string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Purpose: purposeAccess,
	}
	s, err := m.sign(claims)
	return s, exp, err
}

// Parse проверяет access-токен и возвращает id пользователя
func (m *TokenManager) Parse(token string) (string, error) {
	c, err := m.parse(token)
	if err != nil {
		return "", err
	}
	if c.Purpose != purposeAccess || c.Subject == "" {
		return "", ErrTokenInvalid
	}
	return c.Subject, nil
}

// IssueReset выпускает одноразовый токен сброса пароля
func (m *TokenManager) IssueReset(userID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTTL)),
		},
		Purpose: purposeReset,
		Email:   email,
	}
	return m.sign(claims)
}

func (m *TokenManager) ParseReset(token string) (*ResetClaims, error) {
	c, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	if c.Purpose != purposeReset || c.Subject == "" || c.ID == "" {
		return nil, ErrTokenInvalid
	}
	out := &ResetClaims{UserID: c.Subject, Email: c.Email, JTI: c.ID}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out, nil
}

func (m *TokenManager) sign(c Claims) (string, error) {
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (m *TokenManager) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}
	c := &Claims{}
	_, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return c, nil
}
