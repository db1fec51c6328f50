package mdauth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"freightrate/internal/app/domains/entity/etprimitive"
)

// ErrInvalidToken token 无效或已过期
var ErrInvalidToken = errors.New("invalid or expired token")

// Principal 已认证的调用方
type Principal struct {
	CustomerID int64
	Role       etprimitive.Role
}

// IsAdmin 是否为管理员
func (p *Principal) IsAdmin() bool {
	return p.Role == etprimitive.RoleAdmin
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager HS256 JWT 签发与校验
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager 创建 TokenManager
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue 签发 token，subject 为客户 ID
func (m *TokenManager) Issue(customerID int64, role etprimitive.Role) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(customerID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token failed: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse 校验 token 并返回调用方
func (m *TokenManager) Parse(tokenString string) (*Principal, error) {
	var c claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Issuer != m.issuer {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, c.Issuer)
	}
	if c.ExpiresAt == nil || !c.ExpiresAt.After(m.now()) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return &Principal{CustomerID: id, Role: etprimitive.Role(c.Role)}, nil
}
