package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims 访问令牌：用户 + 角色
type AccessClaims struct {
	UserID uint `json:"userId"`
	RoleID uint `json:"roleId"`
	jwt.RegisteredClaims
}

// RefreshClaims 刷新令牌：只带用户
type RefreshClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Codec issues and verifies the access/refresh token pair. The two secrets
// are independent: a leaked refresh secret cannot mint access tokens and
// vice versa. Secrets and TTLs are injected so tests can run with their own.
type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (c *Codec) IssueAccess(userID, roleID uint) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.AccessSecret)
}

func (c *Codec) IssueRefresh(userID uint) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.RefreshTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.RefreshSecret)
}

// VerifyAccess returns the decoded claims, or nil for ANY failure — expired,
// forged, malformed. Callers must not distinguish between the cases.
func (c *Codec) VerifyAccess(tokenStr string) *AccessClaims {
	t, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, c.keyFunc(c.AccessSecret))
	if err != nil {
		return nil
	}
	if claims, ok := t.Claims.(*AccessClaims); ok && t.Valid {
		return claims
	}
	return nil
}

// VerifyRefresh is symmetric to VerifyAccess, using the refresh secret.
func (c *Codec) VerifyRefresh(tokenStr string) *RefreshClaims {
	t, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, c.keyFunc(c.RefreshSecret))
	if err != nil {
		return nil
	}
	if claims, ok := t.Claims.(*RefreshClaims); ok && t.Valid {
		return claims
	}
	return nil
}

func (c *Codec) keyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return secret, nil
	}
}
