package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pms/internal/domain/performance"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carry the asserted identity. Nothing here proves who the caller
// is; the token only saves resending the directory entry on every request.
type Claims struct {
	UserID     string `json:"uid"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"dept"`
	jwt.RegisteredClaims
}

func (c Claims) Actor() performance.Actor {
	return performance.Actor{
		ID:         c.UserID,
		Name:       c.Name,
		Role:       performance.Role(c.Role),
		Department: c.Department,
	}
}

func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !performance.Role(claims.Role).Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
