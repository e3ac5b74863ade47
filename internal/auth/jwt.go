package auth

import (
	"fmt"
	"time"

	"github.com/Klimentov1992/flightbooking/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT plus its expiry.
type AccessToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expiresAt"`
}

// NewAccessToken signs a token carrying the user id (sub) and role.
func NewAccessToken(secret string, userID int64, role domain.Role, ttl time.Duration) (AccessToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates the raw token and resolves the caller
// identity from its claims.
func ParseAccessToken(secret, raw string) (domain.Caller, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return domain.Caller{}, domain.Unauthorized("Invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Caller{}, domain.Unauthorized("Invalid token claims")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return domain.Caller{}, domain.Unauthorized("Invalid token claims")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return domain.Caller{}, domain.Unauthorized("Invalid token claims")
	}

	return domain.Caller{ID: int64(sub), Role: domain.Role(role)}, nil
}
