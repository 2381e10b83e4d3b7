package auth

import (
	"errors"
	"fmt"
	"time"

	"submitserver/models"

	"github.com/golang-jwt/jwt"
)

// Tokens はセッションIDを署名付きトークンにして発行・検証します。
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate はセッションに対応するJWTを生成します。
func (t *Tokens) Generate(session models.Session) (string, error) {
	now := t.now()
	claims := &models.SessionClaims{
		SessionID: session.ID,
		UserID:    session.UserID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.key)
}

// Parse はトークンを検証してクレームを返します。
func (t *Tokens) Parse(tokenString string) (*models.SessionClaims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// TTL はトークンの有効期間です。
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}
